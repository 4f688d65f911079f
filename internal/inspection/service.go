package inspection

import (
	"log/slog"
	"time"

	inspectionDatamodel "github.com/railtrace/railway-assets/internal/core/datamodel/inspection"
	"github.com/railtrace/railway-assets/internal/rbac"
)

type RepositoryAPI interface {
	List(filter ListFilter) ([]*inspectionDatamodel.Inspection, error)
	GetByID(id int64) (*inspectionDatamodel.Inspection, error)
	Create(record *inspectionDatamodel.Inspection) (int64, error)
	UpdateStatus(id int64, status, approverID string, processedAt time.Time) error
	CountByStatus(status string) (int, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Record(inspectorID, inspectorName string, dto RecordInspectionDTO) (*Inspection, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	inspection := NewInspection(inspectorID, inspectorName, dto)

	id, err := s.repo.Create(ToDataModel(inspection))
	if err != nil {
		s.logger.Error("failed to record inspection",
			"asset_tag", dto.AssetTag,
			"inspector_id", inspectorID,
			"error", err)
		return nil, err
	}
	inspection.ID = id

	s.logger.Info("inspection recorded",
		"inspection_id", id,
		"asset_tag", inspection.AssetTag,
		"condition", inspection.Condition)

	return inspection, nil
}

func (s *Service) List(filter ListFilter, userPermissions []string, userID string) ([]*Inspection, error) {
	// Without the view permission a user only sees their own records.
	if !hasPermission(userPermissions, rbac.PermInspectionsView) {
		filter.InspectorID = userID
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}

	records, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list inspections", "error", err)
		return nil, err
	}

	inspections := make([]*Inspection, 0, len(records))
	for _, record := range records {
		inspections = append(inspections, FromDataModel(record))
	}
	return inspections, nil
}

func (s *Service) GetByID(id int64) (*Inspection, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrInspectionNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) Approve(inspectionID int64, approverID string, userPermissions []string) error {
	if !hasPermission(userPermissions, rbac.PermInspectionsApprove) {
		s.logger.Warn("approve inspection denied: insufficient permissions",
			"inspection_id", inspectionID,
			"approver_id", approverID)
		return ErrUnauthorizedAccess
	}

	record, err := s.repo.GetByID(inspectionID)
	if err != nil {
		s.logger.Error("inspection not found for approval", "inspection_id", inspectionID, "error", err)
		return ErrInspectionNotFound
	}

	inspection := FromDataModel(record)
	if !inspection.CanBeApproved() {
		s.logger.Warn("cannot approve inspection in current status",
			"inspection_id", inspectionID,
			"current_status", inspection.Status)
		return ErrInvalidInspectionStatus
	}

	processedAt := time.Now()
	if err := s.repo.UpdateStatus(inspectionID, StatusApproved, approverID, processedAt); err != nil {
		s.logger.Error("failed to approve inspection", "inspection_id", inspectionID, "error", err)
		return err
	}

	s.logger.Info("inspection approved",
		"inspection_id", inspectionID,
		"approver_id", approverID,
		"asset_tag", inspection.AssetTag)

	return nil
}

func (s *Service) Reject(inspectionID int64, approverID, reason string, userPermissions []string) error {
	if !hasPermission(userPermissions, rbac.PermInspectionsApprove) {
		s.logger.Warn("reject inspection denied: insufficient permissions",
			"inspection_id", inspectionID,
			"approver_id", approverID)
		return ErrUnauthorizedAccess
	}

	record, err := s.repo.GetByID(inspectionID)
	if err != nil {
		s.logger.Error("inspection not found for rejection", "inspection_id", inspectionID, "error", err)
		return ErrInspectionNotFound
	}

	inspection := FromDataModel(record)
	if !inspection.CanBeRejected() {
		s.logger.Warn("cannot reject inspection in current status",
			"inspection_id", inspectionID,
			"current_status", inspection.Status)
		return ErrInvalidInspectionStatus
	}

	processedAt := time.Now()
	if err := s.repo.UpdateStatus(inspectionID, StatusRejected, approverID, processedAt); err != nil {
		s.logger.Error("failed to reject inspection", "inspection_id", inspectionID, "error", err)
		return err
	}

	s.logger.Info("inspection rejected",
		"inspection_id", inspectionID,
		"approver_id", approverID,
		"reason", reason)

	return nil
}

// CountPending feeds the dashboard summary card.
func (s *Service) CountPending() (int, error) {
	return s.repo.CountByStatus(StatusPendingApproval)
}

func hasPermission(userPermissions []string, required string) bool {
	for _, perm := range userPermissions {
		if perm == required {
			return true
		}
	}
	return false
}
