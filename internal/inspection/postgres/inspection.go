package postgres

import (
	"time"

	"gorm.io/gorm"

	inspectionDatamodel "github.com/railtrace/railway-assets/internal/core/datamodel/inspection"
	"github.com/railtrace/railway-assets/internal/inspection"
)

type InspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) inspection.RepositoryAPI {
	return &InspectionRepository{db: db}
}

func (r *InspectionRepository) List(filter inspection.ListFilter) ([]*inspectionDatamodel.Inspection, error) {
	query := r.db.Order("inspected_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Division != "" {
		query = query.Where("division = ?", filter.Division)
	}
	if filter.InspectorID != "" {
		query = query.Where("inspector_id = ?", filter.InspectorID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var records []*inspectionDatamodel.Inspection
	err := query.Find(&records).Error
	return records, err
}

func (r *InspectionRepository) GetByID(id int64) (*inspectionDatamodel.Inspection, error) {
	var record inspectionDatamodel.Inspection
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *InspectionRepository) Create(record *inspectionDatamodel.Inspection) (int64, error) {
	if err := r.db.Create(record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

func (r *InspectionRepository) CountByStatus(status string) (int, error) {
	var count int64
	err := r.db.Model(&inspectionDatamodel.Inspection{}).
		Where("status = ?", status).
		Count(&count).Error
	return int(count), err
}

func (r *InspectionRepository) UpdateStatus(id int64, status, approverID string, processedAt time.Time) error {
	return r.db.Model(&inspectionDatamodel.Inspection{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"approved_by":  approverID,
			"processed_at": processedAt,
			"updated_at":   time.Now(),
		}).Error
}
