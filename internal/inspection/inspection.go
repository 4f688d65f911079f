package inspection

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	inspectionDatamodel "github.com/railtrace/railway-assets/internal/core/datamodel/inspection"
)

type Inspection struct {
	ID             int64      `json:"id"`
	AssetTag       string     `json:"asset_tag"`
	AssetType      string     `json:"asset_type"`
	InspectorID    string     `json:"inspector_id"`
	InspectorName  string     `json:"inspector_name"`
	Division       string     `json:"division"`
	Section        string     `json:"section"`
	Condition      string     `json:"condition"`
	Notes          string     `json:"notes,omitempty"`
	Status         string     `json:"status"`
	BlockchainHash string     `json:"blockchain_hash,omitempty"`
	InspectedAt    time.Time  `json:"inspected_at"`
	ApprovedBy     *string    `json:"approved_by,omitempty"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

const (
	ConditionGood     = "good"
	ConditionFair     = "fair"
	ConditionPoor     = "poor"
	ConditionUnusable = "unusable"
)

func (i *Inspection) CanBeApproved() bool {
	return i.Status == StatusPendingApproval
}

func (i *Inspection) CanBeRejected() bool {
	return i.Status == StatusPendingApproval
}

func (i *Inspection) Approve(approverID string) {
	i.Status = StatusApproved
	i.ApprovedBy = &approverID
	now := time.Now()
	i.ProcessedAt = &now
	i.UpdatedAt = now
}

func (i *Inspection) Reject(approverID string) {
	i.Status = StatusRejected
	i.ApprovedBy = &approverID
	now := time.Now()
	i.ProcessedAt = &now
	i.UpdatedAt = now
}

func NewInspection(inspectorID, inspectorName string, dto RecordInspectionDTO) *Inspection {
	now := time.Now()

	inspection := &Inspection{
		AssetTag:      dto.AssetTag,
		AssetType:     dto.AssetType,
		InspectorID:   inspectorID,
		InspectorName: inspectorName,
		Division:      dto.Division,
		Section:       dto.Section,
		Condition:     dto.Condition,
		Notes:         dto.Notes,
		Status:        StatusPendingApproval,
		InspectedAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	inspection.BlockchainHash = displayHash(inspection)

	return inspection
}

// displayHash produces the ledger-style hash shown next to each record in
// the dashboard. It is purely cosmetic and is never anchored or verified
// anywhere.
func displayHash(i *Inspection) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d",
		i.AssetTag, i.InspectorID, i.Condition, i.InspectedAt.UnixNano())))
	return "0x" + hex.EncodeToString(sum[:])
}

func ToDataModel(i *Inspection) *inspectionDatamodel.Inspection {
	return &inspectionDatamodel.Inspection{
		ID:             i.ID,
		AssetTag:       i.AssetTag,
		AssetType:      i.AssetType,
		InspectorID:    i.InspectorID,
		InspectorName:  i.InspectorName,
		Division:       i.Division,
		Section:        i.Section,
		Condition:      i.Condition,
		Notes:          i.Notes,
		Status:         i.Status,
		BlockchainHash: i.BlockchainHash,
		InspectedAt:    i.InspectedAt,
		ApprovedBy:     i.ApprovedBy,
		ProcessedAt:    i.ProcessedAt,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func FromDataModel(dm *inspectionDatamodel.Inspection) *Inspection {
	return &Inspection{
		ID:             dm.ID,
		AssetTag:       dm.AssetTag,
		AssetType:      dm.AssetType,
		InspectorID:    dm.InspectorID,
		InspectorName:  dm.InspectorName,
		Division:       dm.Division,
		Section:        dm.Section,
		Condition:      dm.Condition,
		Notes:          dm.Notes,
		Status:         dm.Status,
		BlockchainHash: dm.BlockchainHash,
		InspectedAt:    dm.InspectedAt,
		ApprovedBy:     dm.ApprovedBy,
		ProcessedAt:    dm.ProcessedAt,
		CreatedAt:      dm.CreatedAt,
		UpdatedAt:      dm.UpdatedAt,
	}
}
