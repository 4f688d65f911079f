package inspection

import "time"

type Inspection struct {
	ID             int64      `gorm:"primaryKey"`
	AssetTag       string     `gorm:"column:asset_tag;not null"`
	AssetType      string     `gorm:"column:asset_type"`
	InspectorID    string     `gorm:"column:inspector_id;not null"`
	InspectorName  string     `gorm:"column:inspector_name"`
	Division       string     `gorm:"column:division"`
	Section        string     `gorm:"column:section"`
	Condition      string     `gorm:"column:condition;not null"`
	Notes          string     `gorm:"column:notes"`
	Status         string     `gorm:"column:status;not null"`
	BlockchainHash string     `gorm:"column:blockchain_hash"`
	InspectedAt    time.Time  `gorm:"column:inspected_at;not null"`
	ApprovedBy     *string    `gorm:"column:approved_by"`
	ProcessedAt    *time.Time `gorm:"column:processed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Inspection) TableName() string {
	return "inspections"
}
