package inspection

import (
	"errors"
	"strings"
)

var (
	ErrInspectionNotFound      = errors.New("inspection not found")
	ErrInvalidInspectionStatus = errors.New("inspection cannot be processed in current status")
	ErrUnauthorizedAccess      = errors.New("unauthorized access to inspection")
)

type RecordInspectionDTO struct {
	AssetTag  string `json:"asset_tag"`
	AssetType string `json:"asset_type"`
	Division  string `json:"division"`
	Section   string `json:"section"`
	Condition string `json:"condition"`
	Notes     string `json:"notes"`
}

func (d RecordInspectionDTO) Validate() error {
	if strings.TrimSpace(d.AssetTag) == "" {
		return ValidationError{Msg: "asset tag is required"}
	}
	switch d.Condition {
	case ConditionGood, ConditionFair, ConditionPoor, ConditionUnusable:
	default:
		return ValidationError{Msg: "condition must be one of good, fair, poor, unusable"}
	}
	return nil
}

type RejectInspectionDTO struct {
	Reason string `json:"reason"`
}

func (d RejectInspectionDTO) Validate() error {
	if strings.TrimSpace(d.Reason) == "" {
		return ValidationError{Msg: "rejection reason is required"}
	}
	return nil
}

type ListFilter struct {
	Status      string
	Division    string
	InspectorID string
	Limit       int
	Offset      int
}

type InspectionsResponse struct {
	Inspections []*Inspection `json:"inspections"`
	Total       int           `json:"total"`
}

type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}
