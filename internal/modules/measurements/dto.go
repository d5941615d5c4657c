package measurements

import (
	"tailorshop/internal/domain"
	"tailorshop/internal/measure"
)

// Result is a saved measurement with the warnings its rules raised.
type Result struct {
	Measurement *domain.Measurement `json:"measurement"`
	Warnings    []measure.Violation `json:"warnings"`
}

// Check is the outcome of a dry-run validation.
type Check struct {
	IsValid    bool                `json:"isValid"`
	Errors     []string            `json:"errors"`
	RuleErrors []measure.Violation `json:"rule_errors"`
	Warnings   []measure.Violation `json:"warnings"`
}

type ProfileRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

type FeedbackRequest struct {
	OrderID     *int64 `json:"order_id" validate:"omitempty,gt=0"`
	GarmentType string `json:"garment_type" validate:"required,max=50"`
	FitFeedback string `json:"fit_feedback" validate:"required,oneof=too_tight slightly_tight perfect slightly_loose too_loose"`
	Notes       string `json:"notes" validate:"max=2000"`
}
