package expiry

type RuleRequest struct {
	Name             string  `json:"name" validate:"required,max=255"`
	DaysSinceCreated *int    `json:"days_since_created" validate:"omitempty,gt=0"`
	DaysSinceUpdated *int    `json:"days_since_updated" validate:"omitempty,gt=0"`
	Action           string  `json:"action" validate:"required,oneof=mark_expired remind_only"`
	Branch           *string `json:"branch" validate:"omitempty,max=100"`
	IsActive         *bool   `json:"is_active"`
}

// UpdateRuleRequest replaces the thresholds only when present; send 0 to clear one.
type UpdateRuleRequest struct {
	Name             *string `json:"name" validate:"omitempty,min=1,max=255"`
	DaysSinceCreated *int    `json:"days_since_created" validate:"omitempty,gte=0"`
	DaysSinceUpdated *int    `json:"days_since_updated" validate:"omitempty,gte=0"`
	Action           *string `json:"action" validate:"omitempty,oneof=mark_expired remind_only"`
	Branch           *string `json:"branch" validate:"omitempty,max=100"`
	IsActive         *bool   `json:"is_active"`
}

type SweepResult struct {
	Rules    int   `json:"rules"`
	Marked   int64 `json:"marked"`
	Reminded int64 `json:"reminded"`
	Skipped  int   `json:"skipped"`
}
