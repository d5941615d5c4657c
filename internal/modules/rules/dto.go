package rules

type RuleRequest struct {
	RuleKey  string `json:"rule_key" validate:"required,max=100"`
	RuleType string `json:"rule_type" validate:"required"`
	FieldA   string `json:"field_a" validate:"required"`
	FieldB   string `json:"field_b" validate:"required"`
	Operator string `json:"operator" validate:"required"`
	Message  string `json:"message" validate:"required,max=500"`
	IsActive *bool  `json:"is_active"`
}

type UpdateRuleRequest struct {
	RuleType *string `json:"rule_type"`
	FieldA   *string `json:"field_a"`
	FieldB   *string `json:"field_b"`
	Operator *string `json:"operator"`
	Message  *string `json:"message" validate:"omitempty,min=1,max=500"`
	IsActive *bool   `json:"is_active"`
}
