package domain

import "time"

type RuleType string

const (
	RuleImpossible RuleType = "impossible"
	RuleWarning    RuleType = "warning"
)

type Operator string

const (
	OpGTE Operator = ">="
	OpLTE Operator = "<="
	OpGT  Operator = ">"
	OpLT  Operator = "<"
)

func (o Operator) Valid() bool {
	switch o {
	case OpGTE, OpLTE, OpGT, OpLT:
		return true
	}
	return false
}

// ValidationRule compares FieldA against FieldB. Message may reference the values
// as {{a}} and {{b}}.
type ValidationRule struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	RuleKey   string    `json:"rule_key" gorm:"size:100;not null;uniqueIndex"`
	RuleType  RuleType  `json:"rule_type" gorm:"size:20;not null"`
	FieldA    string    `json:"field_a" gorm:"size:50;not null"`
	FieldB    string    `json:"field_b" gorm:"size:50;not null"`
	Operator  Operator  `json:"operator" gorm:"size:2;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ValidationRule) TableName() string { return "validation_rules" }

type ExpiryAction string

const (
	ExpiryMark       ExpiryAction = "mark_expired"
	ExpiryRemindOnly ExpiryAction = "remind_only"
)

type ExpiryRule struct {
	ID               int64        `json:"id" gorm:"primaryKey"`
	Name             string       `json:"name" gorm:"size:255;not null"`
	DaysSinceCreated *int         `json:"days_since_created,omitempty"`
	DaysSinceUpdated *int         `json:"days_since_updated,omitempty"`
	Action           ExpiryAction `json:"action" gorm:"size:20;not null"`
	Branch           *string      `json:"branch,omitempty" gorm:"size:100"`
	IsActive         bool         `json:"is_active" gorm:"not null;default:true"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (ExpiryRule) TableName() string { return "expiry_rules" }
