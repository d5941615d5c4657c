package measure

import (
	"strings"

	"tailorshop/internal/domain"
)

type Violation struct {
	RuleKey  string          `json:"rule_key"`
	RuleType domain.RuleType `json:"rule_type"`
	Message  string          `json:"message"`
}

type RuleCheck struct {
	IsValid  bool        `json:"isValid"`
	Errors   []Violation `json:"errors"`
	Warnings []Violation `json:"warnings"`
}

// RunRule evaluates one rule against data. It returns nil when either field is absent
// or not numeric, or when the comparison holds.
func RunRule(rule domain.ValidationRule, data map[string]any) *Violation {
	a, okA := numberField(data, rule.FieldA)
	b, okB := numberField(data, rule.FieldB)
	if !okA || !okB {
		return nil
	}

	var violated bool
	switch rule.Operator {
	case domain.OpGTE:
		violated = a < b
	case domain.OpLTE:
		violated = a > b
	case domain.OpGT:
		violated = a <= b
	case domain.OpLT:
		violated = a >= b
	default:
		return nil
	}
	if !violated {
		return nil
	}

	msg := strings.NewReplacer("{{a}}", formatNumber(a), "{{b}}", formatNumber(b)).Replace(rule.Message)
	return &Violation{RuleKey: rule.RuleKey, RuleType: rule.RuleType, Message: msg}
}

// CheckRules runs every active rule. Violations of impossible rules block; the rest warn.
func CheckRules(rules []domain.ValidationRule, data map[string]any) RuleCheck {
	out := RuleCheck{Errors: []Violation{}, Warnings: []Violation{}}
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		v := RunRule(rule, data)
		if v == nil {
			continue
		}
		if rule.RuleType == domain.RuleImpossible {
			out.Errors = append(out.Errors, *v)
		} else {
			out.Warnings = append(out.Warnings, *v)
		}
	}
	out.IsValid = len(out.Errors) == 0
	return out
}

func numberField(data map[string]any, field string) (float64, bool) {
	raw, ok := data[field]
	if !ok || !isPresent(raw) {
		return 0, false
	}
	return Number(raw)
}
