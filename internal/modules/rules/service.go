package rules

import (
	"context"
	"fmt"
	"strings"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/sideeffect"
)

type Service struct {
	rules RuleRepository
	sink  sideeffect.Sink
}

func NewService(rules RuleRepository, sink sideeffect.Sink) *Service {
	return &Service{rules: rules, sink: sink}
}

func (s *Service) List(ctx context.Context, activeOnly bool, p pagination.Params) ([]domain.ValidationRule, int64, error) {
	return s.rules.List(ctx, activeOnly, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.ValidationRule, error) {
	return s.rules.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor access.Principal, req RuleRequest) (*domain.ValidationRule, error) {
	r := &domain.ValidationRule{
		RuleKey:  strings.TrimSpace(req.RuleKey),
		RuleType: domain.RuleType(req.RuleType),
		FieldA:   req.FieldA,
		FieldB:   req.FieldB,
		Operator: domain.Operator(req.Operator),
		Message:  req.Message,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := check(r); err != nil {
		return nil, err
	}
	if err := s.rules.Create(ctx, r); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Rules), r.ID, map[string]any{"rule_key": r.RuleKey}))
	return r, nil
}

func (s *Service) Update(ctx context.Context, actor access.Principal, id int64, req UpdateRuleRequest) (*domain.ValidationRule, error) {
	r, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.RuleType != nil {
		r.RuleType = domain.RuleType(*req.RuleType)
	}
	if req.FieldA != nil {
		r.FieldA = *req.FieldA
	}
	if req.FieldB != nil {
		r.FieldB = *req.FieldB
	}
	if req.Operator != nil {
		r.Operator = domain.Operator(*req.Operator)
	}
	if req.Message != nil {
		r.Message = *req.Message
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
	if err := check(r); err != nil {
		return nil, err
	}
	if err := s.rules.Update(ctx, r); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "update", string(access.Rules), r.ID, nil))
	return r, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Principal, id int64) error {
	if err := s.rules.Delete(ctx, id); err != nil {
		return err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "delete", string(access.Rules), id, nil))
	return nil
}

func check(r *domain.ValidationRule) error {
	var problems []string
	if r.RuleType != domain.RuleImpossible && r.RuleType != domain.RuleWarning {
		problems = append(problems, fmt.Sprintf("rule_type must be %s or %s", domain.RuleImpossible, domain.RuleWarning))
	}
	if !r.Operator.Valid() {
		problems = append(problems, "operator must be one of >=, <=, >, <")
	}
	if !domain.IsMeasurementField(r.FieldA) {
		problems = append(problems, fmt.Sprintf("field_a %q is not a measurement field", r.FieldA))
	}
	if !domain.IsMeasurementField(r.FieldB) {
		problems = append(problems, fmt.Sprintf("field_b %q is not a measurement field", r.FieldB))
	}
	if r.FieldA == r.FieldB {
		problems = append(problems, "field_a and field_b must differ")
	}
	if len(problems) > 0 {
		return apperr.Validation("invalid validation rule", problems...)
	}
	return nil
}
