package expiry

import (
	"context"
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

func (s *Service) List(ctx context.Context, p pagination.Params) ([]domain.ExpiryRule, int64, error) {
	return s.rules.List(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.ExpiryRule, error) {
	return s.rules.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor access.Principal, req RuleRequest) (*domain.ExpiryRule, error) {
	r := &domain.ExpiryRule{
		Name:             strings.TrimSpace(req.Name),
		DaysSinceCreated: req.DaysSinceCreated,
		DaysSinceUpdated: req.DaysSinceUpdated,
		Action:           domain.ExpiryAction(req.Action),
		Branch:           blankToNil(req.Branch),
		IsActive:         req.IsActive == nil || *req.IsActive,
	}
	if err := s.rules.Create(ctx, r); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Expiry), r.ID, map[string]any{"action": r.Action}))
	return r, nil
}

func (s *Service) Update(ctx context.Context, actor access.Principal, id int64, req UpdateRuleRequest) (*domain.ExpiryRule, error) {
	r, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		r.Name = strings.TrimSpace(*req.Name)
	}
	if req.DaysSinceCreated != nil {
		r.DaysSinceCreated = zeroToNil(*req.DaysSinceCreated)
	}
	if req.DaysSinceUpdated != nil {
		r.DaysSinceUpdated = zeroToNil(*req.DaysSinceUpdated)
	}
	if req.Action != nil {
		r.Action = domain.ExpiryAction(*req.Action)
	}
	if req.Branch != nil {
		r.Branch = blankToNil(req.Branch)
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
	if r.Name == "" {
		return nil, apperr.Validation("name must not be empty")
	}
	if err := s.rules.Update(ctx, r); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "update", string(access.Expiry), r.ID, nil))
	return r, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Principal, id int64) error {
	if err := s.rules.Delete(ctx, id); err != nil {
		return err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "delete", string(access.Expiry), id, nil))
	return nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func zeroToNil(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
