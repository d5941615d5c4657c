package customers

import (
	"context"
	"strings"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/pkg/phone"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"
)

type Service struct {
	customers CustomerRepository
	sink      sideeffect.Sink
	region    string
}

// NewService builds the customer service; region is the default phone region.
func NewService(customers CustomerRepository, sink sideeffect.Sink, region string) *Service {
	return &Service{customers: customers, sink: sink, region: region}
}

func (s *Service) List(ctx context.Context, f repository.CustomerFilter, p pagination.Params) ([]domain.Customer, int64, error) {
	return s.customers.List(ctx, f, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*CustomerDetail, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	refs, err := s.customers.Refs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CustomerDetail{Customer: *c, Counts: refs}, nil
}

func (s *Service) Create(ctx context.Context, actor access.Principal, req CustomerRequest) (*domain.Customer, error) {
	c := &domain.Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   phone.Normalize(req.Phone, s.region),
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
		Notes:   req.Notes,
		Branch:  strings.TrimSpace(req.Branch),
	}
	if actor.ID != 0 {
		c.CreatedBy = &actor.ID
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Customers), c.ID, nil))
	return c, nil
}

func (s *Service) Update(ctx context.Context, actor access.Principal, id int64, req UpdateCustomerRequest) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	changed := []string{}
	set := func(name string, src *string, dst *string, fn func(string) string) {
		if src == nil {
			return
		}
		*dst = fn(*src)
		changed = append(changed, name)
	}
	set("name", req.Name, &c.Name, strings.TrimSpace)
	set("phone", req.Phone, &c.Phone, func(v string) string { return phone.Normalize(v, s.region) })
	set("email", req.Email, &c.Email, strings.TrimSpace)
	set("address", req.Address, &c.Address, strings.TrimSpace)
	set("notes", req.Notes, &c.Notes, func(v string) string { return v })
	set("branch", req.Branch, &c.Branch, strings.TrimSpace)
	if len(changed) == 0 {
		return nil, apperr.Validation("no fields to update")
	}
	if c.Name == "" {
		return nil, apperr.Validation("name must not be empty")
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "update", string(access.Customers), c.ID, map[string]any{"fields": changed}))
	return c, nil
}

// Delete refuses while measurements, orders or fittings still point at the customer.
func (s *Service) Delete(ctx context.Context, actor access.Principal, id int64) error {
	if _, err := s.customers.GetByID(ctx, id); err != nil {
		return err
	}
	refs, err := s.customers.Refs(ctx, id)
	if err != nil {
		return err
	}
	if refs.Measurements+refs.Orders+refs.Fittings > 0 {
		return ErrCustomerInUse
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "delete", string(access.Customers), id, nil))
	return nil
}
