package fittings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/pkg/request"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"
)

const notifyFittingAssigned = "fitting_assigned"

type Service struct {
	fittings  FittingRepository
	customers CustomerLookup
	users     RoleChecker
	sink      sideeffect.Sink
}

func NewService(fittings FittingRepository, customers CustomerLookup, users RoleChecker, sink sideeffect.Sink) *Service {
	return &Service{fittings: fittings, customers: customers, users: users, sink: sink}
}

// List restricts self-only scopes to the caller's own fittings whatever the filter says.
func (s *Service) List(ctx context.Context, scope access.Scope, f repository.FittingFilter, p pagination.Params) ([]domain.Fitting, int64, error) {
	if owner := scope.OwnerFilter(); owner != nil {
		f.TailorID = owner
	}
	return s.fittings.List(ctx, f, p)
}

func (s *Service) Get(ctx context.Context, scope access.Scope, id int64) (*domain.Fitting, error) {
	return s.owned(ctx, scope, id)
}

func (s *Service) Create(ctx context.Context, scope access.Scope, req FittingRequest) (*domain.Fitting, error) {
	actor := scope.Principal
	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	at, err := parseSchedule(req.ScheduledAt)
	if err != nil {
		return nil, err
	}

	tailorID := req.TailorID
	if scope.SelfOnly() {
		if tailorID != nil && *tailorID != actor.ID {
			return nil, ErrReassign
		}
		tailorID = &actor.ID
	} else if err := s.checkTailor(ctx, tailorID); err != nil {
		return nil, err
	}

	f := &domain.Fitting{
		CustomerID:    req.CustomerID,
		MeasurementID: req.MeasurementID,
		OrderID:       req.OrderID,
		TailorID:      tailorID,
		ScheduledAt:   at,
		Status:        domain.FittingScheduled,
		Notes:         req.Notes,
		Branch:        strings.TrimSpace(req.Branch),
	}
	if req.Status != "" {
		f.Status = domain.FittingStatus(req.Status)
	}
	if actor.ID != 0 {
		f.CreatedBy = &actor.ID
	}
	if err := s.fittings.Create(ctx, f); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Fittings), f.ID, nil))
	s.notifyTailor(ctx, actor, f)
	return f, nil
}

func (s *Service) Update(ctx context.Context, scope access.Scope, id int64, req UpdateFittingRequest) (*domain.Fitting, error) {
	actor := scope.Principal
	f, err := s.owned(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	reassigned := false
	if req.TailorID != nil && (f.TailorID == nil || *f.TailorID != *req.TailorID) {
		if scope.SelfOnly() {
			return nil, ErrReassign
		}
		if err := s.checkTailor(ctx, req.TailorID); err != nil {
			return nil, err
		}
		f.TailorID = req.TailorID
		reassigned = true
	}
	if req.ScheduledAt != nil {
		if f.ScheduledAt, err = parseSchedule(*req.ScheduledAt); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		f.Status = domain.FittingStatus(*req.Status)
	}
	if req.Notes != nil {
		f.Notes = *req.Notes
	}
	if req.Branch != nil {
		f.Branch = strings.TrimSpace(*req.Branch)
	}
	if err := s.fittings.Update(ctx, f); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "update", string(access.Fittings), f.ID, map[string]any{"status": f.Status}))
	if reassigned {
		s.notifyTailor(ctx, actor, f)
	}
	return f, nil
}

func (s *Service) Delete(ctx context.Context, scope access.Scope, id int64) error {
	if _, err := s.owned(ctx, scope, id); err != nil {
		return err
	}
	if err := s.fittings.Delete(ctx, id); err != nil {
		return err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(scope.Principal.ID, "delete", string(access.Fittings), id, nil))
	return nil
}

// owned loads a fitting and enforces the scope's row ownership.
func (s *Service) owned(ctx context.Context, scope access.Scope, id int64) (*domain.Fitting, error) {
	f, err := s.fittings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(f.TailorID) {
		return nil, ErrNotYourFitting
	}
	return f, nil
}

func (s *Service) checkTailor(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := s.users.HasRole(ctx, *id, domain.RoleTailor)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotATailor
	}
	return nil
}

func (s *Service) notifyTailor(ctx context.Context, actor access.Principal, f *domain.Fitting) {
	if f.TailorID == nil || *f.TailorID == actor.ID {
		return
	}
	s.sink.Notify(ctx, sideeffect.NotificationFor(*f.TailorID, notifyFittingAssigned,
		"New fitting assigned",
		fmt.Sprintf("Fitting #%d on %s", f.ID, f.ScheduledAt.Format("2006-01-02 15:04")),
		string(access.Fittings), f.ID))
}

func parseSchedule(raw string) (time.Time, error) {
	t, err := request.ParseTime(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperr.Validation("invalid scheduled_at: use RFC 3339 or YYYY-MM-DD")
	}
	return t, nil
}
