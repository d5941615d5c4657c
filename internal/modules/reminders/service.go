package reminders

import (
	"context"
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

const defaultChannel = "in_app"

type Service struct {
	reminders ReminderRepository
	customers CustomerLookup
	sink      sideeffect.Sink
	now       func() time.Time
}

func NewService(reminders ReminderRepository, customers CustomerLookup, sink sideeffect.Sink) *Service {
	return &Service{reminders: reminders, customers: customers, sink: sink, now: time.Now}
}

func (s *Service) List(ctx context.Context, f repository.ReminderFilter, p pagination.Params) ([]domain.Reminder, int64, error) {
	return s.reminders.List(ctx, f, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Reminder, error) {
	return s.reminders.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor access.Principal, req ReminderRequest) (*domain.Reminder, error) {
	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	due, err := parseDue("due_at", req.DueAt)
	if err != nil {
		return nil, err
	}
	r := &domain.Reminder{
		CustomerID:    req.CustomerID,
		MeasurementID: req.MeasurementID,
		ReminderType:  strings.TrimSpace(req.ReminderType),
		DueAt:         due,
		Status:        domain.ReminderPending,
		Channel:       req.Channel,
		Notes:         req.Notes,
	}
	if r.Channel == "" {
		r.Channel = defaultChannel
	}
	if actor.ID != 0 {
		r.CreatedBy = &actor.ID
	}
	if err := s.reminders.Create(ctx, r); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Reminders), r.ID, nil))
	return r, nil
}

func (s *Service) Update(ctx context.Context, actor access.Principal, id int64, req UpdateReminderRequest) (*domain.Reminder, error) {
	r, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ReminderType != nil {
		r.ReminderType = strings.TrimSpace(*req.ReminderType)
	}
	if req.DueAt != nil {
		if r.DueAt, err = parseDue("due_at", *req.DueAt); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		r.Status = domain.ReminderStatus(*req.Status)
	}
	if req.Channel != nil {
		r.Channel = *req.Channel
	}
	if req.Notes != nil {
		r.Notes = *req.Notes
	}
	if err := s.reminders.Update(ctx, r); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "update", string(access.Reminders), r.ID, map[string]any{"status": r.Status}))
	return r, nil
}

// Snooze pushes an open reminder to until and marks it snoozed.
func (s *Service) Snooze(ctx context.Context, actor access.Principal, id int64, req SnoozeRequest) (*domain.Reminder, error) {
	until, err := parseDue("until", req.Until)
	if err != nil {
		return nil, err
	}
	if !until.After(s.now()) {
		return nil, ErrSnoozeInPast
	}
	r, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == domain.ReminderSent || r.Status == domain.ReminderCancelled {
		return nil, ErrClosed
	}
	r.Status = domain.ReminderSnoozed
	r.DueAt = until
	if err := s.reminders.Update(ctx, r); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "snooze", string(access.Reminders), r.ID,
		map[string]any{"until": until.Format(time.RFC3339)}))
	return r, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Principal, id int64) error {
	if err := s.reminders.Delete(ctx, id); err != nil {
		return err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "delete", string(access.Reminders), id, nil))
	return nil
}

func parseDue(field, raw string) (time.Time, error) {
	t, err := request.ParseTime(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperr.Validation("invalid " + field + ": use RFC 3339 or YYYY-MM-DD")
	}
	return t, nil
}
