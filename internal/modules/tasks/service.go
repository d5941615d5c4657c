package tasks

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

const notifyTaskAssigned = "task_assigned"

type Service struct {
	tasks TaskRepository
	users UserLookup
	sink  sideeffect.Sink
	now   func() time.Time
}

func NewService(tasks TaskRepository, users UserLookup, sink sideeffect.Sink) *Service {
	return &Service{tasks: tasks, users: users, sink: sink, now: time.Now}
}

func (s *Service) List(ctx context.Context, scope access.Scope, f repository.TaskFilter, p pagination.Params) ([]domain.TaskAssignment, int64, error) {
	if owner := scope.OwnerFilter(); owner != nil {
		f.AssigneeID = owner
	}
	return s.tasks.List(ctx, f, p)
}

func (s *Service) Get(ctx context.Context, scope access.Scope, id int64) (*domain.TaskAssignment, error) {
	return s.owned(ctx, scope, id)
}

func (s *Service) Create(ctx context.Context, actor access.Principal, req TaskRequest) (*domain.TaskAssignment, error) {
	if err := s.checkAssignee(ctx, req.AssigneeID); err != nil {
		return nil, err
	}
	due, err := parseDue(req.DueAt)
	if err != nil {
		return nil, err
	}
	t := &domain.TaskAssignment{
		AssigneeID:   req.AssigneeID,
		TaskType:     strings.TrimSpace(req.TaskType),
		Title:        strings.TrimSpace(req.Title),
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		DueAt:        due,
		Status:       domain.TaskPending,
		Notes:        req.Notes,
	}
	if actor.ID != 0 {
		t.CreatedBy = &actor.ID
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Tasks), t.ID, nil))
	s.notifyAssignee(ctx, actor, t)
	return t, nil
}

// Update applies req; a task entering completed gets CompletedAt, leaving it clears it.
func (s *Service) Update(ctx context.Context, scope access.Scope, id int64, req UpdateTaskRequest) (*domain.TaskAssignment, error) {
	actor := scope.Principal
	t, err := s.owned(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	reassigned := false
	if req.AssigneeID != nil && *req.AssigneeID != t.AssigneeID {
		if scope.SelfOnly() {
			return nil, ErrReassign
		}
		if err := s.checkAssignee(ctx, *req.AssigneeID); err != nil {
			return nil, err
		}
		t.AssigneeID = *req.AssigneeID
		reassigned = true
	}
	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.DueAt != nil {
		if t.DueAt, err = parseDue(req.DueAt); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	if req.Status != nil {
		next := domain.TaskStatus(*req.Status)
		switch {
		case next == domain.TaskCompleted && t.Status != domain.TaskCompleted:
			at := s.now().UTC()
			t.CompletedAt = &at
		case next != domain.TaskCompleted:
			t.CompletedAt = nil
		}
		t.Status = next
	}
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "update", string(access.Tasks), t.ID, map[string]any{"status": t.Status}))
	if reassigned {
		s.notifyAssignee(ctx, actor, t)
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, scope access.Scope, id int64) error {
	if _, err := s.owned(ctx, scope, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(scope.Principal.ID, "delete", string(access.Tasks), id, nil))
	return nil
}

func (s *Service) owned(ctx context.Context, scope access.Scope, id int64) (*domain.TaskAssignment, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(&t.AssigneeID) {
		return nil, ErrNotYourTask
	}
	return t, nil
}

func (s *Service) checkAssignee(ctx context.Context, id int64) error {
	u, err := s.users.GetByID(ctx, id)
	if apperr.Is(err, apperr.KindNotFound) {
		return ErrAssigneeNotStaff
	}
	if err != nil {
		return err
	}
	if u.Role == domain.RoleCustomer {
		return ErrAssigneeNotStaff
	}
	return nil
}

func (s *Service) notifyAssignee(ctx context.Context, actor access.Principal, t *domain.TaskAssignment) {
	if t.AssigneeID == actor.ID {
		return
	}
	title := t.Title
	if title == "" {
		title = t.TaskType
	}
	s.sink.Notify(ctx, sideeffect.NotificationFor(t.AssigneeID, notifyTaskAssigned,
		"New task assigned", title, string(access.Tasks), t.ID))
}

func parseDue(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := request.ParseTime(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperr.Validation("invalid due_at: use RFC 3339 or YYYY-MM-DD")
	}
	return &t, nil
}
