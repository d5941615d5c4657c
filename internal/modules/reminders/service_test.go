package reminders

import (
	"context"
	"testing"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReminderRepo struct {
	mock.Mock
}

func (m *mockReminderRepo) Create(ctx context.Context, r *domain.Reminder) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReminderRepo) GetByID(ctx context.Context, id int64) (*domain.Reminder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminder), args.Error(1)
}

func (m *mockReminderRepo) Update(ctx context.Context, r *domain.Reminder) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReminderRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReminderRepo) List(ctx context.Context, f repository.ReminderFilter, p pagination.Params) ([]domain.Reminder, int64, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]domain.Reminder), args.Get(1).(int64), args.Error(2)
}

type customers map[int64]bool

func (c customers) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	if !c[id] {
		return nil, apperr.NotFound("customer")
	}
	return &domain.Customer{ID: id}, nil
}

type nopSink struct{}

func (nopSink) Audit(context.Context, domain.AuditLog)        {}
func (nopSink) Notify(context.Context, domain.Notification) {}

var actor = access.Principal{ID: 2, Role: domain.RoleManager}

func newTestService(repo *mockReminderRepo) *Service {
	s := NewService(repo, customers{1: true}, nopSink{})
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestCreate_Defaults(t *testing.T) {
	repo := new(mockReminderRepo)
	svc := newTestService(repo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reminder) bool {
		return r.Status == domain.ReminderPending && r.Channel == "in_app" && *r.CreatedBy == 2
	})).Return(nil)

	r, err := svc.Create(context.Background(), actor, ReminderRequest{CustomerID: 1, ReminderType: "pickup", DueAt: "2026-03-05"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), r.DueAt)
	repo.AssertExpectations(t)
}

func TestCreate_Rejects(t *testing.T) {
	svc := newTestService(new(mockReminderRepo))

	_, err := svc.Create(context.Background(), actor, ReminderRequest{CustomerID: 9, ReminderType: "pickup", DueAt: "2026-03-05"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.Create(context.Background(), actor, ReminderRequest{CustomerID: 1, ReminderType: "pickup", DueAt: "next week"})
	assert.Equal(t, 400, apperr.Status(err))
}

func TestSnooze(t *testing.T) {
	repo := new(mockReminderRepo)
	svc := newTestService(repo)
	repo.On("GetByID", mock.Anything, int64(4)).Return(&domain.Reminder{ID: 4, Status: domain.ReminderPending}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	r, err := svc.Snooze(context.Background(), actor, 4, SnoozeRequest{Until: "2026-03-10T09:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderSnoozed, r.Status)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), r.DueAt)

	_, err = svc.Snooze(context.Background(), actor, 4, SnoozeRequest{Until: "2026-02-01"})
	assert.ErrorIs(t, err, ErrSnoozeInPast)
}

func TestSnooze_Closed(t *testing.T) {
	repo := new(mockReminderRepo)
	svc := newTestService(repo)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Reminder{ID: 5, Status: domain.ReminderSent}, nil)

	_, err := svc.Snooze(context.Background(), actor, 5, SnoozeRequest{Until: "2026-03-10"})
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 409, apperr.Status(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
