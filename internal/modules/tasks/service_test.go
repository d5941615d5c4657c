package tasks

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

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Create(ctx context.Context, t *domain.TaskAssignment) error {
	args := m.Called(ctx, t)
	if args.Error(0) == nil {
		t.ID = 11
	}
	return args.Error(0)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id int64) (*domain.TaskAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskAssignment), args.Error(1)
}

func (m *mockTaskRepo) Update(ctx context.Context, t *domain.TaskAssignment) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTaskRepo) List(ctx context.Context, f repository.TaskFilter, p pagination.Params) ([]domain.TaskAssignment, int64, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]domain.TaskAssignment), args.Get(1).(int64), args.Error(2)
}

type users map[int64]domain.UserRole

func (u users) GetByID(_ context.Context, id int64) (*domain.User, error) {
	role, ok := u[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	return &domain.User{ID: id, Role: role}, nil
}

type recordingSink struct {
	notes []domain.Notification
}

func (r *recordingSink) Audit(context.Context, domain.AuditLog) {}
func (r *recordingSink) Notify(_ context.Context, n domain.Notification) {
	r.notes = append(r.notes, n)
}

var (
	staff        = users{7: domain.RoleTailor, 8: domain.RoleTailor, 20: domain.RoleCustomer}
	managerScope = access.Scope{Principal: access.Principal{ID: 2, Role: domain.RoleManager}, Effect: access.Allow}
	tailorScope  = access.Scope{Principal: access.Principal{ID: 7, Role: domain.RoleTailor}, Effect: access.SelfOnly}
)

func TestCreate_NotifiesAssignee(t *testing.T) {
	repo := new(mockTaskRepo)
	sink := &recordingSink{}
	svc := NewService(repo, staff, sink)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	task, err := svc.Create(context.Background(), managerScope.Principal, TaskRequest{AssigneeID: 7, TaskType: "alteration", Title: "Hem trousers"})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, task.Status)
	require.Len(t, sink.notes, 1)
	assert.Equal(t, int64(7), sink.notes[0].UserID)
	assert.Equal(t, "task_assigned", sink.notes[0].Type)
	assert.Equal(t, "Hem trousers", sink.notes[0].Body)
}

func TestCreate_AssigneeMustBeStaff(t *testing.T) {
	svc := NewService(new(mockTaskRepo), staff, &recordingSink{})
	for _, id := range []int64{20, 99} {
		_, err := svc.Create(context.Background(), managerScope.Principal, TaskRequest{AssigneeID: id, TaskType: "alteration"})
		assert.ErrorIs(t, err, ErrAssigneeNotStaff)
	}
}

func TestUpdate_CompletionTimestamp(t *testing.T) {
	repo := new(mockTaskRepo)
	svc := NewService(repo, staff, &recordingSink{})
	done := time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return done }

	task := &domain.TaskAssignment{ID: 11, AssigneeID: 7, Status: domain.TaskInProgress}
	repo.On("GetByID", mock.Anything, int64(11)).Return(task, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	completed := "completed"
	got, err := svc.Update(context.Background(), tailorScope, 11, UpdateTaskRequest{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, done, *got.CompletedAt)

	reopened := "in_progress"
	got, err = svc.Update(context.Background(), tailorScope, 11, UpdateTaskRequest{Status: &reopened})
	require.NoError(t, err)
	assert.Nil(t, got.CompletedAt)
}

func TestTailorScope(t *testing.T) {
	repo := new(mockTaskRepo)
	svc := NewService(repo, staff, &recordingSink{})
	repo.On("GetByID", mock.Anything, int64(12)).Return(&domain.TaskAssignment{ID: 12, AssigneeID: 8}, nil)
	repo.On("GetByID", mock.Anything, int64(13)).Return(&domain.TaskAssignment{ID: 13, AssigneeID: 7}, nil)

	_, err := svc.Get(context.Background(), tailorScope, 12)
	assert.ErrorIs(t, err, ErrNotYourTask)

	other := int64(8)
	_, err = svc.Update(context.Background(), tailorScope, 13, UpdateTaskRequest{AssigneeID: &other})
	assert.ErrorIs(t, err, ErrReassign)

	p := pagination.Params{Page: 1, Limit: 20}
	self := int64(7)
	repo.On("List", mock.Anything, repository.TaskFilter{AssigneeID: &self}, p).Return([]domain.TaskAssignment{}, int64(0), nil)
	_, _, err = svc.List(context.Background(), tailorScope, repository.TaskFilter{}, p)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
