package expiry

import (
	"context"
	"testing"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/lock"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubRules struct {
	active []domain.ExpiryRule
	err    error
}

func (s stubRules) Create(context.Context, *domain.ExpiryRule) error { return nil }
func (s stubRules) GetByID(context.Context, int64) (*domain.ExpiryRule, error) {
	return nil, apperr.NotFound("expiry rule")
}
func (s stubRules) Update(context.Context, *domain.ExpiryRule) error { return nil }
func (s stubRules) Delete(context.Context, int64) error               { return nil }
func (s stubRules) List(context.Context, pagination.Params) ([]domain.ExpiryRule, int64, error) {
	return s.active, int64(len(s.active)), nil
}
func (s stubRules) Active(context.Context) ([]domain.ExpiryRule, error) { return s.active, s.err }

type mockMeasurements struct {
	mock.Mock
}

func (m *mockMeasurements) MarkExpired(ctx context.Context, c repository.ExpiryCriteria) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMeasurements) Stale(ctx context.Context, c repository.ExpiryCriteria) ([]domain.Measurement, error) {
	args := m.Called(ctx, c)
	return args.Get(0).([]domain.Measurement), args.Error(1)
}

type mockReminders struct {
	mock.Mock
}

func (m *mockReminders) Create(ctx context.Context, r *domain.Reminder) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReminders) PendingFor(ctx context.Context, kind string, ids []int64) (map[int64]bool, error) {
	args := m.Called(ctx, kind, ids)
	return args.Get(0).(map[int64]bool), args.Error(1)
}

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var (
	sweepNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	manager  = access.Principal{ID: 2, Role: domain.RoleManager}
)

func intp(v int) *int { return &v }

func TestCriteria(t *testing.T) {
	branch := "north"
	tests := []struct {
		name   string
		rule   domain.ExpiryRule
		column string
		cutoff time.Time
	}{
		{"updated wins", domain.ExpiryRule{DaysSinceCreated: intp(10), DaysSinceUpdated: intp(30)}, "updated_at", sweepNow.AddDate(0, 0, -30)},
		{"created", domain.ExpiryRule{DaysSinceCreated: intp(10)}, "created_at", sweepNow.AddDate(0, 0, -10)},
		{"default year", domain.ExpiryRule{Branch: &branch}, "created_at", sweepNow.AddDate(0, 0, -365)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Criteria(tt.rule, sweepNow)
			assert.Equal(t, tt.column, c.Column)
			assert.Equal(t, tt.cutoff, c.Cutoff)
			assert.Equal(t, tt.rule.Branch, c.Branch)
		})
	}
}

func newSweeper(rules stubRules, m *mockMeasurements, r *mockReminders, l lock.Locker) *Sweeper {
	s := NewSweeper(rules, m, r, inlineTx{}, l, sideeffect.Discard{})
	s.now = func() time.Time { return sweepNow }
	return s
}

func TestRun_MarksAndReminds(t *testing.T) {
	m, r := new(mockMeasurements), new(mockReminders)
	rules := stubRules{active: []domain.ExpiryRule{
		{ID: 1, Action: domain.ExpiryMark, DaysSinceUpdated: intp(180)},
		{ID: 2, Action: domain.ExpiryRemindOnly, DaysSinceCreated: intp(90)},
	}}
	m.On("MarkExpired", mock.Anything, mock.MatchedBy(func(c repository.ExpiryCriteria) bool { return c.Column == "updated_at" })).Return(int64(3), nil)
	m.On("Stale", mock.Anything, mock.Anything).Return([]domain.Measurement{{ID: 10, CustomerID: 1}, {ID: 11, CustomerID: 2}}, nil)
	r.On("PendingFor", mock.Anything, domain.ReminderMeasurementRefresh, []int64{10, 11}).Return(map[int64]bool{10: true}, nil)
	r.On("Create", mock.Anything, mock.MatchedBy(func(rem *domain.Reminder) bool {
		return *rem.MeasurementID == 11 && rem.CustomerID == 2 && rem.Status == domain.ReminderPending
	})).Return(nil).Once()

	res, err := newSweeper(rules, m, r, nil).Run(context.Background(), manager)
	require.NoError(t, err)
	assert.Equal(t, &SweepResult{Rules: 2, Marked: 3, Reminded: 1}, res)
	r.AssertExpectations(t)
}

func TestRun_LockHeld(t *testing.T) {
	l := lock.NewLocal()
	release, err := l.Acquire(context.Background(), sweepLockKey)
	require.NoError(t, err)
	defer release()

	_, err = newSweeper(stubRules{}, new(mockMeasurements), new(mockReminders), l).Run(context.Background(), manager)
	assert.Equal(t, 409, apperr.Status(err))
}

func TestRun_NoRulesTable(t *testing.T) {
	rules := stubRules{err: apperr.SchemaNotReady("expiry_rules")}
	res, err := newSweeper(rules, new(mockMeasurements), new(mockReminders), nil).Run(context.Background(), manager)
	require.NoError(t, err)
	assert.Equal(t, &SweepResult{}, res)
}
