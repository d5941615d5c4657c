package measurements

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMeasurementRepo struct {
	mock.Mock
}

func (m *mockMeasurementRepo) Create(ctx context.Context, v *domain.Measurement) error {
	args := m.Called(ctx, v)
	if args.Error(0) == nil {
		v.ID = 11
	}
	return args.Error(0)
}

func (m *mockMeasurementRepo) GetByID(ctx context.Context, id int64) (*domain.Measurement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Measurement), args.Error(1)
}

func (m *mockMeasurementRepo) GetWithCustomer(ctx context.Context, id int64) (*domain.Measurement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Measurement), args.Error(1)
}

func (m *mockMeasurementRepo) Update(ctx context.Context, v *domain.Measurement) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockMeasurementRepo) List(ctx context.Context, f repository.MeasurementFilter, p pagination.Params) ([]domain.Measurement, int64, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]domain.Measurement), args.Get(1).(int64), args.Error(2)
}

func (m *mockMeasurementRepo) AppendHistory(ctx context.Context, h *domain.MeasurementHistory) error {
	return m.Called(ctx, h).Error(0)
}

func (m *mockMeasurementRepo) History(ctx context.Context, id int64) ([]domain.MeasurementHistory, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.MeasurementHistory), args.Error(1)
}

func (m *mockMeasurementRepo) ClearProfile(ctx context.Context, profileID int64) error {
	return m.Called(ctx, profileID).Error(0)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 21
	}
	return args.Error(0)
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type staticRules []domain.ValidationRule

func (r staticRules) Active(context.Context) ([]domain.ValidationRule, error) { return r, nil }

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var tailor = access.Principal{ID: 5, Role: domain.RoleTailor}

func newTestService(m *mockMeasurementRepo, c *mockCustomerRepo, rules staticRules) *Service {
	svc := NewService(m, c, rules, nil, nil, inlineTx{}, sideeffect.Discard{}, 30, "US")
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func chestAboveWaist() domain.ValidationRule {
	return domain.ValidationRule{
		RuleKey: "chest_waist", RuleType: domain.RuleWarning, FieldA: "chest", FieldB: "waist",
		Operator: domain.OpGTE, Message: "chest {{a}} is below waist {{b}}", IsActive: true,
	}
}

func TestCreate_RequiresIdentity(t *testing.T) {
	m, c := new(mockMeasurementRepo), new(mockCustomerRepo)
	svc := newTestService(m, c, nil)

	_, err := svc.Create(context.Background(), tailor, map[string]any{"chest": json.Number("100")})
	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details, "name or phone is required")
	m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_ImpossibleRuleBlocks(t *testing.T) {
	m, c := new(mockMeasurementRepo), new(mockCustomerRepo)
	rule := chestAboveWaist()
	rule.RuleType = domain.RuleImpossible
	svc := newTestService(m, c, staticRules{rule})

	_, err := svc.Create(context.Background(), tailor, map[string]any{
		"name": "Ann", "chest": json.Number("80"), "waist": json.Number("90"),
	})
	require.Error(t, err)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"chest 80 is below waist 90"}, appErr.Details)
}

func TestCreate_ExistingCustomerByPhone(t *testing.T) {
	m, c := new(mockMeasurementRepo), new(mockCustomerRepo)
	svc := newTestService(m, c, staticRules{chestAboveWaist()})

	existing := &domain.Customer{ID: 3, Name: "Ann", Phone: "+16502530000"}
	c.On("FindByPhone", mock.Anything, "+16502530000").Return(existing, nil)
	m.On("Create", mock.Anything, mock.AnythingOfType("*domain.Measurement")).Return(nil)
	m.On("AppendHistory", mock.Anything, mock.MatchedBy(func(h *domain.MeasurementHistory) bool {
		return h.MeasurementID == 11 && h.Action == domain.HistoryCreated && h.Version == 1 && h.Changes["chest"] == 80.0
	})).Return(nil)

	res, err := svc.Create(context.Background(), tailor, map[string]any{
		"phone": "650-253-0000", "chest": json.Number("80"), "waist": json.Number("90"),
	})
	require.NoError(t, err)

	got := res.Measurement
	assert.Equal(t, int64(3), got.CustomerID)
	assert.Regexp(t, `^MS-[0-9A-F]{8}$`, got.EntryID)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, domain.UnitsMetric, got.Units)
	require.NotNil(t, got.ExpiresAt)
	assert.Equal(t, time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC), *got.ExpiresAt)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "chest_waist", res.Warnings[0].RuleKey)
	c.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.AssertExpectations(t)
}

func TestCreate_NewCustomerWhenPhoneUnknown(t *testing.T) {
	m, c := new(mockMeasurementRepo), new(mockCustomerRepo)
	svc := newTestService(m, c, nil)

	c.On("FindByPhone", mock.Anything, "+16502530000").Return(nil, apperr.NotFound("customer"))
	c.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Customer) bool {
		return v.Name == "Bea" && v.Phone == "+16502530000"
	})).Return(nil)
	m.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.Create(context.Background(), tailor, map[string]any{
		"name": "Bea", "phone": "(650) 253-0000", "units": "in", "chest": json.Number("40"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), res.Measurement.CustomerID)
	assert.Equal(t, domain.UnitsImperial, res.Measurement.Units)
	c.AssertExpectations(t)
}

func TestCreate_CustomerIDSuppliesIdentity(t *testing.T) {
	m, c := new(mockMeasurementRepo), new(mockCustomerRepo)
	svc := newTestService(m, c, nil)

	c.On("GetByID", mock.Anything, int64(3)).Return(&domain.Customer{ID: 3, Name: "Ann"}, nil)
	m.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.Create(context.Background(), tailor, map[string]any{
		"customer_id": json.Number("3"), "neck": json.Number("40"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", res.Measurement.Customer.Name)
}

func TestUpdate_BumpsVersionAndRecordsDiff(t *testing.T) {
	m, c := new(mockMeasurementRepo), new(mockCustomerRepo)
	svc := newTestService(m, c, nil)

	chest, waist := 100.0, 80.0
	stored := &domain.Measurement{
		ID: 11, CustomerID: 3, Units: domain.UnitsMetric, Version: 2, IsExpired: true,
		MeasurementValues: domain.MeasurementValues{Chest: &chest, Waist: &waist},
	}
	m.On("GetByID", mock.Anything, int64(11)).Return(stored, nil)
	m.On("Update", mock.Anything, stored).Return(nil)

	var history *domain.MeasurementHistory
	m.On("AppendHistory", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		history = args.Get(1).(*domain.MeasurementHistory)
	}).Return(nil)

	res, err := svc.Update(context.Background(), tailor, 11, map[string]any{
		"chest": json.Number("102"), "waist": nil, "notes": "loose fit",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Measurement.Version)
	assert.False(t, res.Measurement.IsExpired)
	assert.Nil(t, res.Measurement.Waist)

	require.NotNil(t, history)
	assert.Equal(t, domain.HistoryUpdated, history.Action)
	assert.Equal(t, map[string]any{"old": 100.0, "new": 102.0}, history.Changes["chest"])
	assert.Equal(t, map[string]any{"old": 80.0, "new": nil}, history.Changes["waist"])
	assert.Equal(t, map[string]any{"old": "", "new": "loose fit"}, history.Changes["notes"])
}

func TestUpdate_RangeAndNoChanges(t *testing.T) {
	m, c := new(mockMeasurementRepo), new(mockCustomerRepo)
	svc := newTestService(m, c, nil)

	neck := 40.0
	stored := &domain.Measurement{ID: 11, Units: domain.UnitsMetric, Version: 1, MeasurementValues: domain.MeasurementValues{Neck: &neck}}
	m.On("GetByID", mock.Anything, int64(11)).Return(stored, nil)

	_, err := svc.Update(context.Background(), tailor, 11, map[string]any{"neck": json.Number("400")})
	assert.Equal(t, 400, apperr.Status(err))

	_, err = svc.Update(context.Background(), tailor, 11, map[string]any{"neck": json.Number("40")})
	assert.ErrorIs(t, err, ErrNoChanges)
	m.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestValidate_DryRun(t *testing.T) {
	m, c := new(mockMeasurementRepo), new(mockCustomerRepo)
	svc := newTestService(m, c, staticRules{chestAboveWaist()})

	check, err := svc.Validate(context.Background(), map[string]any{
		"name": "Ann", "chest": json.Number("80"), "waist": json.Number("90"),
	})
	require.NoError(t, err)
	assert.True(t, check.IsValid)
	assert.Empty(t, check.Errors)
	assert.Len(t, check.Warnings, 1)
	m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
