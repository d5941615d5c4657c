package permissions

import (
	"context"
	"testing"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPermissionRepo struct {
	mock.Mock
}

func (m *mockPermissionRepo) Create(ctx context.Context, p *domain.Permission) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPermissionRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPermissionRepo) List(ctx context.Context, role string, p pagination.Params) ([]domain.Permission, int64, error) {
	args := m.Called(ctx, role, p)
	return args.Get(0).([]domain.Permission), args.Get(1).(int64), args.Error(2)
}

type nopSink struct{}

func (nopSink) Audit(context.Context, domain.AuditLog)        {}
func (nopSink) Notify(context.Context, domain.Notification) {}

func TestEffective(t *testing.T) {
	svc := NewService(new(mockPermissionRepo), access.DefaultPolicy(), nopSink{})

	eff := svc.Effective(access.Principal{ID: 4, Role: domain.RoleCustomer})
	assert.Equal(t, "customer", eff.Role)
	for _, g := range eff.Grants {
		assert.Contains(t, []access.Resource{access.Templates, access.Notifications}, g.Resource)
	}

	tailor := svc.Effective(access.Principal{ID: 7, Role: domain.RoleTailor})
	var fittingEffect access.Effect
	for _, g := range tailor.Grants {
		if g.Resource == access.Fittings && g.Action == access.Update {
			fittingEffect = g.Effect
		}
	}
	assert.Equal(t, access.SelfOnly, fittingEffect)

	none := svc.Effective(access.Principal{ID: 9, Role: "guest"})
	assert.NotNil(t, none.Grants)
	assert.Empty(t, none.Grants)
}

func TestCreate(t *testing.T) {
	repo := new(mockPermissionRepo)
	svc := NewService(repo, access.DefaultPolicy(), nopSink{})
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Permission) bool {
		return p.Role == domain.RoleTailor && p.ResourceType == "orders" && p.Action == "read"
	})).Return(nil)

	_, err := svc.Create(context.Background(), access.Principal{ID: 1}, PermissionRequest{Role: "tailor", ResourceType: " orders ", Action: "read"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
