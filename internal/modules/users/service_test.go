package users

import (
	"context"
	"testing"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, f repository.UserFilter, p pagination.Params) ([]domain.User, int64, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

var admin = access.Principal{ID: 1, Role: domain.RoleAdmin}

func TestCreate_HashesPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, sideeffect.Discard{})

	var stored *domain.User
	repo.On("ExistsByEmail", mock.Anything, "t@shop.io").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.User)
	}).Return(nil)

	u, err := svc.Create(context.Background(), admin, CreateUserRequest{
		Name: "Tess", Email: "t@shop.io", Password: "long-enough", Role: "tailor",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTailor, u.Role)
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("long-enough")))
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, sideeffect.Discard{})

	existing := &domain.User{ID: 5, Name: "Old", Role: domain.RoleTailor, Branch: "north"}
	repo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	branch := "south"
	u, err := svc.Update(context.Background(), admin, 5, UpdateUserRequest{Branch: &branch})
	require.NoError(t, err)
	assert.Equal(t, "Old", u.Name)
	assert.Equal(t, "south", u.Branch)

	_, err = svc.Update(context.Background(), admin, 5, UpdateUserRequest{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestDelete_NeverSelf(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, sideeffect.Discard{})

	err := svc.Delete(context.Background(), admin, admin.ID)
	assert.ErrorIs(t, err, ErrSelfDelete)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	repo.On("Delete", mock.Anything, int64(2)).Return(nil)
	assert.NoError(t, svc.Delete(context.Background(), admin, 2))
}

func TestList_PublicFieldsOnly(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, sideeffect.Discard{})

	p := pagination.Params{Page: 1, Limit: 20}
	repo.On("List", mock.Anything, repository.UserFilter{Role: "tailor"}, p).
		Return([]domain.User{{ID: 1, Name: "A", PasswordHash: "secret"}}, int64(1), nil)

	rows, total, err := svc.List(context.Background(), repository.UserFilter{Role: "tailor"}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "A", rows[0].Name)
}
