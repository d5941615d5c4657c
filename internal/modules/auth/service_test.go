package auth

import (
	"context"
	"testing"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
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
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 7
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin_Success(t *testing.T) {
	users := new(mockUserRepo)
	jwt := new(mockJWTService)
	svc := NewService(users, jwt, sideeffect.Discard{})

	user := &domain.User{ID: 3, Name: "Ada", Email: "ada@example.com", Role: domain.RoleTailor, PasswordHash: hashed(t, "secret-pass")}
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	jwt.On("GenerateToken", int64(3), "ada@example.com", "tailor").Return("signed", nil)

	res, err := svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "signed", res.Token)
	assert.Equal(t, domain.RoleTailor, res.User.Role)
	users.AssertExpectations(t)
	jwt.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockJWTService), sideeffect.Discard{})

	user := &domain.User{ID: 3, Email: "ada@example.com", PasswordHash: hashed(t, "secret-pass")}
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, apperr.NotFound("user"))

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 401, apperr.Status(err))
}

func TestRegister_AlwaysCustomer(t *testing.T) {
	users := new(mockUserRepo)
	jwt := new(mockJWTService)
	svc := NewService(users, jwt, sideeffect.Discard{})

	users.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleCustomer && u.PasswordHash != "pw-123456"
	})).Return(nil)
	jwt.On("GenerateToken", int64(7), "new@example.com", "customer").Return("tok", nil)

	res, err := svc.Register(context.Background(), RegisterRequest{Name: " New ", Email: "new@example.com", Password: "pw-123456"})
	require.NoError(t, err)
	assert.Equal(t, "New", res.User.Name)
	assert.Equal(t, domain.RoleCustomer, res.User.Role)
	users.AssertExpectations(t)
}

func TestRegister_EmailExists(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockJWTService), sideeffect.Discard{})
	users.On("ExistsByEmail", mock.Anything, "dup@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Dup", Email: "dup@example.com", Password: "pw-123456"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMe(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewService(users, new(mockJWTService), sideeffect.Discard{})
	users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9, Name: "Mo", PasswordHash: "x"}, nil)

	me, err := svc.Me(context.Background(), access.Principal{ID: 9})
	require.NoError(t, err)
	assert.Equal(t, "Mo", me.Name)
}
