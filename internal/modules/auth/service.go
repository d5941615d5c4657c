package auth

import (
	"context"
	"errors"
	"strings"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/sideeffect"

	"golang.org/x/crypto/bcrypt"
)

// Service contains the authentication logic: login, self-service sign-up and identity lookup.
type Service struct {
	users UserRepositoryInterface
	jwt   jwtService
	sink  sideeffect.Sink
}

func NewService(users UserRepositoryInterface, jwt jwtService, sink sideeffect.Sink) *Service {
	return &Service{users: users, jwt: jwt, sink: sink}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user, "login")
}

// Register creates a customer account; staff accounts are made through the users module.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return s.issue(ctx, user, "register")
}

func (s *Service) Me(ctx context.Context, p access.Principal) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

func (s *Service) issue(ctx context.Context, user *domain.User, action string) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperr.Wrap(err, "failed to issue token")
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(user.ID, action, string(access.Users), user.ID, nil))
	return &AuthResponse{Token: token, User: user.Public()}, nil
}

// HashPassword bcrypts a plain password with the default cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.Validation("password is too long")
		}
		return "", apperr.Wrap(err, "failed to hash password")
	}
	return string(hashed), nil
}
