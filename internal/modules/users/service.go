package users

import (
	"context"
	"strings"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/modules/auth"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"
)

type Service struct {
	users UserRepository
	sink  sideeffect.Sink
}

func NewService(users UserRepository, sink sideeffect.Sink) *Service {
	return &Service{users: users, sink: sink}
}

func (s *Service) List(ctx context.Context, f repository.UserFilter, p pagination.Params) ([]domain.PublicUser, int64, error) {
	rows, total, err := s.users.List(ctx, f, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.PublicUser, len(rows))
	for i := range rows {
		out[i] = rows[i].Public()
	}
	return out, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.PublicUser, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

func (s *Service) Create(ctx context.Context, actor access.Principal, req CreateUserRequest) (*domain.PublicUser, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.UserRole(req.Role),
		Branch:       strings.TrimSpace(req.Branch),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Users), u.ID, map[string]any{"role": u.Role}))
	pub := u.Public()
	return &pub, nil
}

func (s *Service) Update(ctx context.Context, actor access.Principal, id int64, req UpdateUserRequest) (*domain.PublicUser, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	changed := []string{}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
		changed = append(changed, "name")
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !role.Valid() {
			return nil, apperr.Validation("invalid role")
		}
		u.Role = role
		changed = append(changed, "role")
	}
	if req.Branch != nil {
		u.Branch = strings.TrimSpace(*req.Branch)
		changed = append(changed, "branch")
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
		changed = append(changed, "password")
	}
	if len(changed) == 0 {
		return nil, apperr.Validation("no fields to update")
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "update", string(access.Users), u.ID, map[string]any{"fields": changed}))
	pub := u.Public()
	return &pub, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Principal, id int64) error {
	if actor.ID == id {
		return ErrSelfDelete
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "delete", string(access.Users), id, nil))
	return nil
}
