package repository

import (
	"context"
	"strings"

	"tailorshop/internal/database"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"

	"gorm.io/gorm"
)

type UserRepository struct {
	crud[domain.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{crud: newCrud[domain.User](db, nil, database.TableUsers, "user")}
}

type UserFilter struct {
	Role   string
	Branch string
	Search string
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	return r.crud.Create(ctx, u)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := db.Where("email = ?", normalizeEmail(email)).First(&u).Error; err != nil {
		return nil, r.classify(err)
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.Count(ctx, eq("email", normalizeEmail(email)))
	return n > 0, err
}

func (r *UserRepository) List(ctx context.Context, f UserFilter, p pagination.Params) ([]domain.User, int64, error) {
	return r.page(ctx, p, "id",
		when(f.Role != "", eq("role", f.Role)),
		when(f.Branch != "", eq("branch", f.Branch)),
		like(f.Search, "name", "email"),
	)
}

// HasRole reports whether id is a user with role.
func (r *UserRepository) HasRole(ctx context.Context, id int64, role domain.UserRole) (bool, error) {
	n, err := r.Count(ctx, eq("id", id), eq("role", role))
	return n > 0, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
