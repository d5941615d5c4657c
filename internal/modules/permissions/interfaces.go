package permissions

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
)

type PermissionRepository interface {
	Create(ctx context.Context, p *domain.Permission) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, role string, p pagination.Params) ([]domain.Permission, int64, error)
}
