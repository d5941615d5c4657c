package fittings

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
)

type FittingRepository interface {
	Create(ctx context.Context, f *domain.Fitting) error
	GetByID(ctx context.Context, id int64) (*domain.Fitting, error)
	Update(ctx context.Context, f *domain.Fitting) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.FittingFilter, p pagination.Params) ([]domain.Fitting, int64, error)
}

type CustomerLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type RoleChecker interface {
	HasRole(ctx context.Context, id int64, role domain.UserRole) (bool, error)
}
