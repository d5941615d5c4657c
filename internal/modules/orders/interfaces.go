package orders

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
)

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.OrderFilter, p pagination.Params) ([]domain.Order, int64, error)
}

type CustomerLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type MeasurementLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Measurement, error)
}
