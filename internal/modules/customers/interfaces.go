package customers

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.CustomerFilter, p pagination.Params) ([]domain.Customer, int64, error)
	Refs(ctx context.Context, id int64) (repository.CustomerRefs, error)
}
