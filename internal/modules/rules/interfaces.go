package rules

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
)

type RuleRepository interface {
	Create(ctx context.Context, r *domain.ValidationRule) error
	GetByID(ctx context.Context, id int64) (*domain.ValidationRule, error)
	Update(ctx context.Context, r *domain.ValidationRule) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, activeOnly bool, p pagination.Params) ([]domain.ValidationRule, int64, error)
}
