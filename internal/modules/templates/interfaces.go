package templates

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
)

type TemplateRepository interface {
	Create(ctx context.Context, t *domain.MeasurementTemplate) error
	GetByID(ctx context.Context, id int64) (*domain.MeasurementTemplate, error)
	Update(ctx context.Context, t *domain.MeasurementTemplate) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.TemplateFilter, p pagination.Params) ([]domain.MeasurementTemplate, int64, error)
}
