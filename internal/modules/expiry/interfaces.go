package expiry

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
)

type RuleRepository interface {
	Create(ctx context.Context, r *domain.ExpiryRule) error
	GetByID(ctx context.Context, id int64) (*domain.ExpiryRule, error)
	Update(ctx context.Context, r *domain.ExpiryRule) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p pagination.Params) ([]domain.ExpiryRule, int64, error)
	Active(ctx context.Context) ([]domain.ExpiryRule, error)
}

type MeasurementRepository interface {
	MarkExpired(ctx context.Context, c repository.ExpiryCriteria) (int64, error)
	Stale(ctx context.Context, c repository.ExpiryCriteria) ([]domain.Measurement, error)
}

type ReminderRepository interface {
	Create(ctx context.Context, r *domain.Reminder) error
	PendingFor(ctx context.Context, kind string, measurementIDs []int64) (map[int64]bool, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
