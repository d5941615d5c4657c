package backup

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
)

type Source[T any] interface {
	All(ctx context.Context) ([]T, error)
}

// Sources are the tables a backup reads.
type Sources struct {
	Customers    Source[domain.Customer]
	Measurements Source[domain.Measurement]
	Users        Source[domain.User]
	Orders       Source[domain.Order]
	Fittings     Source[domain.Fitting]
}

type LogRepository interface {
	Create(ctx context.Context, l *domain.BackupLog) error
	Update(ctx context.Context, l *domain.BackupLog) error
	List(ctx context.Context, p pagination.Params) ([]domain.BackupLog, int64, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
