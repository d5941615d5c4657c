package reports

import (
	"context"
	"time"

	"tailorshop/internal/domain"
	"tailorshop/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportRepository interface {
	Customers(ctx context.Context, w repository.Window) (int64, error)
	Measurements(ctx context.Context, w repository.Window, expiredOnly bool) (int64, error)
	OrdersByStatus(ctx context.Context, w repository.Window) (map[string]int64, error)
	Revenue(ctx context.Context, w repository.Window) (price, deposit decimal.Decimal, err error)
	UpcomingFittings(ctx context.Context, from, to time.Time) (int64, error)
	OpenTasks(ctx context.Context) (int64, error)
	PendingReminders(ctx context.Context) (int64, error)
	FitFeedback(ctx context.Context, w repository.Window) (map[string]int64, error)
}

type OrderExporter interface {
	Export(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error)
}
