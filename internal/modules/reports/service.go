package reports

import (
	"context"
	"time"

	"tailorshop/internal/domain"
	"tailorshop/internal/logger"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/repository"
)

// upcomingHorizon is how far ahead scheduled fittings count as upcoming.
const upcomingHorizon = 7 * 24 * time.Hour

type Service struct {
	reports ReportRepository
	orders  OrderExporter
	now     func() time.Time
}

func NewService(reports ReportRepository, orders OrderExporter) *Service {
	return &Service{reports: reports, orders: orders, now: time.Now}
}

// Summary aggregates shop activity. Figures backed by optional tables that
// are not migrated yet read as zero.
func (s *Service) Summary(ctx context.Context, w repository.Window) (*Summary, error) {
	now := s.now().UTC()
	out := &Summary{
		From:           w.From,
		To:             w.To,
		OrdersByStatus: zeroed(domain.OrderStatuses),
		FitFeedback:    zeroed(domain.FitFeedbackValues),
		GeneratedAt:    now,
	}
	var err error
	if out.Customers, err = s.reports.Customers(ctx, w); err != nil {
		return nil, err
	}
	if out.Measurements, err = s.reports.Measurements(ctx, w, false); err != nil {
		return nil, err
	}
	if out.ExpiredMeasurements, err = s.reports.Measurements(ctx, w, true); err != nil {
		return nil, err
	}
	byStatus, err := s.reports.OrdersByStatus(ctx, w)
	if err != nil {
		return nil, err
	}
	merge(out.OrdersByStatus, byStatus)

	billed, collected, err := s.reports.Revenue(ctx, w)
	if err != nil {
		return nil, err
	}
	out.Revenue = Revenue{
		Billed:      billed.Round(2),
		Collected:   collected.Round(2),
		Outstanding: billed.Sub(collected).Round(2),
	}
	if out.UpcomingFittings, err = s.reports.UpcomingFittings(ctx, now, now.Add(upcomingHorizon)); err != nil {
		return nil, err
	}

	if out.OpenTasks, err = optional(ctx, "open_tasks", s.reports.OpenTasks); err != nil {
		return nil, err
	}
	if out.PendingReminders, err = optional(ctx, "pending_reminders", s.reports.PendingReminders); err != nil {
		return nil, err
	}
	feedback, err := s.reports.FitFeedback(ctx, w)
	switch {
	case apperr.Is(err, apperr.KindSchemaNotReady):
		logger.FromContext(ctx).WithError(err).Debug("report: fit_feedback skipped")
	case err != nil:
		return nil, err
	default:
		merge(out.FitFeedback, feedback)
	}
	return out, nil
}

func (s *Service) Orders(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error) {
	return s.orders.Export(ctx, f)
}

func optional(ctx context.Context, name string, count func(context.Context) (int64, error)) (int64, error) {
	n, err := count(ctx)
	if apperr.Is(err, apperr.KindSchemaNotReady) {
		logger.FromContext(ctx).WithError(err).Debug("report: " + name + " skipped")
		return 0, nil
	}
	return n, err
}

func zeroed[T ~string](keys []T) map[string]int64 {
	out := make(map[string]int64, len(keys))
	for _, k := range keys {
		out[string(k)] = 0
	}
	return out
}

func merge(dst, src map[string]int64) {
	for k, v := range src {
		dst[k] = v
	}
}
