package repository

import (
	"context"
	"time"

	"tailorshop/internal/database"
	"tailorshop/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Window bounds report queries on created_at. Nil ends are open.
type Window struct {
	From *time.Time
	To   *time.Time
}

func (w Window) scope(column string) scope {
	return func(db *gorm.DB) *gorm.DB {
		if w.From != nil {
			db = db.Where(column+" >= ?", *w.From)
		}
		if w.To != nil {
			db = db.Where(column+" <= ?", *w.To)
		}
		return db
	}
}

// ReportRepository runs the aggregate queries behind the summary report.
type ReportRepository struct {
	customers    crud[domain.Customer]
	measurements crud[domain.Measurement]
	orders       crud[domain.Order]
	fittings     crud[domain.Fitting]
	tasks        crud[domain.TaskAssignment]
	reminders    crud[domain.Reminder]
	feedback     crud[domain.GarmentFeedback]
}

func NewReportRepository(db *gorm.DB, schema *database.Schema) *ReportRepository {
	return &ReportRepository{
		customers:    newCrud[domain.Customer](db, nil, database.TableCustomers, "customer"),
		measurements: newCrud[domain.Measurement](db, nil, database.TableMeasurements, "measurement"),
		orders:       newCrud[domain.Order](db, nil, database.TableOrders, "order"),
		fittings:     newCrud[domain.Fitting](db, nil, database.TableFittings, "fitting"),
		tasks:        newCrud[domain.TaskAssignment](db, schema, database.TableTasks, "task"),
		reminders:    newCrud[domain.Reminder](db, schema, database.TableReminders, "reminder"),
		feedback:     newCrud[domain.GarmentFeedback](db, schema, database.TableFeedback, "feedback"),
	}
}

func (r *ReportRepository) Customers(ctx context.Context, w Window) (int64, error) {
	return r.customers.Count(ctx, w.scope("created_at"))
}

func (r *ReportRepository) Measurements(ctx context.Context, w Window, expiredOnly bool) (int64, error) {
	return r.measurements.Count(ctx, w.scope("created_at"), when(expiredOnly, eq("is_expired", true)))
}

func (r *ReportRepository) OrdersByStatus(ctx context.Context, w Window) (map[string]int64, error) {
	return groupCount(ctx, r.orders, "status", w.scope("created_at"))
}

// Revenue sums price and deposit over orders that were not cancelled.
func (r *ReportRepository) Revenue(ctx context.Context, w Window) (price, deposit decimal.Decimal, err error) {
	db, err := r.orders.conn(ctx)
	if err != nil {
		return price, deposit, err
	}
	row := db.Model(&domain.Order{}).
		Scopes(w.scope("created_at")).
		Where("status <> ?", domain.OrderCancelled).
		Select("COALESCE(SUM(price), 0), COALESCE(SUM(deposit), 0)").
		Row()
	if err := row.Scan(&price, &deposit); err != nil {
		return price, deposit, r.orders.classify(err)
	}
	return price, deposit, nil
}

func (r *ReportRepository) UpcomingFittings(ctx context.Context, from, to time.Time) (int64, error) {
	return r.fittings.Count(ctx,
		eq("status", domain.FittingScheduled),
		func(db *gorm.DB) *gorm.DB { return db.Where("scheduled_at >= ? AND scheduled_at <= ?", from, to) },
	)
}

func (r *ReportRepository) OpenTasks(ctx context.Context) (int64, error) {
	return r.tasks.Count(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("status IN ?", []domain.TaskStatus{domain.TaskPending, domain.TaskInProgress})
	})
}

func (r *ReportRepository) PendingReminders(ctx context.Context) (int64, error) {
	return r.reminders.Count(ctx, eq("status", domain.ReminderPending))
}

func (r *ReportRepository) FitFeedback(ctx context.Context, w Window) (map[string]int64, error) {
	return groupCount(ctx, r.feedback, "fit_feedback", w.scope("created_at"))
}

type bucket struct {
	Bucket string
	Total  int64
}

func groupCount[T any](ctx context.Context, c crud[T], column string, scopes ...scope) (map[string]int64, error) {
	db, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	var rows []bucket
	err = db.Model(new(T)).Scopes(scopes...).
		Select(column + " AS bucket, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, c.classify(err)
	}
	out := make(map[string]int64, len(rows))
	for _, b := range rows {
		out[b.Bucket] = b.Total
	}
	return out, nil
}
