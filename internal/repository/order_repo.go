package repository

import (
	"context"
	"time"

	"tailorshop/internal/database"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"

	"gorm.io/gorm"
)

type OrderRepository struct {
	crud[domain.Order]
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{crud: newCrud[domain.Order](db, nil, database.TableOrders, "order")}
}

type OrderFilter struct {
	Status     string
	CustomerID *int64
	From       *time.Time
	To         *time.Time
	Search     string
}

func (f OrderFilter) scopes() []scope {
	return []scope{
		func(db *gorm.DB) *gorm.DB {
			if f.Search == "" {
				return db
			}
			return db.Joins("LEFT JOIN customers ON customers.id = orders.customer_id")
		},
		when(f.Status != "", eq("orders.status", f.Status)),
		when(f.CustomerID != nil, eq("orders.customer_id", deref(f.CustomerID))),
		when(f.From != nil, func(db *gorm.DB) *gorm.DB { return db.Where("orders.delivery_date >= ?", deref(f.From)) }),
		when(f.To != nil, func(db *gorm.DB) *gorm.DB { return db.Where("orders.delivery_date <= ?", deref(f.To)) }),
		like(f.Search, "orders.fabric", "customers.name"),
	}
}

func (r *OrderRepository) List(ctx context.Context, f OrderFilter, p pagination.Params) ([]domain.Order, int64, error) {
	return r.pageWith(ctx, p, "orders.id DESC",
		func(db *gorm.DB) *gorm.DB { return db.Preload("Customer") },
		f.scopes()...,
	)
}

// Export returns every order matching f with its customer, for spreadsheets.
func (r *OrderRepository) Export(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Order{}
	if err := db.Model(&domain.Order{}).Scopes(f.scopes()...).Preload("Customer").Order("orders.id").Find(&out).Error; err != nil {
		return nil, r.classify(err)
	}
	return out, nil
}

type FittingRepository struct {
	crud[domain.Fitting]
}

func NewFittingRepository(db *gorm.DB) *FittingRepository {
	return &FittingRepository{crud: newCrud[domain.Fitting](db, nil, database.TableFittings, "fitting")}
}

type FittingFilter struct {
	Status     string
	CustomerID *int64
	TailorID   *int64
	From       *time.Time
	To         *time.Time
}

func (r *FittingRepository) List(ctx context.Context, f FittingFilter, p pagination.Params) ([]domain.Fitting, int64, error) {
	return r.page(ctx, p, "scheduled_at, id",
		when(f.Status != "", eq("status", f.Status)),
		when(f.CustomerID != nil, eq("customer_id", deref(f.CustomerID))),
		when(f.TailorID != nil, eq("tailor_id", deref(f.TailorID))),
		when(f.From != nil, func(db *gorm.DB) *gorm.DB { return db.Where("scheduled_at >= ?", deref(f.From)) }),
		when(f.To != nil, func(db *gorm.DB) *gorm.DB { return db.Where("scheduled_at <= ?", deref(f.To)) }),
	)
}
