package repository

import (
	"context"
	"time"

	"tailorshop/internal/database"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"

	"gorm.io/gorm"
)

type MeasurementRepository struct {
	crud[domain.Measurement]
	history crud[domain.MeasurementHistory]
}

func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{
		crud:    newCrud[domain.Measurement](db, nil, database.TableMeasurements, "measurement"),
		history: newCrud[domain.MeasurementHistory](db, nil, database.TableMeasurementHistory, "measurement history"),
	}
}

type MeasurementFilter struct {
	CustomerID *int64
	ProfileID  *int64
	IsExpired  *bool
	Units      string
	Branch     string
	Search     string
}

// ExpiryCriteria selects measurements older than a cutoff on one timestamp column.
type ExpiryCriteria struct {
	Column string // created_at or updated_at
	Cutoff time.Time
	Branch *string
}

func (c ExpiryCriteria) scope(db *gorm.DB) *gorm.DB {
	column := "created_at"
	if c.Column == "updated_at" {
		column = "updated_at"
	}
	db = db.Where("is_expired = ?", false).Where(column+" < ?", c.Cutoff)
	if c.Branch != nil && *c.Branch != "" {
		db = db.Where("branch = ?", *c.Branch)
	}
	return db
}

func (r *MeasurementRepository) List(ctx context.Context, f MeasurementFilter, p pagination.Params) ([]domain.Measurement, int64, error) {
	joined := func(db *gorm.DB) *gorm.DB {
		if f.Search == "" {
			return db
		}
		return db.Joins("LEFT JOIN customers ON customers.id = measurements.customer_id")
	}
	return r.pageWith(ctx, p, "measurements.id DESC",
		func(db *gorm.DB) *gorm.DB { return db.Preload("Customer") },
		joined,
		when(f.CustomerID != nil, eq("measurements.customer_id", deref(f.CustomerID))),
		when(f.ProfileID != nil, eq("measurements.profile_id", deref(f.ProfileID))),
		when(f.IsExpired != nil, eq("measurements.is_expired", f.IsExpired != nil && *f.IsExpired)),
		when(f.Units != "", eq("measurements.units", f.Units)),
		when(f.Branch != "", eq("measurements.branch", f.Branch)),
		like(f.Search, "measurements.entry_id", "customers.name", "customers.phone"),
	)
}

func (r *MeasurementRepository) GetWithCustomer(ctx context.Context, id int64) (*domain.Measurement, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var m domain.Measurement
	if err := db.Preload("Customer").First(&m, id).Error; err != nil {
		return nil, r.classify(err)
	}
	return &m, nil
}

func (r *MeasurementRepository) AppendHistory(ctx context.Context, h *domain.MeasurementHistory) error {
	return r.history.Create(ctx, h)
}

func (r *MeasurementRepository) History(ctx context.Context, measurementID int64) ([]domain.MeasurementHistory, error) {
	db, err := r.history.conn(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.MeasurementHistory{}
	if err := db.Where("measurement_id = ?", measurementID).Order("id").Find(&out).Error; err != nil {
		return nil, r.history.classify(err)
	}
	return out, nil
}

// MarkExpired flags every matching measurement and returns how many rows changed.
func (r *MeasurementRepository) MarkExpired(ctx context.Context, c ExpiryCriteria) (int64, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	// UpdateColumn keeps updated_at, which the updated_at criteria depend on
	res := db.Model(&domain.Measurement{}).Scopes(c.scope).UpdateColumn("is_expired", true)
	if res.Error != nil {
		return 0, r.classify(res.Error)
	}
	return res.RowsAffected, nil
}

// Stale returns the id and customer of matching measurements without changing them.
func (r *MeasurementRepository) Stale(ctx context.Context, c ExpiryCriteria) ([]domain.Measurement, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Measurement{}
	if err := db.Select("id", "customer_id").Scopes(c.scope).Order("id").Find(&out).Error; err != nil {
		return nil, r.classify(err)
	}
	return out, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// ClearProfile detaches every measurement from a profile that is being deleted.
func (r *MeasurementRepository) ClearProfile(ctx context.Context, profileID int64) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	res := db.Model(&domain.Measurement{}).Where("profile_id = ?", profileID).UpdateColumn("profile_id", nil)
	return r.classify(res.Error)
}
