package measurements

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
)

type MeasurementRepository interface {
	Create(ctx context.Context, m *domain.Measurement) error
	GetByID(ctx context.Context, id int64) (*domain.Measurement, error)
	GetWithCustomer(ctx context.Context, id int64) (*domain.Measurement, error)
	Update(ctx context.Context, m *domain.Measurement) error
	List(ctx context.Context, f repository.MeasurementFilter, p pagination.Params) ([]domain.Measurement, int64, error)
	AppendHistory(ctx context.Context, h *domain.MeasurementHistory) error
	History(ctx context.Context, measurementID int64) ([]domain.MeasurementHistory, error)
	ClearProfile(ctx context.Context, profileID int64) error
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Customer, error)
}

// RuleSource supplies the active validation rules.
type RuleSource interface {
	Active(ctx context.Context) ([]domain.ValidationRule, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, p *domain.MeasurementProfile) error
	GetByID(ctx context.Context, id int64) (*domain.MeasurementProfile, error)
	Delete(ctx context.Context, id int64) error
	ListByCustomer(ctx context.Context, customerID int64, p pagination.Params) ([]domain.MeasurementProfile, int64, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.GarmentFeedback) error
	ListByMeasurement(ctx context.Context, measurementID int64, p pagination.Params) ([]domain.GarmentFeedback, int64, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
