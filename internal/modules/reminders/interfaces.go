package reminders

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
)

type ReminderRepository interface {
	Create(ctx context.Context, r *domain.Reminder) error
	GetByID(ctx context.Context, id int64) (*domain.Reminder, error)
	Update(ctx context.Context, r *domain.Reminder) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.ReminderFilter, p pagination.Params) ([]domain.Reminder, int64, error)
}

type CustomerLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}
