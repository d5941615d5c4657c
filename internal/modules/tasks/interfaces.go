package tasks

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
)

type TaskRepository interface {
	Create(ctx context.Context, t *domain.TaskAssignment) error
	GetByID(ctx context.Context, id int64) (*domain.TaskAssignment, error)
	Update(ctx context.Context, t *domain.TaskAssignment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.TaskFilter, p pagination.Params) ([]domain.TaskAssignment, int64, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
