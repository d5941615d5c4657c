package notification

import (
	"context"
	"time"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
)

type NotificationRepository interface {
	List(ctx context.Context, userID int64, unreadOnly bool, p pagination.Params) ([]domain.Notification, int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64, at time.Time) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID int64, at time.Time) (int64, error)
}
