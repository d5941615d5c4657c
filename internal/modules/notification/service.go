package notification

import (
	"context"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
)

// Service serves the caller's own inbox. Every operation is keyed on the
// principal, so another user's notification reads as not found.
type Service struct {
	repo NotificationRepository
	now  func() time.Time
}

func NewService(repo NotificationRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, p access.Principal, unreadOnly bool, page pagination.Params) ([]domain.Notification, int64, error) {
	return s.repo.List(ctx, p.ID, unreadOnly, page)
}

func (s *Service) UnreadCount(ctx context.Context, p access.Principal) (int64, error) {
	return s.repo.CountUnread(ctx, p.ID)
}

// MarkRead keeps the first read_at when called again.
func (s *Service) MarkRead(ctx context.Context, p access.Principal, id int64) (*domain.Notification, error) {
	return s.repo.MarkRead(ctx, id, p.ID, s.now().UTC())
}

func (s *Service) MarkAllRead(ctx context.Context, p access.Principal) (int64, error) {
	return s.repo.MarkAllRead(ctx, p.ID, s.now().UTC())
}
