package audit

import (
	"context"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
)

type AuditRepository interface {
	List(ctx context.Context, f repository.AuditFilter, p pagination.Params) ([]domain.AuditLog, int64, error)
}

// Service exposes the audit trail read-only; rows are written by the side-effect sink.
type Service struct {
	repo AuditRepository
}

func NewService(repo AuditRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, f repository.AuditFilter, p pagination.Params) ([]domain.AuditLog, int64, error) {
	return s.repo.List(ctx, f, p)
}
