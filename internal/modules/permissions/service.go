package permissions

import (
	"context"
	"strings"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/sideeffect"
)

// Service manages the stored permission rows. Request authorization is
// decided by the in-process policy; the rows are what clients display.
type Service struct {
	repo   PermissionRepository
	policy *access.Policy
	sink   sideeffect.Sink
}

func NewService(repo PermissionRepository, policy *access.Policy, sink sideeffect.Sink) *Service {
	return &Service{repo: repo, policy: policy, sink: sink}
}

func (s *Service) List(ctx context.Context, role string, p pagination.Params) ([]domain.Permission, int64, error) {
	return s.repo.List(ctx, role, p)
}

func (s *Service) Effective(p access.Principal) Effective {
	grants := s.policy.Effective(p.Role)
	if grants == nil {
		grants = []access.Grant{}
	}
	return Effective{Role: string(p.Role), Grants: grants}
}

func (s *Service) Create(ctx context.Context, actor access.Principal, req PermissionRequest) (*domain.Permission, error) {
	perm := &domain.Permission{
		Role:         domain.UserRole(req.Role),
		ResourceType: strings.TrimSpace(req.ResourceType),
		Action:       req.Action,
	}
	if err := s.repo.Create(ctx, perm); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Permissions), perm.ID,
		map[string]any{"role": perm.Role, "resource_type": perm.ResourceType, "action": perm.Action}))
	return perm, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Principal, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "delete", string(access.Permissions), id, nil))
	return nil
}
