package access

import "tailorshop/internal/domain"

// Principal is the identity carried by a verified token.
type Principal struct {
	ID    int64           `json:"id"`
	Email string          `json:"email"`
	Role  domain.UserRole `json:"role"`
}

func (p Principal) Is(roles ...domain.UserRole) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Scope is the outcome of a policy check for one request.
type Scope struct {
	Principal Principal
	Effect    Effect
}

// Unrestricted is the scope of internal callers such as CLI tools.
func Unrestricted(p Principal) Scope {
	return Scope{Principal: p, Effect: Allow}
}

func (s Scope) SelfOnly() bool { return s.Effect == SelfOnly }

// Owns reports whether the scope may touch a row assigned to ownerID.
func (s Scope) Owns(ownerID *int64) bool {
	if !s.SelfOnly() {
		return s.Effect == Allow
	}
	return ownerID != nil && *ownerID == s.Principal.ID
}

// OwnerFilter returns the id list queries must be restricted to, or nil.
func (s Scope) OwnerFilter() *int64 {
	if !s.SelfOnly() {
		return nil
	}
	id := s.Principal.ID
	return &id
}
