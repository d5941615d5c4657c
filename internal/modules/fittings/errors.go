package fittings

import "tailorshop/internal/pkg/apperr"

var (
	ErrNotYourFitting = apperr.Authorization("fitting is assigned to another tailor")
	ErrNotATailor     = apperr.Validation("tailor_id must reference a user with role tailor")
	ErrReassign       = apperr.Authorization("tailors cannot assign fittings to someone else")
)
