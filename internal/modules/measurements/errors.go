package measurements

import "tailorshop/internal/pkg/apperr"

var (
	ErrNoChanges       = apperr.Validation("no fields to update")
	ErrProfileCustomer = apperr.Validation("profile belongs to a different customer")
)
