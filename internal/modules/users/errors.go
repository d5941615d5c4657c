package users

import "tailorshop/internal/pkg/apperr"

var (
	ErrEmailAlreadyExists = apperr.Conflict("email already registered")
	ErrSelfDelete         = apperr.Validation("you cannot delete your own account")
)
