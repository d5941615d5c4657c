package auth

import "tailorshop/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.Authentication("invalid email or password")
	ErrEmailAlreadyExists = apperr.Conflict("email already registered")
)
