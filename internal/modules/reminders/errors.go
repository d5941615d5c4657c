package reminders

import "tailorshop/internal/pkg/apperr"

var (
	ErrSnoozeInPast = apperr.Validation("until must be in the future")
	ErrClosed       = apperr.Conflict("reminder is already sent or cancelled")
)
