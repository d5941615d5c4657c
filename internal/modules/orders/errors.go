package orders

import "tailorshop/internal/pkg/apperr"

var (
	ErrNegativeAmount      = apperr.Validation("price and deposit must not be negative")
	ErrDepositExceedsPrice = apperr.Validation("deposit must not exceed price")
	ErrMeasurementCustomer = apperr.Validation("measurement belongs to a different customer")
)
