package customers

import "tailorshop/internal/pkg/apperr"

var ErrCustomerInUse = apperr.Conflict("customer still has measurements, orders or fittings")
