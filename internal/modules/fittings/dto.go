package fittings

type FittingRequest struct {
	CustomerID    int64  `json:"customer_id" validate:"required,gt=0"`
	MeasurementID *int64 `json:"measurement_id" validate:"omitempty,gt=0"`
	OrderID       *int64 `json:"order_id" validate:"omitempty,gt=0"`
	TailorID      *int64 `json:"tailor_id" validate:"omitempty,gt=0"`
	ScheduledAt   string `json:"scheduled_at" validate:"required"`
	Status        string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled no_show"`
	Notes         string `json:"notes" validate:"max=4000"`
	Branch        string `json:"branch" validate:"max=100"`
}

type UpdateFittingRequest struct {
	TailorID    *int64  `json:"tailor_id" validate:"omitempty,gt=0"`
	ScheduledAt *string `json:"scheduled_at" validate:"omitempty,min=1"`
	Status      *string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled no_show"`
	Notes       *string `json:"notes" validate:"omitempty,max=4000"`
	Branch      *string `json:"branch" validate:"omitempty,max=100"`
}
