package reminders

type ReminderRequest struct {
	CustomerID    int64  `json:"customer_id" validate:"required,gt=0"`
	MeasurementID *int64 `json:"measurement_id" validate:"omitempty,gt=0"`
	ReminderType  string `json:"reminder_type" validate:"required,max=50"`
	DueAt         string `json:"due_at" validate:"required"`
	Channel       string `json:"channel" validate:"omitempty,oneof=in_app email sms"`
	Notes         string `json:"notes" validate:"max=4000"`
}

type UpdateReminderRequest struct {
	ReminderType *string `json:"reminder_type" validate:"omitempty,min=1,max=50"`
	DueAt        *string `json:"due_at" validate:"omitempty,min=1"`
	Status       *string `json:"status" validate:"omitempty,oneof=pending sent snoozed cancelled"`
	Channel      *string `json:"channel" validate:"omitempty,oneof=in_app email sms"`
	Notes        *string `json:"notes" validate:"omitempty,max=4000"`
}

type SnoozeRequest struct {
	Until string `json:"until" validate:"required"`
}
