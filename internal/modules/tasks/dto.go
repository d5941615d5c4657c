package tasks

type TaskRequest struct {
	AssigneeID   int64   `json:"assignee_id" validate:"required,gt=0"`
	TaskType     string  `json:"task_type" validate:"required,max=50"`
	Title        string  `json:"title" validate:"max=255"`
	ResourceType string  `json:"resource_type" validate:"max=50"`
	ResourceID   *int64  `json:"resource_id" validate:"omitempty,gt=0"`
	DueAt        *string `json:"due_at"`
	Notes        string  `json:"notes" validate:"max=4000"`
}

type UpdateTaskRequest struct {
	AssigneeID *int64  `json:"assignee_id" validate:"omitempty,gt=0"`
	Title      *string `json:"title" validate:"omitempty,max=255"`
	DueAt      *string `json:"due_at"`
	Status     *string `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Notes      *string `json:"notes" validate:"omitempty,max=4000"`
}
