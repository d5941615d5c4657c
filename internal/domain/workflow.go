package domain

import "time"

type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "pending"
	ReminderSent      ReminderStatus = "sent"
	ReminderSnoozed   ReminderStatus = "snoozed"
	ReminderCancelled ReminderStatus = "cancelled"
)

var ReminderStatuses = []ReminderStatus{ReminderPending, ReminderSent, ReminderSnoozed, ReminderCancelled}

// ReminderMeasurementRefresh is created by the expiry sweep for stale measurements.
const ReminderMeasurementRefresh = "measurement_refresh"

type Reminder struct {
	ID            int64          `json:"id" gorm:"primaryKey"`
	CustomerID    int64          `json:"customer_id" gorm:"not null;index"`
	MeasurementID *int64         `json:"measurement_id,omitempty" gorm:"index"`
	ReminderType  string         `json:"reminder_type" gorm:"size:50;not null"`
	DueAt         time.Time      `json:"due_at" gorm:"not null;index"`
	Status        ReminderStatus `json:"status" gorm:"size:20;not null;default:pending"`
	Channel       string         `json:"channel,omitempty" gorm:"size:20"`
	Notes         string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy     *int64         `json:"created_by,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Reminder) TableName() string { return "reminders" }

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

var TaskStatuses = []TaskStatus{TaskPending, TaskInProgress, TaskCompleted, TaskCancelled}

type TaskAssignment struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	AssigneeID   int64      `json:"assignee_id" gorm:"not null;index"`
	TaskType     string     `json:"task_type" gorm:"size:50;not null"`
	Title        string     `json:"title,omitempty" gorm:"size:255"`
	ResourceType string     `json:"resource_type,omitempty" gorm:"size:50"`
	ResourceID   *int64     `json:"resource_id,omitempty"`
	DueAt        *time.Time `json:"due_at,omitempty"`
	Status       TaskStatus `json:"status" gorm:"size:20;not null;default:pending;index"`
	Notes        string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy    *int64     `json:"created_by,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (TaskAssignment) TableName() string { return "task_assignments" }
