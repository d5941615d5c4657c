package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	UserID       int64      `json:"user_id" gorm:"not null;index"`
	Type         string     `json:"type" gorm:"size:50;not null"`
	Title        string     `json:"title" gorm:"size:255;not null"`
	Body         string     `json:"body,omitempty" gorm:"type:text"`
	ResourceType string     `json:"resource_type,omitempty" gorm:"size:50"`
	ResourceID   *int64     `json:"resource_id,omitempty"`
	ReadAt       *time.Time `json:"read_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// Permission rows mirror the grant table shown to clients.
type Permission struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Role         UserRole  `json:"role" gorm:"size:20;not null;uniqueIndex:idx_permissions_grant"`
	ResourceType string    `json:"resource_type" gorm:"size:50;not null;uniqueIndex:idx_permissions_grant"`
	Action       string    `json:"action" gorm:"size:20;not null;uniqueIndex:idx_permissions_grant"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Permission) TableName() string { return "permissions" }

type AuditLog struct {
	ID           int64             `json:"id" gorm:"primaryKey"`
	UserID       *int64            `json:"user_id,omitempty" gorm:"index"`
	Action       string            `json:"action" gorm:"size:50;not null;index"`
	ResourceType string            `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *int64            `json:"resource_id,omitempty"`
	Details      datatypes.JSONMap `json:"details,omitempty"`
	RequestID    string            `json:"request_id,omitempty" gorm:"size:64"`
	CreatedAt    time.Time         `json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }

type BackupStatus string

const (
	BackupRunning   BackupStatus = "running"
	BackupCompleted BackupStatus = "completed"
	BackupFailed    BackupStatus = "failed"
)

type BackupLog struct {
	ID           int64             `json:"id" gorm:"primaryKey"`
	Status       BackupStatus      `json:"status" gorm:"size:20;not null"`
	StartedBy    *int64            `json:"started_by,omitempty"`
	Counts       datatypes.JSONMap `json:"counts,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty" gorm:"size:500"`
	StartedAt    time.Time         `json:"started_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}

func (BackupLog) TableName() string { return "backup_logs" }
