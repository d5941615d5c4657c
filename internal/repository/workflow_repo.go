package repository

import (
	"context"
	"time"

	"tailorshop/internal/database"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"

	"gorm.io/gorm"
)

type ReminderRepository struct {
	crud[domain.Reminder]
}

func NewReminderRepository(db *gorm.DB, schema *database.Schema) *ReminderRepository {
	return &ReminderRepository{crud: newCrud[domain.Reminder](db, schema, database.TableReminders, "reminder")}
}

type ReminderFilter struct {
	Status       string
	CustomerID   *int64
	ReminderType string
	DueBefore    *time.Time
}

func (r *ReminderRepository) List(ctx context.Context, f ReminderFilter, p pagination.Params) ([]domain.Reminder, int64, error) {
	return r.page(ctx, p, "due_at, id",
		when(f.Status != "", eq("status", f.Status)),
		when(f.CustomerID != nil, eq("customer_id", deref(f.CustomerID))),
		when(f.ReminderType != "", eq("reminder_type", f.ReminderType)),
		when(f.DueBefore != nil, func(db *gorm.DB) *gorm.DB { return db.Where("due_at <= ?", deref(f.DueBefore)) }),
	)
}

// PendingFor reports which of measurementIDs already have a pending reminder of kind.
func (r *ReminderRepository) PendingFor(ctx context.Context, kind string, measurementIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	if len(measurementIDs) == 0 {
		return out, nil
	}
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var ids []int64
	err = db.Model(&domain.Reminder{}).
		Where("reminder_type = ? AND status = ? AND measurement_id IN ?", kind, domain.ReminderPending, measurementIDs).
		Pluck("measurement_id", &ids).Error
	if err != nil {
		return nil, r.classify(err)
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

type TaskRepository struct {
	crud[domain.TaskAssignment]
}

func NewTaskRepository(db *gorm.DB, schema *database.Schema) *TaskRepository {
	return &TaskRepository{crud: newCrud[domain.TaskAssignment](db, schema, database.TableTasks, "task")}
}

type TaskFilter struct {
	Status     string
	AssigneeID *int64
	TaskType   string
}

func (r *TaskRepository) List(ctx context.Context, f TaskFilter, p pagination.Params) ([]domain.TaskAssignment, int64, error) {
	return r.page(ctx, p, "id DESC",
		when(f.Status != "", eq("status", f.Status)),
		when(f.AssigneeID != nil, eq("assignee_id", deref(f.AssigneeID))),
		when(f.TaskType != "", eq("task_type", f.TaskType)),
	)
}

type NotificationRepository struct {
	crud[domain.Notification]
}

func NewNotificationRepository(db *gorm.DB, schema *database.Schema) *NotificationRepository {
	return &NotificationRepository{crud: newCrud[domain.Notification](db, schema, database.TableNotifications, "notification")}
}

func (r *NotificationRepository) List(ctx context.Context, userID int64, unreadOnly bool, p pagination.Params) ([]domain.Notification, int64, error) {
	return r.page(ctx, p, "id DESC",
		eq("user_id", userID),
		when(unreadOnly, func(db *gorm.DB) *gorm.DB { return db.Where("read_at IS NULL") }),
	)
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return r.Count(ctx, eq("user_id", userID), func(db *gorm.DB) *gorm.DB { return db.Where("read_at IS NULL") })
}

// MarkRead sets read_at on the user's notification if unset and returns the row.
// Reading an already-read notification leaves read_at untouched.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64, at time.Time) (*domain.Notification, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	err = db.Model(&domain.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		UpdateColumn("read_at", at).Error
	if err != nil {
		return nil, r.classify(err)
	}
	var n domain.Notification
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		return nil, r.classify(err)
	}
	return &n, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64, at time.Time) (int64, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	res := db.Model(&domain.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		UpdateColumn("read_at", at)
	if res.Error != nil {
		return 0, r.classify(res.Error)
	}
	return res.RowsAffected, nil
}

type PermissionRepository struct {
	crud[domain.Permission]
}

func NewPermissionRepository(db *gorm.DB, schema *database.Schema) *PermissionRepository {
	return &PermissionRepository{crud: newCrud[domain.Permission](db, schema, database.TablePermissions, "permission")}
}

func (r *PermissionRepository) List(ctx context.Context, role string, p pagination.Params) ([]domain.Permission, int64, error) {
	return r.page(ctx, p, "role, resource_type, action", when(role != "", eq("role", role)))
}
