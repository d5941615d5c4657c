package repository

import (
	"context"

	"tailorshop/internal/database"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"

	"gorm.io/gorm"
)

type AuditRepository struct {
	crud[domain.AuditLog]
}

func NewAuditRepository(db *gorm.DB, schema *database.Schema) *AuditRepository {
	return &AuditRepository{crud: newCrud[domain.AuditLog](db, schema, database.TableAuditLogs, "audit log")}
}

type AuditFilter struct {
	UserID       *int64
	ResourceType string
	Action       string
}

func (r *AuditRepository) List(ctx context.Context, f AuditFilter, p pagination.Params) ([]domain.AuditLog, int64, error) {
	return r.page(ctx, p, "id DESC",
		when(f.UserID != nil, eq("user_id", deref(f.UserID))),
		when(f.ResourceType != "", eq("resource_type", f.ResourceType)),
		when(f.Action != "", eq("action", f.Action)),
	)
}

type BackupRepository struct {
	crud[domain.BackupLog]
}

func NewBackupRepository(db *gorm.DB, schema *database.Schema) *BackupRepository {
	return &BackupRepository{crud: newCrud[domain.BackupLog](db, schema, database.TableBackupLogs, "backup log")}
}

func (r *BackupRepository) List(ctx context.Context, p pagination.Params) ([]domain.BackupLog, int64, error) {
	return r.page(ctx, p, "id DESC")
}

// SideEffectRepository stores audit and notification rows for the side-effect sink.
// Writes to a table that is not migrated are skipped without error.
type SideEffectRepository struct {
	audits        crud[domain.AuditLog]
	notifications crud[domain.Notification]
}

func NewSideEffectRepository(db *gorm.DB, schema *database.Schema) *SideEffectRepository {
	return &SideEffectRepository{
		audits:        newCrud[domain.AuditLog](db, schema, database.TableAuditLogs, "audit log"),
		notifications: newCrud[domain.Notification](db, schema, database.TableNotifications, "notification"),
	}
}

func (r *SideEffectRepository) InsertAudit(ctx context.Context, entry *domain.AuditLog) error {
	return skipMissing(r.audits.Create(ctx, entry))
}

func (r *SideEffectRepository) InsertNotification(ctx context.Context, n *domain.Notification) error {
	return skipMissing(r.notifications.Create(ctx, n))
}

func skipMissing(err error) error {
	if apperr.Is(err, apperr.KindSchemaNotReady) {
		return nil
	}
	return err
}
