package database

import (
	"errors"

	"tailorshop/internal/pkg/apperr"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	pgUndefinedTable      = "42P01"
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func sqliteCode(err error) int {
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code()
	}
	return 0
}

func IsUndefinedTable(err error) bool {
	return pgCode(err) == pgUndefinedTable
}

func IsUniqueViolation(err error) bool {
	if pgCode(err) == pgUniqueViolation {
		return true
	}
	code := sqliteCode(err)
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation || sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

// Classify converts a driver or gorm error into the apperr taxonomy. resource names
// the entity for not-found and conflict messages.
func Classify(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(resource)
	case IsUndefinedTable(err):
		return &apperr.Error{Kind: apperr.KindSchemaNotReady, Message: resource + " feature is not available yet", Err: err}
	case IsUniqueViolation(err):
		return &apperr.Error{Kind: apperr.KindConflict, Message: resource + " already exists", Err: err}
	case IsForeignKeyViolation(err):
		return &apperr.Error{Kind: apperr.KindConflict, Message: resource + " is referenced by other records", Err: err}
	default:
		return apperr.Wrap(err, "database error")
	}
}
