package database

import (
	"sync"

	"gorm.io/gorm"
)

const (
	TableUsers              = "users"
	TableCustomers          = "customers"
	TableMeasurements       = "measurements"
	TableMeasurementHistory = "measurement_history"
	TableOrders             = "orders"
	TableFittings           = "fittings"

	TableTemplates       = "measurement_templates"
	TableProfiles        = "measurement_profiles"
	TableValidationRules = "validation_rules"
	TableExpiryRules     = "expiry_rules"
	TableFeedback        = "garment_feedback"
	TableReminders       = "reminders"
	TableTasks           = "task_assignments"
	TableNotifications   = "notifications"
	TablePermissions     = "permissions"
	TableAuditLogs       = "audit_logs"
	TableBackupLogs      = "backup_logs"
)

// OptionalTables may be missing while a deployment rolls its schema forward.
var OptionalTables = []string{
	TableTemplates,
	TableProfiles,
	TableValidationRules,
	TableExpiryRules,
	TableFeedback,
	TableReminders,
	TableTasks,
	TableNotifications,
	TablePermissions,
	TableAuditLogs,
	TableBackupLogs,
}

// Schema records which optional tables exist. A nil *Schema reports every table present.
type Schema struct {
	mu      sync.RWMutex
	present map[string]bool
}

// ProbeSchema asks the migrator which optional tables exist.
func ProbeSchema(db *gorm.DB) *Schema {
	s := &Schema{present: make(map[string]bool, len(OptionalTables))}
	m := db.Migrator()
	for _, table := range OptionalTables {
		s.present[table] = m.HasTable(table)
	}
	return s
}

// NewSchema builds a schema with exactly the given optional tables present.
func NewSchema(tables ...string) *Schema {
	s := &Schema{present: make(map[string]bool, len(tables))}
	for _, t := range tables {
		s.present[t] = true
	}
	return s
}

func (s *Schema) Has(table string) bool {
	if s == nil {
		return true
	}
	if !isOptional(table) {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.present[table]
}

// MarkMissing records a table reported missing by the driver at runtime.
func (s *Schema) MarkMissing(table string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.present[table] = false
	s.mu.Unlock()
}

// Missing lists the optional tables not present, for the health endpoint.
func (s *Schema) Missing() []string {
	var out []string
	for _, t := range OptionalTables {
		if !s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func isOptional(table string) bool {
	for _, t := range OptionalTables {
		if t == table {
			return true
		}
	}
	return false
}
