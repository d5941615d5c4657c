package backup

import (
	"time"

	"tailorshop/internal/domain"
)

// Document is the full data export. Users carry public fields only.
type Document struct {
	ExportedAt   time.Time            `json:"exported_at"`
	ExportedBy   int64                `json:"exported_by"`
	BackupID     int64                `json:"backup_id,omitempty"`
	Customers    []domain.Customer    `json:"customers"`
	Measurements []domain.Measurement `json:"measurements"`
	Users        []domain.PublicUser  `json:"users"`
	Orders       []domain.Order       `json:"orders"`
	Fittings     []domain.Fitting     `json:"fittings"`
}

func (d *Document) counts() map[string]any {
	return map[string]any{
		"customers":    len(d.Customers),
		"measurements": len(d.Measurements),
		"users":        len(d.Users),
		"orders":       len(d.Orders),
		"fittings":     len(d.Fittings),
	}
}
