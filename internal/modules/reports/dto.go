package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

type Revenue struct {
	Billed      decimal.Decimal `json:"billed"`
	Collected   decimal.Decimal `json:"collected"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type Summary struct {
	From                *time.Time       `json:"from,omitempty"`
	To                  *time.Time       `json:"to,omitempty"`
	Customers           int64            `json:"customers"`
	Measurements        int64            `json:"measurements"`
	ExpiredMeasurements int64            `json:"expired_measurements"`
	OrdersByStatus      map[string]int64 `json:"orders_by_status"`
	Revenue             Revenue          `json:"revenue"`
	UpcomingFittings    int64            `json:"upcoming_fittings"`
	OpenTasks           int64            `json:"open_tasks"`
	PendingReminders    int64            `json:"pending_reminders"`
	FitFeedback         map[string]int64 `json:"fit_feedback"`
	GeneratedAt         time.Time        `json:"generated_at"`
}
