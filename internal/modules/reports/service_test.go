package reports

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fakeReports returns fixed figures; missing marks optional tables as absent.
type fakeReports struct {
	missing bool
	window  repository.Window
}

func (f *fakeReports) Customers(_ context.Context, w repository.Window) (int64, error) {
	f.window = w
	return 12, nil
}

func (f *fakeReports) Measurements(_ context.Context, _ repository.Window, expiredOnly bool) (int64, error) {
	if expiredOnly {
		return 3, nil
	}
	return 20, nil
}

func (f *fakeReports) OrdersByStatus(context.Context, repository.Window) (map[string]int64, error) {
	return map[string]int64{"pending": 4, "delivered": 6}, nil
}

func (f *fakeReports) Revenue(context.Context, repository.Window) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.RequireFromString("1250.50"), decimal.RequireFromString("400.25"), nil
}

func (f *fakeReports) UpcomingFittings(_ context.Context, from, to time.Time) (int64, error) {
	if to.Sub(from) != upcomingHorizon {
		return 0, nil
	}
	return 2, nil
}

func (f *fakeReports) OpenTasks(context.Context) (int64, error) {
	if f.missing {
		return 0, apperr.SchemaNotReady("task_assignments")
	}
	return 5, nil
}

func (f *fakeReports) PendingReminders(context.Context) (int64, error) {
	if f.missing {
		return 0, apperr.SchemaNotReady("reminders")
	}
	return 1, nil
}

func (f *fakeReports) FitFeedback(context.Context, repository.Window) (map[string]int64, error) {
	if f.missing {
		return nil, apperr.SchemaNotReady("garment_feedback")
	}
	return map[string]int64{"perfect": 7}, nil
}

func TestSummary(t *testing.T) {
	repo := &fakeReports{}
	svc := NewService(repo, nil)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s, err := svc.Summary(context.Background(), repository.Window{From: &from})
	require.NoError(t, err)
	assert.Equal(t, &from, repo.window.From)
	assert.Equal(t, int64(12), s.Customers)
	assert.Equal(t, int64(3), s.ExpiredMeasurements)
	assert.Equal(t, int64(0), s.OrdersByStatus["cancelled"])
	assert.Equal(t, int64(6), s.OrdersByStatus["delivered"])
	assert.Len(t, s.OrdersByStatus, len(domain.OrderStatuses))
	assert.Equal(t, "850.25", s.Revenue.Outstanding.StringFixed(2))
	assert.Equal(t, int64(2), s.UpcomingFittings)
	assert.Equal(t, int64(5), s.OpenTasks)
	assert.Equal(t, int64(7), s.FitFeedback["perfect"])
	assert.Equal(t, int64(0), s.FitFeedback["too_tight"])
}

func TestSummary_OptionalTablesMissing(t *testing.T) {
	svc := NewService(&fakeReports{missing: true}, nil)

	s, err := svc.Summary(context.Background(), repository.Window{})
	require.NoError(t, err)
	assert.Zero(t, s.OpenTasks)
	assert.Zero(t, s.PendingReminders)
	assert.Len(t, s.FitFeedback, len(domain.FitFeedbackValues))
	assert.Equal(t, int64(20), s.Measurements)
}

func TestWriteOrders(t *testing.T) {
	delivery := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.Order{
		{
			ID: 1, GarmentType: "suit", Status: domain.OrderPending, DeliveryDate: &delivery,
			Price: decimal.RequireFromString("300"), Deposit: decimal.RequireFromString("100"),
			Customer: &domain.Customer{Name: "Ada Lovelace", Phone: "+447700900123"},
		},
		{ID: 2, GarmentType: "shirt", Status: domain.OrderReady},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(ordersSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, orderColumns, got[0])
	assert.Equal(t, "Ada Lovelace", got[1][1])
	assert.Equal(t, "2026-06-01", got[1][6])
	assert.Equal(t, "200", got[1][9])
	assert.Equal(t, "ready", got[2][5])
}
