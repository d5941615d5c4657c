package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tailorshop/internal/config"
	"tailorshop/internal/database"
	"tailorshop/internal/domain"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	t      *testing.T
	app    *App
	router *gin.Engine
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:                  "test",
		Auth:                    config.AuthConfig{JWTSecret: "router-test-secret", JWTTTL: time.Hour},
		CORSAllowedOrigins:      []string{"*"},
		SideEffectBuffer:        16,
		SweepLockTTL:            time.Minute,
		MeasurementValidityDays: 365,
		DefaultPhoneRegion:      "US",
	}
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(config.DatabaseConfig{URL: fmt.Sprintf("file:app_%s?mode=memory&cache=shared", name)})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// newHarness wires the router over db with side effects written inline, so
// notifications and audit rows are visible as soon as a request returns.
func newHarness(t *testing.T, db *gorm.DB) *harness {
	t.Helper()
	a := Assemble(testConfig(), db)
	a.Sink = sideeffect.Inline{Store: repository.NewSideEffectRepository(db, a.Schema)}
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return &harness{t: t, app: a, router: a.Router()}
}

func (h *harness) user(name string, role domain.UserRole) (int64, string) {
	h.t.Helper()
	u := &domain.User{Name: name, Email: strings.ToLower(name) + "@shop.test", PasswordHash: "x", Role: role}
	require.NoError(h.t, h.app.DB.Create(u).Error)
	token, err := h.app.Tokens.GenerateToken(u.ID, u.Email, string(role))
	require.NoError(h.t, err)
	return u.ID, token
}

func (h *harness) customer() int64 {
	h.t.Helper()
	c := &domain.Customer{Name: "Grace Hopper", Phone: "+12025550143"}
	require.NoError(h.t, h.app.DB.Create(c).Error)
	return c.ID
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
	Error string `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) (T, envelope) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	var out T
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &out))
	}
	return out, env
}

func TestHealthAndMethodNotAllowed(t *testing.T) {
	h := newHarness(t, openDB(t))

	w := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = h.do(http.MethodDelete, "/api/v1/auth/login", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	w = h.do(http.MethodGet, "/api/v1/customers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFittings_TailorScope(t *testing.T) {
	h := newHarness(t, openDB(t))
	_, manager := h.user("Manager", domain.RoleManager)
	tailorA, tokenA := h.user("Alice", domain.RoleTailor)
	_, tokenB := h.user("Bob", domain.RoleTailor)
	customerID := h.customer()

	w := h.do(http.MethodPost, "/api/v1/fittings", manager, map[string]any{
		"customer_id": customerID, "tailor_id": tailorA, "scheduled_at": "2026-11-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	fitting, _ := decode[domain.Fitting](t, w)

	path := fmt.Sprintf("/api/v1/fittings/%d", fitting.ID)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, path, tokenA, nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, path, tokenB, nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPatch, path, tokenB, map[string]any{"status": "completed"}).Code)

	_, env := decode[[]domain.Fitting](t, h.do(http.MethodGet, "/api/v1/fittings", tokenA, nil))
	assert.Equal(t, int64(1), env.Pagination.Total)
	_, env = decode[[]domain.Fitting](t, h.do(http.MethodGet, fmt.Sprintf("/api/v1/fittings?tailor_id=%d", tailorA), tokenB, nil))
	assert.Equal(t, int64(0), env.Pagination.Total)

	w = h.do(http.MethodPatch, path, tokenA, map[string]any{"status": "completed"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestNotifications_ReadIsIdempotent(t *testing.T) {
	h := newHarness(t, openDB(t))
	_, manager := h.user("Manager", domain.RoleManager)
	tailor, tailorToken := h.user("Alice", domain.RoleTailor)
	_, otherToken := h.user("Bob", domain.RoleTailor)
	customerID := h.customer()

	w := h.do(http.MethodPost, "/api/v1/fittings", manager, map[string]any{
		"customer_id": customerID, "tailor_id": tailor, "scheduled_at": "2026-11-02",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	notes, env := decode[[]domain.Notification](t, h.do(http.MethodGet, "/api/v1/notifications?unread=true", tailorToken, nil))
	require.Equal(t, int64(1), env.Pagination.Total)
	path := fmt.Sprintf("/api/v1/notifications/%d/read", notes[0].ID)

	first := h.do(http.MethodPatch, path, tailorToken, nil)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	read1, _ := decode[domain.Notification](t, first)
	require.NotNil(t, read1.ReadAt)

	second := h.do(http.MethodPatch, path, tailorToken, nil)
	require.Equal(t, http.StatusOK, second.Code)
	read2, _ := decode[domain.Notification](t, second)
	assert.True(t, read1.ReadAt.Equal(*read2.ReadAt))

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPatch, path, otherToken, nil).Code)
	assert.Contains(t, h.do(http.MethodGet, "/api/v1/notifications/unread-count", tailorToken, nil).Body.String(), `"unread_count":0`)
}

func TestExpirySweep_Idempotent(t *testing.T) {
	db := openDB(t)
	h := newHarness(t, db)
	_, admin := h.user("Admin", domain.RoleAdmin)
	customerID := h.customer()

	old := time.Now().UTC().AddDate(-2, 0, 0)
	for i, ageDays := range []int{0, 800} {
		m := &domain.Measurement{EntryID: fmt.Sprintf("MS-TEST%04d", i), CustomerID: customerID, Units: domain.UnitsMetric, Version: 1}
		require.NoError(t, db.Create(m).Error)
		if ageDays > 0 {
			require.NoError(t, db.Model(m).UpdateColumns(map[string]any{"created_at": old, "updated_at": old}).Error)
		}
	}

	// rules run in id order; the reminder rule must see the row before it is marked
	w := h.do(http.MethodPost, "/api/v1/expiry-rules", admin, map[string]any{
		"name": "nudge", "days_since_created": 365, "action": "remind_only",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = h.do(http.MethodPost, "/api/v1/expiry-rules", admin, map[string]any{
		"name": "one year", "days_since_created": 365, "action": "mark_expired",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	type result struct {
		Marked   int64 `json:"marked"`
		Reminded int64 `json:"reminded"`
	}
	first, _ := decode[result](t, h.do(http.MethodPost, "/api/v1/expiry/sweep", admin, nil))
	assert.Equal(t, int64(1), first.Marked)
	assert.Equal(t, int64(1), first.Reminded)

	second, _ := decode[result](t, h.do(http.MethodPost, "/api/v1/expiry/sweep", admin, nil))
	assert.Zero(t, second.Marked)
	assert.Zero(t, second.Reminded)

	var expired, reminders int64
	db.Model(&domain.Measurement{}).Where("is_expired = ?", true).Count(&expired)
	db.Model(&domain.Reminder{}).Count(&reminders)
	assert.Equal(t, int64(1), expired)
	assert.Equal(t, int64(1), reminders)
}

func TestBackupExport_MatchesTables(t *testing.T) {
	db := openDB(t)
	h := newHarness(t, db)
	_, admin := h.user("Admin", domain.RoleAdmin)
	_, manager := h.user("Manager", domain.RoleManager)
	customerID := h.customer()
	h.customer()
	require.NoError(t, db.Create(&domain.Order{CustomerID: customerID, Status: domain.OrderPending}).Error)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/api/v1/backup/export", manager, nil).Code)

	w := h.do(http.MethodPost, "/api/v1/backup/export", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	type document struct {
		ExportedBy int64             `json:"exported_by"`
		Customers  []json.RawMessage `json:"customers"`
		Users      []json.RawMessage `json:"users"`
		Orders     []json.RawMessage `json:"orders"`
	}
	doc, _ := decode[document](t, w)
	count := func(model any) int {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		return int(n)
	}
	assert.Len(t, doc.Customers, count(&domain.Customer{}))
	assert.Len(t, doc.Users, count(&domain.User{}))
	assert.Len(t, doc.Orders, count(&domain.Order{}))

	var log domain.BackupLog
	require.NoError(t, db.Order("id DESC").First(&log).Error)
	assert.Equal(t, domain.BackupCompleted, log.Status)
}

func TestOptionalTableMissing(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Migrator().DropTable(&domain.Reminder{}))
	h := newHarness(t, db)
	_, manager := h.user("Manager", domain.RoleManager)
	customerID := h.customer()

	w := h.do(http.MethodGet, "/api/v1/reminders", manager, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"pagination":{"page":1,"limit":20,"total":0,"totalPages":0}}`, w.Body.String())

	w = h.do(http.MethodPost, "/api/v1/reminders", manager, map[string]any{
		"customer_id": customerID, "reminder_type": "pickup", "due_at": "2026-12-01",
	})
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	assert.Contains(t, h.do(http.MethodGet, "/health", "", nil).Body.String(), "reminders")
}
