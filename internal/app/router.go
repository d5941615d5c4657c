package app

import (
	"net/http"
	"time"

	"tailorshop/internal/database"
	"tailorshop/internal/logger"
	"tailorshop/internal/middleware"
	"tailorshop/internal/modules/audit"
	"tailorshop/internal/modules/auth"
	"tailorshop/internal/modules/backup"
	"tailorshop/internal/modules/customers"
	"tailorshop/internal/modules/expiry"
	"tailorshop/internal/modules/fittings"
	"tailorshop/internal/modules/measurements"
	"tailorshop/internal/modules/notification"
	"tailorshop/internal/modules/orders"
	"tailorshop/internal/modules/permissions"
	"tailorshop/internal/modules/reminders"
	"tailorshop/internal/modules/reports"
	"tailorshop/internal/modules/rules"
	"tailorshop/internal/modules/tasks"
	"tailorshop/internal/modules/templates"
	"tailorshop/internal/modules/users"
	"tailorshop/internal/pkg/response"
	"tailorshop/internal/repository"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// Router builds the HTTP surface: /health plus every resource under /api/v1.
func (a *App) Router() *gin.Engine {
	if a.Config.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "route not found")
	})
	r.Use(middleware.CORS(a.Config.CORSAllowedOrigins), middleware.RequestLogger(), middleware.Recovery())

	r.GET("/health", a.health)

	var (
		userRepo        = repository.NewUserRepository(a.DB)
		customerRepo    = repository.NewCustomerRepository(a.DB)
		measurementRepo = repository.NewMeasurementRepository(a.DB)
		orderRepo       = repository.NewOrderRepository(a.DB)
		fittingRepo     = repository.NewFittingRepository(a.DB)
		profileRepo     = repository.NewProfileRepository(a.DB, a.Schema)
		templateRepo    = repository.NewTemplateRepository(a.DB, a.Schema)
		ruleRepo        = repository.NewRuleRepository(a.DB, a.Schema)
		expiryRepo      = repository.NewExpiryRuleRepository(a.DB, a.Schema)
		feedbackRepo    = repository.NewFeedbackRepository(a.DB, a.Schema)
		reminderRepo    = repository.NewReminderRepository(a.DB, a.Schema)
		taskRepo        = repository.NewTaskRepository(a.DB, a.Schema)
		notifRepo       = repository.NewNotificationRepository(a.DB, a.Schema)
		permissionRepo  = repository.NewPermissionRepository(a.DB, a.Schema)
		auditRepo       = repository.NewAuditRepository(a.DB, a.Schema)
		backupRepo      = repository.NewBackupRepository(a.DB, a.Schema)
		reportRepo      = repository.NewReportRepository(a.DB, a.Schema)
		tx              = database.NewTransactor(a.DB)
	)
	cfg := a.Config

	authHandler := auth.NewHandler(auth.NewService(userRepo, a.Tokens, a.Sink))
	sweeper := expiry.NewSweeper(expiryRepo, measurementRepo, reminderRepo, tx, a.Locker, a.Sink)

	handlers := []interface{ RegisterRoutes(*gin.RouterGroup) }{
		users.NewHandler(users.NewService(userRepo, a.Sink), a.Policy),
		customers.NewHandler(customers.NewService(customerRepo, a.Sink, cfg.DefaultPhoneRegion), a.Policy),
		measurements.NewHandler(measurements.NewService(
			measurementRepo, customerRepo, ruleRepo, profileRepo, feedbackRepo, tx, a.Sink,
			cfg.MeasurementValidityDays, cfg.DefaultPhoneRegion,
		), a.Policy),
		templates.NewHandler(templates.NewService(templateRepo, a.Sink), a.Policy),
		rules.NewHandler(rules.NewService(ruleRepo, a.Sink), a.Policy),
		expiry.NewHandler(expiry.NewService(expiryRepo, a.Sink), sweeper, a.Policy),
		orders.NewHandler(orders.NewService(orderRepo, customerRepo, measurementRepo, a.Sink), a.Policy),
		fittings.NewHandler(fittings.NewService(fittingRepo, customerRepo, userRepo, a.Sink), a.Policy),
		reminders.NewHandler(reminders.NewService(reminderRepo, customerRepo, a.Sink), a.Policy),
		tasks.NewHandler(tasks.NewService(taskRepo, userRepo, a.Sink), a.Policy),
		notification.NewHandler(notification.NewService(notifRepo), a.Policy),
		permissions.NewHandler(permissions.NewService(permissionRepo, a.Policy, a.Sink), a.Policy),
		reports.NewHandler(reports.NewService(reportRepo, orderRepo), a.Policy),
		backup.NewHandler(backup.NewService(backup.Sources{
			Customers:    customerRepo,
			Measurements: measurementRepo,
			Users:        userRepo,
			Orders:       orderRepo,
			Fittings:     fittingRepo,
		}, backupRepo, tx, a.Sink), a.Policy),
		audit.NewHandler(audit.NewService(auditRepo), a.Policy),
	}

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1, a.loginLimit())

		protected := v1.Group("")
		protected.Use(middleware.RequireAuth(a.Tokens))
		authHandler.RegisterProtectedRoutes(protected)
		for _, h := range handlers {
			h.RegisterRoutes(protected)
		}
	}
	return r
}

func (a *App) loginLimit() gin.HandlerFunc {
	if a.Config.LoginRateLimit == "" {
		return nil
	}
	limit, err := middleware.RateLimit(a.Config.LoginRateLimit)
	if err != nil {
		logger.Default().WithError(err).Warn("login rate limit disabled")
		return nil
	}
	return limit
}

func (a *App) health(c *gin.Context) {
	if err := a.Ping(c.Request.Context(), healthTimeout); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	missing := a.Schema.Missing()
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "missing_tables": missing})
}
