package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"tailorshop/internal/config"
	"tailorshop/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Connect opens the pool for cfg.URL: postgres for postgres URLs, sqlite otherwise.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var (
		db  *gorm.DB
		err error
	)
	sqliteMode := !IsPostgres(cfg.URL)
	if sqliteMode {
		logrus.WithField("dsn", cfg.URL).Info("using sqlite database")
		db, err = gorm.Open(gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        cfg.URL,
		}), gcfg)
	} else {
		logrus.Info("connecting to postgres")
		db, err = gorm.Open(postgres.Open(withConnectTimeout(cfg.URL, cfg.ConnectTimeout)), gcfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if sqliteMode {
		// sqlite serialises writers; one connection also keeps in-memory databases alive
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func withConnectTimeout(dsn string, timeout time.Duration) string {
	if timeout <= 0 {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	q := u.Query()
	if q.Get("connect_timeout") == "" {
		secs := int(timeout / time.Second)
		if secs < 1 {
			secs = 1
		}
		q.Set("connect_timeout", fmt.Sprint(secs))
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Models lists every table the application knows about, core tables first.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Customer{},
		&domain.Measurement{},
		&domain.MeasurementHistory{},
		&domain.Order{},
		&domain.Fitting{},
		&domain.MeasurementTemplate{},
		&domain.MeasurementProfile{},
		&domain.ValidationRule{},
		&domain.ExpiryRule{},
		&domain.GarmentFeedback{},
		&domain.Reminder{},
		&domain.TaskAssignment{},
		&domain.Notification{},
		&domain.Permission{},
		&domain.AuditLog{},
		&domain.BackupLog{},
	}
}

// AutoMigrate creates or updates the given models, or all of Models() when none are given.
func AutoMigrate(db *gorm.DB, models ...any) error {
	if len(models) == 0 {
		models = Models()
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// Prepare brings the schema up to date: SQL migrations when enabled, AutoMigrate otherwise.
func Prepare(db *gorm.DB, cfg config.DatabaseConfig) error {
	if cfg.Migrations {
		return RunMigrations(cfg.URL)
	}
	return AutoMigrate(db)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
