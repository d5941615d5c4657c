package app

import (
	"context"
	"fmt"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/config"
	"tailorshop/internal/database"
	"tailorshop/internal/lock"
	"tailorshop/internal/logger"
	"tailorshop/internal/pkg/jwt"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App holds the process-wide dependencies shared by the HTTP server and the CLIs.
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Schema *database.Schema
	Tokens *jwt.Service
	Policy *access.Policy
	Sink   sideeffect.Sink
	Locker lock.Locker

	dispatcher *sideeffect.Dispatcher
	redis      *redis.Client
}

// New opens the database, prepares the schema and wires the shared services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Prepare(db, cfg.Database); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("prepare schema: %w", err)
	}
	a := Assemble(cfg, db)

	if cfg.RedisAddr != "" {
		rdb, err := lock.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Default().WithError(err).Warn("redis unavailable, sweep lock is process-local")
		} else {
			a.redis = rdb
			a.Locker = lock.NewRedis(rdb, cfg.SweepLockTTL)
		}
	}
	if missing := a.Schema.Missing(); len(missing) > 0 {
		logger.Default().WithField("tables", missing).Warn("optional tables missing; dependent features are disabled")
	}
	return a, nil
}

// Assemble wires an App around an open database with an asynchronous side-effect
// dispatcher and a process-local lock.
func Assemble(cfg *config.Config, db *gorm.DB) *App {
	schema := database.ProbeSchema(db)
	dispatcher := sideeffect.NewDispatcher(repository.NewSideEffectRepository(db, schema), cfg.SideEffectBuffer)
	return &App{
		Config:     cfg,
		DB:         db,
		Schema:     schema,
		Tokens:     jwt.New(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL),
		Policy:     access.DefaultPolicy(),
		Sink:       dispatcher,
		Locker:     lock.NewLocal(),
		dispatcher: dispatcher,
	}
}

// Close drains pending side effects and releases connections.
func (a *App) Close(ctx context.Context) error {
	if a.dispatcher != nil {
		if err := a.dispatcher.Close(ctx); err != nil {
			logger.Default().WithError(err).Warn("side effects dropped on shutdown")
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	return database.Close(a.DB)
}

// Ping reports whether the database answers within timeout.
func (a *App) Ping(ctx context.Context, timeout time.Duration) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
