// Command sweep runs the measurement expiry sweep once, for cron.
package main

import (
	"context"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/app"
	"tailorshop/internal/config"
	"tailorshop/internal/database"
	"tailorshop/internal/logger"
	"tailorshop/internal/modules/expiry"
	"tailorshop/internal/repository"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Default().WithError(err).Fatal("load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log := logger.Default()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SweepLockTTL)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("start application")
	}
	defer func() {
		closeCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = a.Close(closeCtx)
	}()

	sweeper := expiry.NewSweeper(
		repository.NewExpiryRuleRepository(a.DB, a.Schema),
		repository.NewMeasurementRepository(a.DB),
		repository.NewReminderRepository(a.DB, a.Schema),
		database.NewTransactor(a.DB),
		a.Locker,
		a.Sink,
	)
	ctx, _ = logger.WithIdentity(ctx, "cli:sweep")
	res, err := sweeper.Run(ctx, access.Principal{})
	if err != nil {
		log.WithError(err).Error("expiry sweep failed")
		return
	}
	log.WithFields(logrus.Fields{
		"rules":    res.Rules,
		"marked":   res.Marked,
		"reminded": res.Reminded,
		"skipped":  res.Skipped,
	}).Info("expiry sweep completed")
}
