package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"chargepulse/internal/config"
	"chargepulse/internal/repository"
	"chargepulse/internal/service"
	"chargepulse/libs/db"
	"chargepulse/libs/logging"
)

func main() {
	datasets := flag.String("datasets", string(repository.DatasetConsolidated), "comma-separated datasets to rebuild")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer sqlDB.Close()

	loader := service.NewLoaderService(
		repository.NewEventRepository(sqlDB),
		repository.NewSessionRepository(sqlDB),
		repository.NewProfileRepository(sqlDB),
		logger,
	)

	for _, raw := range strings.Split(*datasets, ",") {
		ds, err := repository.ParseDataset(strings.TrimSpace(raw))
		if err != nil {
			logger.Fatal("invalid dataset", zap.String("dataset", raw), zap.Error(err))
		}
		if _, err := loader.Rebuild(ctx, ds); err != nil {
			logger.Fatal("rebuild failed", zap.String("dataset", string(ds)), zap.Error(err))
		}
	}
}
