package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Leo-Carroll/EconBot/internal/config"
	"github.com/Leo-Carroll/EconBot/internal/db"
	"github.com/Leo-Carroll/EconBot/internal/economy"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWorkerFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.StartupMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Error("migrate failed", "err", err)
			os.Exit(1)
		}
	}

	econ := economy.NewService(pool, logger, cfg.HouseAccountID, cfg.WorkCooldown)

	runOnce := strings.EqualFold(strings.TrimSpace(os.Getenv("ECON_SWEEP_RUN_ONCE")), "true")
	if runOnce {
		n, err := econ.SweepExpiredEffects(ctx)
		if err != nil {
			logger.Error("sweep failed", "err", err)
			os.Exit(1)
		}
		logger.Info("worker run-once completed", "removed", n)
		return
	}

	ticker := time.NewTicker(cfg.SweepEvery)
	defer ticker.Stop()

	logger.Info("worker started", "sweep_every", cfg.SweepEvery.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutdown")
			return
		case <-ticker.C:
			n, err := econ.SweepExpiredEffects(ctx)
			if err != nil {
				logger.Error("effect sweep failed", "err", err)
				continue
			}
			if n > 0 {
				logger.Info("effects swept", "removed", n)
			}
		}
	}
}
