package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Leo-Carroll/EconBot/internal/api"
	"github.com/Leo-Carroll/EconBot/internal/bot"
	"github.com/Leo-Carroll/EconBot/internal/casino"
	"github.com/Leo-Carroll/EconBot/internal/config"
	"github.com/Leo-Carroll/EconBot/internal/db"
	"github.com/Leo-Carroll/EconBot/internal/economy"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadBotFromEnv()
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
	cas := casino.NewService(econ, logger, cfg.SpinDelay)
	defer cas.Close()

	discordBot, err := bot.New(cfg, econ, cas, logger, stop)
	if err != nil {
		logger.Error("bot init failed", "err", err)
		os.Exit(1)
	}

	server := api.New(logger, econ)
	httpServer := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Info("api listening", "addr", cfg.APIAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api server failed", "err", err)
			stop()
		}
	}()

	// Expired effect rows are swept in-process so a single binary deployment
	// does not need the standalone worker.
	go func() {
		ticker := time.NewTicker(cfg.SweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := econ.SweepExpiredEffects(ctx); err != nil {
					logger.Error("effect sweep failed", "err", err)
				} else if n > 0 {
					logger.Info("effects swept", "removed", n)
				}
			}
		}
	}()

	if err := discordBot.Run(ctx); err != nil {
		logger.Error("bot stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
