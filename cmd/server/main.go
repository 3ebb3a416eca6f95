package main

import (
	"context"
	"database/sql"
	"errors"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/crosswordpolls/internal/adapters/handler/http"
	"github.com/vncsmyrnk/crosswordpolls/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/crosswordpolls/internal/config"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/services"
	"github.com/vncsmyrnk/crosswordpolls/internal/logging"
	"github.com/vncsmyrnk/crosswordpolls/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "info").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)

	if err := cfg.ValidateServer(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	m := metrics.New()
	crosswordService := services.NewCrosswordService(postgres.NewCrosswordRepository(db))
	crosswordHandler := http.NewCrosswordHandler(crosswordService, logger.With("component", "http"))
	handler := http.NewHandler(crosswordHandler, []string{"*"}, m.Middleware, m.Handler())

	server := &stdhttp.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", cfg.ServerAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", "error", err)
		os.Exit(1)
	}
}
