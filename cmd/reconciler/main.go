package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/crosswordpolls/internal/adapters/reddit"
	"github.com/vncsmyrnk/crosswordpolls/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/crosswordpolls/internal/adapters/xwordinfo"
	"github.com/vncsmyrnk/crosswordpolls/internal/config"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/services"
	"github.com/vncsmyrnk/crosswordpolls/internal/logging"
	"github.com/vncsmyrnk/crosswordpolls/internal/metrics"
)

const pushJobName = "crosswordpolls_reconciler"

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 0, "Maximum duration of the run, 0 for no limit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "info").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)

	if err := cfg.ValidateReconciler(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := runContext(ctx, timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	m := metrics.New()

	forum := reddit.NewClient(reddit.Config{
		AuthURL:      cfg.Reddit.AuthURL,
		APIURL:       cfg.Reddit.APIURL,
		Subreddit:    cfg.Reddit.Subreddit,
		Username:     cfg.Reddit.Username,
		Password:     cfg.Reddit.Password,
		ClientID:     cfg.Reddit.ClientID,
		ClientSecret: cfg.Reddit.ClientSecret,
		UserAgent:    cfg.UserAgent,
	}, httpClient, logger.With("component", "reddit"))

	reconciler := services.NewReconcileService(services.ReconcileDeps{
		Repository:       postgres.NewCrosswordRepository(db),
		Forum:            forum,
		Metadata:         xwordinfo.NewClient(cfg.XWordInfo.URL, cfg.XWordInfo.Referer, httpClient),
		Metrics:          m,
		Logger:           logger.With("component", "reconciler"),
		FirstPollDate:    cfg.FirstPollDate,
		PollDurationDays: cfg.PollDurationDays,
		TrustedAuthors:   cfg.Reddit.TrustedAuthors,
	})

	logger.Info("starting reconciliation")

	report, runErr := reconciler.Reconcile(ctx)

	if cfg.PushgatewayURL != "" {
		pushCtx, pushCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := m.Push(pushCtx, cfg.PushgatewayURL, pushJobName); err != nil {
			logger.Warn("failed to push metrics", "error", err)
		}
		pushCancel()
	}

	if runErr != nil {
		logger.Error("reconciliation failed", "run_id", report.RunID, "error", runErr)
		os.Exit(1)
	}

	logger.Info("reconciliation completed",
		"run_id", report.RunID,
		"missing", report.Missing,
		"resolved", report.Resolved(),
	)
}

// runContext bounds the run only when a positive timeout is given.
func runContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
