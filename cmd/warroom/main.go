package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/warroom/cmd/warroom/cli"
	"github.com/odyssey-erp/warroom/internal/app"
	"github.com/odyssey-erp/warroom/internal/observability"
	"github.com/odyssey-erp/warroom/internal/platform/cache"
	"github.com/odyssey-erp/warroom/internal/selection"
	"github.com/odyssey-erp/warroom/internal/shared"
	"github.com/odyssey-erp/warroom/internal/view"
	"github.com/odyssey-erp/warroom/internal/warroom"
	warroomhttp "github.com/odyssey-erp/warroom/internal/warroom/http"
	"github.com/odyssey-erp/warroom/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if len(os.Args) > 1 {
		jobsCLI := cli.NewJobsCLI(cfg.RedisAddr)
		err := cli.Run(ctx, jobsCLI, os.Args[1:], os.Stdout)
		if closeErr := jobsCLI.Close(); closeErr != nil {
			logger.Warn("jobs cli close", slog.Any("error", closeErr))
		}
		if err != nil {
			logger.Error("command failed", slog.Any("error", err))
			os.Exit(2)
		}
		return
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "warroom_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	panelCache := warroom.NewCache(redisClient, cfg.PanelCacheTTL)
	panelService := warroom.NewService(panelCache, logger, metrics)
	dashboardHandler := warroomhttp.NewHandler(logger, panelService, templates, csrfManager, selection.Clock(cfg.Clock()), metrics)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		DashboardHandler: dashboardHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("timezone", cfg.Timezone))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
