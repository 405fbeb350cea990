package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wall-backend/internal/adapter/postgres"
	"github.com/heartmarshall/wall-backend/internal/adapter/postgres/note"
	"github.com/heartmarshall/wall-backend/internal/adapter/rewrite"
	"github.com/heartmarshall/wall-backend/internal/config"
	"github.com/heartmarshall/wall-backend/internal/presence"
	"github.com/heartmarshall/wall-backend/internal/service/wall"
	"github.com/heartmarshall/wall-backend/internal/transport/middleware"
	"github.com/heartmarshall/wall-backend/internal/transport/rest"
	"github.com/heartmarshall/wall-backend/internal/transport/ws"
)

// Run is the application entry point. It loads configuration, wires the
// storage, service and transport layers together, and serves HTTP until
// ctx is cancelled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	noteRepo := note.New(pool, txManager, cfg.Wall.Cap)

	rewriteClient := rewrite.New(cfg.Rewrite, logger)
	wallService := wall.NewService(logger, noteRepo, rewriteClient, cfg.Wall.PageSize)

	tracker := presence.NewTracker(cfg.Presence, logger)
	defer tracker.Stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(logger, cfg.CORS, limiter, cfg.RateLimit.PerMinute, rest.RouterDeps{
		Health:   rest.NewHealthHandler(pool, tracker, BuildVersion()),
		Notes:    rest.NewNotesHandler(wallService, logger),
		Rewrite:  rest.NewRewriteHandler(wallService, logger),
		Presence: ws.NewHandler(cfg.Presence, tracker, logger),
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}
