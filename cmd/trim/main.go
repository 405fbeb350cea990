// Command trim deletes the worst-ranked notes until the wall is back under
// its configured cap. The server keeps the cap on every admission, but a
// raced pair of inserts can leave the wall slightly over it; this command is
// intended to be invoked by an external cron job to restore the invariant.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/wall-backend/internal/adapter/postgres"
	"github.com/heartmarshall/wall-backend/internal/adapter/postgres/note"
	"github.com/heartmarshall/wall-backend/internal/app"
	"github.com/heartmarshall/wall-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	noteRepo := note.New(pool, txManager, cfg.Wall.Cap)

	removed, err := noteRepo.Trim(ctx)
	if err != nil {
		logger.Error("trim failed",
			slog.String("error", err.Error()),
			slog.Int("cap", cfg.Wall.Cap),
		)
		os.Exit(1)
	}

	logger.Info("trim completed",
		slog.Int("removed", removed),
		slog.Int("cap", cfg.Wall.Cap),
	)
}
