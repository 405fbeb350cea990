// Command seed populates an empty wall with demo notes so a fresh
// deployment does not greet visitors with a blank page. It is intended to
// be run once after the migrations, not as part of the main server.
//
// Flags:
//
//	--count  number of demo notes to insert (default: 8)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/wall-backend/internal/adapter/postgres"
	"github.com/heartmarshall/wall-backend/internal/adapter/postgres/note"
	"github.com/heartmarshall/wall-backend/internal/app"
	"github.com/heartmarshall/wall-backend/internal/config"
	"github.com/heartmarshall/wall-backend/internal/domain"
)

var demoNotes = []domain.Draft{
	{
		Name:    "Ada",
		Company: "Analytical Engines Ltd",
		Email:   "ada@analytical.example",
		Body:    "First! Lovely wall you have here.",
	},
	{
		Name:    "Grace",
		Company: "COBOL & Co",
		Email:   "grace@cobol.example",
		Body:    "A ship in port is safe, but that is not what ships are for.",
	},
	{
		Name:    "Linus",
		Company: "Kernel Works",
		Email:   "linus@kernel.example",
		Body:    "Talk is cheap. Leaving a note instead.",
	},
	{
		Name:    "Margaret",
		Company: "Apollo Guidance",
		Email:   "margaret@apollo.example",
		Body:    "Greetings from the landing team!",
	},
	{
		Name:    "Dennis",
		Company: "Bell Labs",
		Email:   "dennis@bell.example",
		Body:    "Hello, wall.",
	},
	{
		Name:    "Barbara",
		Company: "Liskov Institute",
		Email:   "barbara@liskov.example",
		Body:    "Substituting my note for an empty wall.",
	},
	{
		Name:    "Ken",
		Company: "Plan 9 Society",
		Email:   "ken@plan9.example",
		Body:    "Short and sweet.",
	},
	{
		Name:    "Donald",
		Company: "TAOCP Press",
		Email:   "donald@taocp.example",
		Body:    "Premature optimization aside, this wall loads fast.",
	},
}

func main() {
	countFlag := flag.Int("count", len(demoNotes), "number of demo notes to insert")
	flag.Parse()

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

	count := *countFlag
	if count < 1 || count > len(demoNotes) {
		count = len(demoNotes)
	}

	inserted := 0
	for _, draft := range demoNotes[:count] {
		if _, err := noteRepo.Create(ctx, draft); err != nil {
			logger.Error("insert demo note",
				slog.String("name", draft.Name),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		inserted++
	}

	logger.Info("seed completed", slog.Int("inserted", inserted))
}
