// Command seed creates the nine empty carousel slots. Existing rows are left
// untouched, so it is safe to run on every deploy.
package main

import (
	"context"
	"time"

	"github.com/podcastsite/backend/internal/config"
	"github.com/podcastsite/backend/internal/log"
	"github.com/podcastsite/backend/internal/repository/postgres"
)

func main() {
	log.Configure(log.Config{Service: "podcast-site-seed"})
	logger := log.WithComponent("seed")

	db, err := postgres.NewConnection(config.DatabaseURL())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	inserted, err := postgres.NewSlotRepository(db).SeedEmpty(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed carousel slots")
	}

	logger.Info().Int64("inserted", inserted).Msg("carousel slots seeded")
}
