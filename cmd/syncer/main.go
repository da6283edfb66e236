package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_gateway/internal/adapters/observability"
	"hotel_gateway/internal/adapters/ota"
	"hotel_gateway/internal/adapters/upstream"
	"hotel_gateway/internal/app"
	"hotel_gateway/internal/shared"
)

// One-shot OTA push for operators: fetch the hotel, project it, send it
// to the partner, exit non-zero on failure.
func main() {
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("upstream", cfg.UpstreamBase).
		Str("ota", cfg.OTAEndpoint).
		Msg("syncer starting")

	up, err := upstream.New(cfg.UpstreamBase, cfg.UpstreamRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upstream client")
	}
	publisher := ota.New(cfg.OTAEndpoint, cfg.OTAKey)
	syncSvc := app.NewSyncService(up, publisher)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := syncSvc.Run(ctx, "manual"); err != nil {
		log.Fatal().Err(err).Msg("ota sync failed")
	}
	log.Info().Msg("ota sync completed")
}
