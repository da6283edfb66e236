package main

import (
	"context"
	"net/http"
	"time"

	"github.com/jasonlvhit/gocron"
	"github.com/rs/zerolog/log"

	server "hotel_gateway/internal/adapters/http_server"
	"hotel_gateway/internal/adapters/observability"
	"hotel_gateway/internal/adapters/ota"
	redisad "hotel_gateway/internal/adapters/redis"
	"hotel_gateway/internal/adapters/upstream"
	"hotel_gateway/internal/app"
	"hotel_gateway/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// deps
	up, err := upstream.New(cfg.UpstreamBase, cfg.UpstreamRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upstream client")
	}
	publisher := ota.New(cfg.OTAEndpoint, cfg.OTAKey)
	hold := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	syncSvc := app.NewSyncService(up, publisher)
	q := app.NewQueryService(up)
	b := app.NewBookingService(up, hold, syncSvc, cfg.HoldTTL)

	// recurring OTA push; at the default 60m cadence the first run is
	// aligned to the top of the next hour
	mins := uint64(cfg.SyncEvery / time.Minute)
	job := gocron.Every(mins).Minutes()
	if mins == 60 {
		next := time.Now().Truncate(time.Hour).Add(time.Hour)
		job = job.From(&next)
	}
	if err := job.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := syncSvc.Run(ctx, "schedule"); err != nil {
			log.Warn().Err(err).Msg("scheduled ota sync failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule ota sync")
	}
	gocron.Start()
	log.Info().Uint64("minutes", mins).Msg("ota sync scheduled")

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, B: b})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
