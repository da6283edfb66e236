package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_gateway/internal/adapters/observability"
	"hotel_gateway/internal/domain"
)

// SyncService pushes the current inventory projection to the OTA
// partner. Callers log and drop the returned error: a failed push must
// never affect the serving path. Runs are serialized by a weight-1
// semaphore; a trigger arriving while a run is in flight is skipped,
// not queued.
type SyncService struct {
	up  domain.UpstreamClient
	ota domain.OTAPublisher
	sem *semaphore.Weighted
}

func NewSyncService(up domain.UpstreamClient, ota domain.OTAPublisher) *SyncService {
	return &SyncService{up: up, ota: ota, sem: semaphore.NewWeighted(1)}
}

// Run performs one fetch-transform-push cycle. trigger labels the
// metrics: schedule, booking or manual.
func (s *SyncService) Run(ctx context.Context, trigger string) error {
	if !s.sem.TryAcquire(1) {
		observability.ObserveSync(trigger, "skipped")
		log.Info().Str("trigger", trigger).Msg("ota sync already running, skipping")
		return nil
	}
	defer s.sem.Release(1)

	h, err := s.up.FetchHotel(ctx)
	if err != nil {
		observability.ObserveSync(trigger, "error")
		return err
	}
	if err := s.ota.PushInventory(ctx, BuildInventory(h)); err != nil {
		observability.ObserveSync(trigger, "error")
		return err
	}
	observability.ObserveSync(trigger, "ok")
	log.Info().Str("trigger", trigger).Str("hotel", h.ID).Int("rooms", len(h.Rooms)).Msg("ota sync ok")
	return nil
}
