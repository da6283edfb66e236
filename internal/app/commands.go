package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_gateway/internal/domain"
)

// BookingService owns the booking write-path: fetch the hotel, resolve
// the room type, hold the room, mark the nights unavailable, create the
// reservation upstream, then trigger an OTA sync.
//
// The two upstream writes are not transactional. When the reservation
// create fails after the availability write succeeded, the availability
// write is compensated (best effort) instead of leaving an orphaned
// hold on the calendar.
type BookingService struct {
	up      domain.UpstreamClient
	hold    domain.RoomHold
	sync    *SyncService
	holdTTL time.Duration
}

func NewBookingService(up domain.UpstreamClient, hold domain.RoomHold, sync *SyncService, holdTTL time.Duration) *BookingService {
	if holdTTL <= 0 {
		holdTTL = 30 * time.Second
	}
	return &BookingService{up: up, hold: hold, sync: sync, holdTTL: holdTTL}
}

// Create books req.RoomType for [StartDate, EndDate] and returns the
// reservation as created upstream, fields passed through unchanged.
// Presence of the required fields is the HTTP layer's concern; by the
// time a request reaches here all five are set.
func (s *BookingService) Create(ctx context.Context, req domain.Reservation) (domain.Reservation, error) {
	h, err := s.up.FetchHotel(ctx)
	if err != nil {
		return domain.Reservation{}, err
	}

	var room *domain.Room
	for i := range h.Rooms {
		if h.Rooms[i].RoomType == req.RoomType {
			room = &h.Rooms[i]
			break
		}
	}
	if room == nil {
		return domain.Reservation{}, domain.ErrRoomTypeNotFound
	}

	nights, err := ExpandDates(req.StartDate, req.EndDate)
	if err != nil {
		return domain.Reservation{}, err
	}

	// Serialize concurrent bookings for this room: two requests racing
	// the same availability read cannot both pass this gate.
	token := uuid.NewString()
	ok, err := s.hold.Acquire(ctx, room.ID, token, s.holdTTL)
	if err != nil {
		return domain.Reservation{}, err
	}
	if !ok {
		return domain.Reservation{}, domain.ErrRoomHeld
	}
	defer func() {
		if rerr := s.hold.Release(ctx, room.ID, token); rerr != nil {
			log.Warn().Err(rerr).Str("room", room.ID).Msg("room hold release failed")
		}
	}()

	if err := s.up.SetRoomAvailability(ctx, room.ID, nights, false); err != nil {
		return domain.Reservation{}, err
	}

	res, err := s.up.CreateReservation(ctx, req)
	if err != nil {
		// compensate the availability write so the calendar is not left
		// blocked without a reservation behind it
		if cerr := s.up.SetRoomAvailability(ctx, room.ID, nights, true); cerr != nil {
			log.Error().Err(cerr).Str("room", room.ID).Strs("dates", nights).
				Msg("compensation failed, nights remain blocked without a reservation")
		}
		return domain.Reservation{}, err
	}

	// Refresh the OTA partner's view right away; its failure never
	// fails a booking that upstream already accepted.
	if serr := s.sync.Run(ctx, "booking"); serr != nil {
		log.Warn().Err(serr).Msg("post-booking ota sync failed")
	}
	return res, nil
}
