package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinels surfaced to the HTTP layer. ErrUpstream covers any network
// failure or non-2xx from the upstream/OTA APIs.
var (
	ErrUpstream         = errors.New("upstream unavailable")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrRoomHeld         = errors.New("room is held by another booking")
)

// UpstreamClient wraps the hotel-data API, the system of record for
// rooms, availability and reservations. No call retries; a duplicate
// write on caller retry is possible.
type UpstreamClient interface {
	FetchHotel(ctx context.Context) (Hotel, error)
	SetRoomAvailability(ctx context.Context, roomID string, dates []string, available bool) error
	CreateReservation(ctx context.Context, r Reservation) (Reservation, error)
	// ListReservations filters by user server-side when userID != "".
	ListReservations(ctx context.Context, userID string) ([]Reservation, error)
}

// OTAPublisher pushes an inventory snapshot to the distribution partner.
type OTAPublisher interface {
	PushInventory(ctx context.Context, inv Inventory) error
}

// RoomHold serializes concurrent bookings against one room. Acquire
// returns false without error when the hold is already taken; Release
// is a no-op for a token that no longer owns the hold.
type RoomHold interface {
	Acquire(ctx context.Context, roomID, token string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, roomID, token string) error
}
