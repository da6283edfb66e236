package app

import (
	"context"

	"hotel_gateway/internal/domain"
)

// QueryService serves the read-only endpoints. Everything is a
// pass-through against upstream: no state, no cache, each call
// re-fetches the full aggregate.
type QueryService struct {
	up domain.UpstreamClient
}

func NewQueryService(up domain.UpstreamClient) *QueryService {
	return &QueryService{up: up}
}

// SearchQuery carries the /buscar filters. Optional numeric filters are
// pointers so "absent" and "zero" stay distinguishable. Location is
// accepted for contract compatibility and ignored: this gateway fronts
// a single property.
type SearchQuery struct {
	StartDate string
	EndDate   string
	RoomType  string
	Location  string
	MaxPrice  *float64
	MinRating *float64
}

func (s *QueryService) HotelData(ctx context.Context) (domain.Hotel, error) {
	return s.up.FetchHotel(ctx)
}

// RoomAvailability returns the availability calendar of one room by id.
func (s *QueryService) RoomAvailability(ctx context.Context, roomID string) ([]domain.AvailabilityEntry, error) {
	h, err := s.up.FetchHotel(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range h.Rooms {
		if r.ID == roomID {
			return r.Availability, nil
		}
	}
	return nil, domain.ErrRoomNotFound
}

// SearchRooms keeps rooms free for the whole requested range that pass
// the optional type/price filters; the hotel-level rating filter either
// admits every room or none. Upstream room order is preserved.
func (s *QueryService) SearchRooms(ctx context.Context, q SearchQuery) ([]domain.Room, error) {
	h, err := s.up.FetchHotel(ctx)
	if err != nil {
		return nil, err
	}
	if q.MinRating != nil && h.Rating < *q.MinRating {
		return []domain.Room{}, nil
	}
	out := []domain.Room{}
	for _, r := range h.Rooms {
		if !roomFreeInRange(r, q.StartDate, q.EndDate) {
			continue
		}
		if q.RoomType != "" && r.RoomType != q.RoomType {
			continue
		}
		if q.MaxPrice != nil && r.Price > *q.MaxPrice {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *QueryService) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	return s.up.ListReservations(ctx, "")
}

func (s *QueryService) UserReservations(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return s.up.ListReservations(ctx, userID)
}
