package app

import (
	"fmt"
	"time"

	"hotel_gateway/internal/domain"
)

const dayFormat = "2006-01-02"

// ExpandDates expands the inclusive range [start, end] into the ordered
// sequence of calendar days. Dates are parsed as pure YYYY-MM-DD in UTC
// so no timezone boundary can shift a day. An end before start yields
// an empty sequence.
func ExpandDates(start, end string) ([]string, error) {
	from, err := time.ParseInLocation(dayFormat, start, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("bad start date %q: %w", start, err)
	}
	to, err := time.ParseInLocation(dayFormat, end, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("bad end date %q: %w", end, err)
	}
	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dayFormat))
	}
	return days, nil
}

// BuildInventory projects the hotel aggregate into the OTA payload:
// per room, only type, price and availability survive.
func BuildInventory(h domain.Hotel) domain.Inventory {
	inv := domain.Inventory{HotelID: h.ID, Rooms: make([]domain.InventoryRoom, 0, len(h.Rooms))}
	for _, r := range h.Rooms {
		inv.Rooms = append(inv.Rooms, domain.InventoryRoom{
			RoomType:     r.RoomType,
			Price:        r.Price,
			Availability: r.Availability,
		})
	}
	return inv
}

// roomFreeInRange reports whether every availability entry dated inside
// [start, end] is open. Entries outside the range are ignored, and a
// room with no entries in range passes. Lexical comparison is exact for
// YYYY-MM-DD.
func roomFreeInRange(r domain.Room, start, end string) bool {
	for _, e := range r.Availability {
		if e.Date >= start && e.Date <= end && !e.Available {
			return false
		}
	}
	return true
}
