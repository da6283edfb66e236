package app_test

import (
	"testing"

	"hotel_gateway/internal/app"
	"hotel_gateway/internal/domain"
)

func TestExpandDates_Inclusive(t *testing.T) {
	days, err := app.ExpandDates("2024-01-30", "2024-02-02")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	if len(days) != len(want) {
		t.Fatalf("want %d days, got %v", len(want), days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("day %d: want %s got %s", i, want[i], days[i])
		}
	}
}

func TestExpandDates_Properties(t *testing.T) {
	cases := []struct{ start, end string }{
		{"2024-01-01", "2024-01-01"},
		{"2024-02-27", "2024-03-02"}, // leap year boundary
		{"2023-12-29", "2024-01-03"}, // year boundary
		{"2024-06-01", "2024-06-30"},
	}
	for _, c := range cases {
		days, err := app.ExpandDates(c.start, c.end)
		if err != nil {
			t.Fatalf("[%s,%s]: %v", c.start, c.end, err)
		}
		if days[0] != c.start || days[len(days)-1] != c.end {
			t.Fatalf("[%s,%s]: endpoints missing: %v", c.start, c.end, days)
		}
		for i := 1; i < len(days); i++ {
			if days[i] <= days[i-1] {
				t.Fatalf("[%s,%s]: not strictly increasing at %d: %v", c.start, c.end, i, days)
			}
		}
	}
}

func TestExpandDates_EndBeforeStartIsEmpty(t *testing.T) {
	days, err := app.ExpandDates("2024-01-05", "2024-01-01")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected empty sequence, got %v", days)
	}
}

func TestExpandDates_BadInput(t *testing.T) {
	if _, err := app.ExpandDates("01/05/2024", "2024-01-06"); err == nil {
		t.Fatal("expected error for non-ISO start date")
	}
	if _, err := app.ExpandDates("2024-01-05", "soon"); err == nil {
		t.Fatal("expected error for junk end date")
	}
}

func TestBuildInventory_StripsRoomIDs(t *testing.T) {
	h := domain.Hotel{
		ID: "H1", Rating: 4.5,
		Rooms: []domain.Room{{
			ID: "R1", RoomType: "double", Price: 100,
			Availability: []domain.AvailabilityEntry{{Date: "2024-01-01", Available: true}},
		}},
	}
	inv := app.BuildInventory(h)
	if inv.HotelID != "H1" || len(inv.Rooms) != 1 {
		t.Fatalf("unexpected inventory: %+v", inv)
	}
	r := inv.Rooms[0]
	if r.RoomType != "double" || r.Price != 100 || len(r.Availability) != 1 {
		t.Fatalf("unexpected room projection: %+v", r)
	}
}
