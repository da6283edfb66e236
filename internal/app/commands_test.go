package app_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"hotel_gateway/internal/app"
	"hotel_gateway/internal/domain"
)

// ---- fakes ----

type availCall struct {
	roomID    string
	dates     []string
	available bool
}

type fakeUpstream struct {
	hotel        domain.Hotel
	reservations []domain.Reservation

	fetchErr  error
	availErr  error
	createErr error

	fetchCalls  int32
	createCalls int32

	availCalls []availCall
}

func (f *fakeUpstream) FetchHotel(ctx context.Context) (domain.Hotel, error) {
	atomic.AddInt32(&f.fetchCalls, 1)
	if f.fetchErr != nil {
		return domain.Hotel{}, f.fetchErr
	}
	return f.hotel, nil
}

func (f *fakeUpstream) SetRoomAvailability(ctx context.Context, roomID string, dates []string, available bool) error {
	f.availCalls = append(f.availCalls, availCall{roomID: roomID, dates: dates, available: available})
	return f.availErr
}

func (f *fakeUpstream) CreateReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	atomic.AddInt32(&f.createCalls, 1)
	if f.createErr != nil {
		return domain.Reservation{}, f.createErr
	}
	r.ID = "res-1"
	return r, nil
}

func (f *fakeUpstream) ListReservations(ctx context.Context, userID string) ([]domain.Reservation, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if userID == "" {
		return f.reservations, nil
	}
	var out []domain.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeOTA struct {
	pushErr error
	pushes  int32
	last    domain.Inventory
	block   chan struct{} // when non-nil, PushInventory waits on it
}

func (f *fakeOTA) PushInventory(ctx context.Context, inv domain.Inventory) error {
	atomic.AddInt32(&f.pushes, 1)
	f.last = inv
	if f.block != nil {
		<-f.block
	}
	return f.pushErr
}

type fakeHold struct {
	busy     bool
	acquires int32
	releases int32
}

func (f *fakeHold) Acquire(ctx context.Context, roomID, token string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&f.acquires, 1)
	return !f.busy, nil
}

func (f *fakeHold) Release(ctx context.Context, roomID, token string) error {
	atomic.AddInt32(&f.releases, 1)
	return nil
}

func testHotel() domain.Hotel {
	return domain.Hotel{
		ID:     "H1",
		Rating: 4.5,
		Rooms: []domain.Room{
			{ID: "R1", RoomType: "double", Price: 100, Availability: []domain.AvailabilityEntry{
				{Date: "2024-01-01", Available: true},
				{Date: "2024-01-02", Available: true},
			}},
			{ID: "R2", RoomType: "suite", Price: 250, Availability: []domain.AvailabilityEntry{
				{Date: "2024-01-01", Available: false},
			}},
		},
	}
}

func newBooking(up *fakeUpstream, ota *fakeOTA, hold *fakeHold) *app.BookingService {
	return app.NewBookingService(up, hold, app.NewSyncService(up, ota), time.Minute)
}

// ---- tests ----

func TestCreate_PassThroughFields(t *testing.T) {
	up := &fakeUpstream{hotel: testHotel()}
	svc := newBooking(up, &fakeOTA{}, &fakeHold{})

	req := domain.Reservation{
		UserID: "u1", PropertyID: "H1",
		StartDate: "2024-01-01", EndDate: "2024-01-03", RoomType: "double",
	}
	res, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.ID != "res-1" {
		t.Fatalf("expected upstream-assigned id, got %q", res.ID)
	}
	if res.UserID != req.UserID || res.PropertyID != req.PropertyID ||
		res.StartDate != req.StartDate || res.EndDate != req.EndDate || res.RoomType != req.RoomType {
		t.Fatalf("fields mutated: %+v", res)
	}
}

func TestCreate_MarksEveryNightUnavailable(t *testing.T) {
	up := &fakeUpstream{hotel: testHotel()}
	svc := newBooking(up, &fakeOTA{}, &fakeHold{})

	_, err := svc.Create(context.Background(), domain.Reservation{
		UserID: "u1", PropertyID: "H1",
		StartDate: "2024-01-01", EndDate: "2024-01-03", RoomType: "double",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(up.availCalls) != 1 {
		t.Fatalf("expected 1 availability write, got %d", len(up.availCalls))
	}
	call := up.availCalls[0]
	if call.roomID != "R1" || call.available {
		t.Fatalf("unexpected availability call: %+v", call)
	}
	want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	if len(call.dates) != len(want) {
		t.Fatalf("expected %d nights, got %v", len(want), call.dates)
	}
	for i, d := range want {
		if call.dates[i] != d {
			t.Fatalf("night %d: want %s got %s", i, d, call.dates[i])
		}
	}
}

func TestCreate_RoomTypeNotFound_NoWrites(t *testing.T) {
	up := &fakeUpstream{hotel: testHotel()}
	svc := newBooking(up, &fakeOTA{}, &fakeHold{})

	_, err := svc.Create(context.Background(), domain.Reservation{
		UserID: "u1", PropertyID: "H1",
		StartDate: "2024-01-01", EndDate: "2024-01-02", RoomType: "penthouse",
	})
	if !errors.Is(err, domain.ErrRoomTypeNotFound) {
		t.Fatalf("expected ErrRoomTypeNotFound, got %v", err)
	}
	if len(up.availCalls) != 0 {
		t.Fatalf("expected zero availability writes, got %d", len(up.availCalls))
	}
	if up.createCalls != 0 {
		t.Fatalf("expected zero reservation creates, got %d", up.createCalls)
	}
}

func TestCreate_HeldRoomRejected(t *testing.T) {
	up := &fakeUpstream{hotel: testHotel()}
	svc := newBooking(up, &fakeOTA{}, &fakeHold{busy: true})

	_, err := svc.Create(context.Background(), domain.Reservation{
		UserID: "u1", PropertyID: "H1",
		StartDate: "2024-01-01", EndDate: "2024-01-02", RoomType: "double",
	})
	if !errors.Is(err, domain.ErrRoomHeld) {
		t.Fatalf("expected ErrRoomHeld, got %v", err)
	}
	if len(up.availCalls) != 0 {
		t.Fatalf("held room must not be written, got %d writes", len(up.availCalls))
	}
}

func TestCreate_CompensatesFailedReservation(t *testing.T) {
	up := &fakeUpstream{hotel: testHotel(), createErr: errors.New("boom")}
	svc := newBooking(up, &fakeOTA{}, &fakeHold{})

	_, err := svc.Create(context.Background(), domain.Reservation{
		UserID: "u1", PropertyID: "H1",
		StartDate: "2024-01-01", EndDate: "2024-01-02", RoomType: "double",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	// first write blocks the nights, second re-opens them
	if len(up.availCalls) != 2 {
		t.Fatalf("expected block + compensation, got %d writes", len(up.availCalls))
	}
	if up.availCalls[0].available || !up.availCalls[1].available {
		t.Fatalf("unexpected write sequence: %+v", up.availCalls)
	}
}

func TestCreate_OTAFailureDoesNotFailBooking(t *testing.T) {
	up := &fakeUpstream{hotel: testHotel()}
	ota := &fakeOTA{pushErr: errors.New("partner down")}
	svc := newBooking(up, ota, &fakeHold{})

	res, err := svc.Create(context.Background(), domain.Reservation{
		UserID: "u1", PropertyID: "H1",
		StartDate: "2024-01-01", EndDate: "2024-01-02", RoomType: "double",
	})
	if err != nil {
		t.Fatalf("booking must survive an OTA failure, got %v", err)
	}
	if res.ID != "res-1" {
		t.Fatalf("unexpected reservation: %+v", res)
	}
	if atomic.LoadInt32(&ota.pushes) != 1 {
		t.Fatalf("expected one attempted push, got %d", ota.pushes)
	}
}

func TestCreate_ReleasesHold(t *testing.T) {
	up := &fakeUpstream{hotel: testHotel()}
	hold := &fakeHold{}
	svc := newBooking(up, &fakeOTA{}, hold)

	_, _ = svc.Create(context.Background(), domain.Reservation{
		UserID: "u1", PropertyID: "H1",
		StartDate: "2024-01-01", EndDate: "2024-01-02", RoomType: "double",
	})
	if hold.acquires != 1 || hold.releases != 1 {
		t.Fatalf("expected acquire+release, got %d/%d", hold.acquires, hold.releases)
	}
}
