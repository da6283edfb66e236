package ota_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel_gateway/internal/adapters/ota"
	"hotel_gateway/internal/domain"
)

func TestPublisher_PushInventory(t *testing.T) {
	var got domain.Inventory
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(200)
	}))
	defer ts.Close()

	p := ota.New(ts.URL, "secret")
	inv := domain.Inventory{
		HotelID: "H1",
		Rooms:   []domain.InventoryRoom{{RoomType: "double", Price: 100}},
	}
	if err := p.PushInventory(context.Background(), inv); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.HotelID != "H1" || len(got.Rooms) != 1 || got.Rooms[0].RoomType != "double" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestPublisher_PushInventory_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(503)
	}))
	defer ts.Close()

	p := ota.New(ts.URL, "secret")
	err := p.PushInventory(context.Background(), domain.Inventory{HotelID: "H1"})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
