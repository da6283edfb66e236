package domain

// Hotel is the full aggregate served by the upstream hotel-data API.
// Nothing in it is owned or cached here; every read re-fetches it.
type Hotel struct {
	ID     string  `json:"id"`
	Rating float64 `json:"rating"`
	Rooms  []Room  `json:"rooms"`
}

type Room struct {
	ID           string              `json:"id"`
	RoomType     string              `json:"roomType"`
	Price        float64             `json:"price"`
	Availability []AvailabilityEntry `json:"availability"`
}

// AvailabilityEntry is one calendar day's open/closed status for a room.
// Date is YYYY-MM-DD. Date uniqueness per room is upstream's invariant,
// not enforced here.
type AvailabilityEntry struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// Inventory is the projection pushed to the OTA partner: rooms stripped
// down to type, price and availability, keyed by hotel id.
type Inventory struct {
	HotelID string          `json:"hotelId"`
	Rooms   []InventoryRoom `json:"rooms"`
}

type InventoryRoom struct {
	RoomType     string              `json:"roomType"`
	Price        float64             `json:"price"`
	Availability []AvailabilityEntry `json:"availability"`
}
