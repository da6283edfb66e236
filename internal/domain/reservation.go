package domain

// Reservation uses the public Spanish wire names; identity is assigned
// by the upstream API on create.
type Reservation struct {
	ID         string `json:"id,omitempty"`
	UserID     string `json:"usuarioId"`
	PropertyID string `json:"propiedadId"`
	StartDate  string `json:"fechaInicio"` // YYYY-MM-DD
	EndDate    string `json:"fechaFin"`    // YYYY-MM-DD
	RoomType   string `json:"roomType"`
}
