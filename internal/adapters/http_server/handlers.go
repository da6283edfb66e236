// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hotel_gateway/internal/app"
	"hotel_gateway/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	B *app.BookingService
}

var validate = validator.New()

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// bookingRequest mirrors the public booking contract; all five fields
// are mandatory and checked before any upstream call is made.
type bookingRequest struct {
	UserID     string `json:"usuarioId" validate:"required"`
	PropertyID string `json:"propiedadId" validate:"required"`
	StartDate  string `json:"fechaInicio" validate:"required"`
	EndDate    string `json:"fechaFin" validate:"required"`
	RoomType   string `json:"roomType" validate:"required"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/hotel-data", h.hotelData)
	s.mux.Get("/propiedades/{id}/disponibilidad", h.roomAvailability)
	s.mux.Get("/buscar", h.search)
	s.mux.Post("/reservas", h.createBooking)
	s.mux.Get("/reservas", h.listReservations)
	s.mux.Get("/usuarios/{usuarioId}/reservas", h.userReservations)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// mapError translates domain sentinels into problem responses; anything
// unexpected is an upstream failure and stays a generic 500.
func mapError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "room not found")
	case errors.Is(err, domain.ErrRoomTypeNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "room type not found")
	case errors.Is(err, domain.ErrRoomHeld):
		writeProblem(w, http.StatusConflict, "Conflict", "room is being booked, try again")
	default:
		log.Error().Err(err).Str("op", op).Msg("upstream request failed")
		writeProblem(w, http.StatusInternalServerError, "Upstream Error", "the hotel data service is unavailable")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) hotelData(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Q.HotelData(r.Context())
	if err != nil {
		mapError(w, err, "hotel-data")
		return
	}

	etag, body := calcETagAndBody(hotel)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write hotel-data body")
	}
}

func (h *Handlers) roomAvailability(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Q.RoomAvailability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapError(w, err, "disponibilidad")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := app.SearchQuery{
		StartDate: qs.Get("fechaInicio"),
		EndDate:   qs.Get("fechaFin"),
		RoomType:  qs.Get("tipo"),
		Location:  qs.Get("ubicacion"),
	}
	// unparseable numeric filters are treated as absent
	if v := qs.Get("maxPrecio"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxPrice = &f
		}
	}
	if v := qs.Get("minCalificacion"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinRating = &f
		}
	}

	rooms, err := h.Q.SearchRooms(r.Context(), q)
	if err != nil {
		mapError(w, err, "buscar")
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "missing required booking fields")
		return
	}

	res, err := h.B.Create(r.Context(), domain.Reservation{
		UserID:     req.UserID,
		PropertyID: req.PropertyID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		RoomType:   req.RoomType,
	})
	if err != nil {
		mapError(w, err, "reservas")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Tu reserva ha sido creada!",
		"reservation": res,
	})
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Q.ListReservations(r.Context())
	if err != nil {
		mapError(w, err, "reservas")
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func (h *Handlers) userReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Q.UserReservations(r.Context(), chi.URLParam(r, "usuarioId"))
	if err != nil {
		mapError(w, err, "reservas de usuario")
		return
	}
	writeJSON(w, http.StatusOK, rs)
}
