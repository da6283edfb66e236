// internal/adapters/upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_gateway/internal/adapters/observability"
	"hotel_gateway/internal/domain"
)

// Client talks to the hotel-data API, the system of record for rooms,
// availability and reservations. No retries: a failed call surfaces to
// the caller, and this system never retries writes (no idempotency key
// exists upstream, a retry could duplicate a reservation).
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) FetchHotel(ctx context.Context) (domain.Hotel, error) {
	var h domain.Hotel
	err := c.do(ctx, http.MethodGet, "/hotel", nil, &h)
	return h, err
}

func (c *Client) SetRoomAvailability(ctx context.Context, roomID string, dates []string, available bool) error {
	body := struct {
		Dates       []string `json:"dates"`
		IsAvailable bool     `json:"isAvailable"`
	}{Dates: dates, IsAvailable: available}
	return c.do(ctx, http.MethodPut, "/room/"+url.PathEscape(roomID)+"/availability", body, nil)
}

func (c *Client) CreateReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	var out domain.Reservation
	err := c.do(ctx, http.MethodPost, "/reservations", r, &out)
	return out, err
}

func (c *Client) ListReservations(ctx context.Context, userID string) ([]domain.Reservation, error) {
	path := "/reservations"
	if userID != "" {
		path += "?usuarioId=" + url.QueryEscape(userID)
	}
	var out []domain.Reservation
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// do issues one request with client-side rate limiting and decodes the
// JSON response into out (when non-nil). 404 maps to ErrRoomNotFound;
// any other failure wraps ErrUpstream.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	endpoint := endpointLabel(path)
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("upstream", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, method, path, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("upstream", endpoint, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrRoomNotFound
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s %s: status %d: %s",
			domain.ErrUpstream, method, path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// endpointLabel keeps metric cardinality flat: the first path segment,
// without ids or query strings.
func endpointLabel(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	return p
}
