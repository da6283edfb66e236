package ota

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hotel_gateway/internal/adapters/observability"
	"hotel_gateway/internal/domain"
)

// Publisher pushes inventory snapshots to the OTA partner's update
// endpoint with a bearer credential. Failures are surfaced to the
// caller, which is expected to log and drop them; partner instability
// must never degrade the serving path.
type Publisher struct {
	endpoint string
	key      string
	hc       *http.Client
}

func New(endpoint, key string) *Publisher {
	return &Publisher{
		endpoint: endpoint,
		key:      key,
		hc:       &http.Client{Timeout: 20 * time.Second},
	}
}

func (p *Publisher) PushInventory(ctx context.Context, inv domain.Inventory) error {
	b, err := json.Marshal(inv)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.key)

	start := time.Now()
	resp, err := p.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("ota", "update", 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: ota push: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("ota", "update", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: ota push: status %d: %s",
			domain.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
