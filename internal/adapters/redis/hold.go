package redisad

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel_gateway/internal/adapters/observability"
)

// Hold is a SETNX-based room hold: one booking at a time per room. The
// TTL bounds the damage of a crashed holder; Release only deletes the
// key when the token still owns it.
type Hold struct{ c *redis.Client }

func New(addr, pass string, db int) *Hold {
	return &Hold{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (h *Hold) Acquire(ctx context.Context, roomID, token string, ttl time.Duration) (bool, error) {
	ok, err := h.c.SetNX(ctx, key(roomID), token, ttl).Result()
	if err != nil {
		return false, err
	}
	if ok {
		observability.ObserveHold("acquired")
	} else {
		observability.ObserveHold("busy")
	}
	return ok, nil
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (h *Hold) Release(ctx context.Context, roomID, token string) error {
	err := releaseScript.Run(ctx, h.c, []string{key(roomID)}, token).Err()
	if err != nil && err != redis.Nil {
		return err
	}
	observability.ObserveHold("released")
	return nil
}

func key(roomID string) string { return "hold:room:" + roomID }
