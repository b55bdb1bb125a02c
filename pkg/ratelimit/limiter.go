package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Window is the fixed rate-limit window.
const Window = time.Minute

// incrementWithExpiryScript atomically increments the window counter and sets
// its expiry when the counter is created. Keeping increment-and-check in a
// single script closes the check-then-increment race between concurrent
// callers sharing a subscription.
var incrementWithExpiryScript = redis.NewScript(`
	local current = redis.call('INCRBY', KEYS[1], 1)
	if current == 1 then
		redis.call('EXPIRE', KEYS[1], ARGV[1])
	end
	return current
`)

// Limiter enforces a requests-per-minute ceiling per subscription using a
// fixed one-minute window counter in Redis.
type Limiter struct {
	client *redis.Client
	prefix string
}

// NewLimiter creates a limiter on top of the shared Redis client.
func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{
		client: client,
		prefix: "ratelimit",
	}
}

// Attempt records one attempt for the subscription and reports whether it is
// within the ratePerMinute ceiling. A non-positive ceiling means no limit is
// configured and the attempt is always allowed without touching the counter.
func (l *Limiter) Attempt(ctx context.Context, subscriptionID string, ratePerMinute int) (bool, error) {
	if ratePerMinute <= 0 {
		return true, nil
	}

	windowStart := time.Now().Unix() / int64(Window.Seconds())
	key := fmt.Sprintf("%s:%s:%d", l.prefix, subscriptionID, windowStart)

	count, err := incrementWithExpiryScript.Run(ctx, l.client, []string{key}, int(Window.Seconds())).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit counter failed: %w", err)
	}

	return count <= int64(ratePerMinute), nil
}
