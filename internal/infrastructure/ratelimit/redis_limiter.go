package ratelimit

import (
	"context"
	"strconv"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type Config struct {
	Prefix   string
	Capacity int
	Window   time.Duration
}

// RedisLimiter is a fixed-window counter per key shared by every API replica.
type RedisLimiter struct {
	client redis.Cmdable
	cfg    Config
	now    func() time.Time
}

func NewRedisLimiter(client redis.Cmdable, cfg Config) *RedisLimiter {
	if cfg.Prefix == "" {
		cfg.Prefix = "season-tickets:rl"
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 30
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &RedisLimiter{client: client, cfg: cfg, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	windowMs := l.cfg.Window.Milliseconds()
	window := now.UnixMilli() / windowMs
	redisKey := l.cfg.Prefix + ":" + key + ":" + strconv.FormatInt(window, 10)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.PExpire(ctx, redisKey, l.cfg.Window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{Allowed: true, Limit: l.cfg.Capacity, Remaining: l.cfg.Capacity}, crerr.Wrap(err, "rate limit counter")
	}

	count := int(incr.Val())
	decision := Decision{
		Allowed:   count <= l.cfg.Capacity,
		Limit:     l.cfg.Capacity,
		Remaining: max(l.cfg.Capacity-count, 0),
	}
	if !decision.Allowed {
		windowEnd := time.UnixMilli((window + 1) * windowMs)
		decision.RetryAfter = windowEnd.Sub(now)
	}
	return decision, nil
}
