package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
)

// DayLog caches the per-date completion projection. Cache misses and cache
// errors both fall through to storage; the cache is never authoritative.
type DayLog interface {
	Get(ctx context.Context, date string) ([]internal.DayLogEntry, bool)
	Set(ctx context.Context, date string, entries []internal.DayLogEntry)
	Invalidate(ctx context.Context, date string)
}

type RedisDayLog struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger internal.Logger
}

func NewRedisDayLog(rdb *redis.Client, ttl time.Duration, logger internal.Logger) *RedisDayLog {
	return &RedisDayLog{rdb: rdb, ttl: ttl, logger: logger}
}

func key(date string) string {
	return "habitzen:daylog:" + date
}

func (c *RedisDayLog) Get(ctx context.Context, date string) ([]internal.DayLogEntry, bool) {
	raw, err := c.rdb.Get(ctx, key(date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnf("cache: get failed for %s: %v", date, err)
		}
		return nil, false
	}
	var entries []internal.DayLogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		c.logger.Warnf("cache: corrupt entry for %s: %v", date, err)
		return nil, false
	}
	return entries, true
}

func (c *RedisDayLog) Set(ctx context.Context, date string, entries []internal.DayLogEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(date), raw, c.ttl).Err(); err != nil {
		c.logger.Warnf("cache: set failed for %s: %v", date, err)
	}
}

func (c *RedisDayLog) Invalidate(ctx context.Context, date string) {
	if err := c.rdb.Del(ctx, key(date)).Err(); err != nil {
		c.logger.Warnf("cache: invalidate failed for %s: %v", date, err)
	}
}

// NewRedisClient connects and pings with a short timeout.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

var _ DayLog = (*RedisDayLog)(nil)
