package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the shared client behind the scan queue and the pub/sub event
// channel. A nil *Redis means no Redis is configured; Healthy and Close
// treat that as a valid state.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds a client for addr. Timeouts are kept short so a dead
// Redis degrades scans to slow instead of hung.
func NewRedis(addr string) *Redis {
	return &Redis{Client: redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     8,
		MinIdleConns: 1,
	})}
}

// Healthy pings Redis; false when no client is configured.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
