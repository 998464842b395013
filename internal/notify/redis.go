package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Channel is the pub/sub channel dashboards subscribe to.
const Channel = "tagtrack:events"

// RedisPublisher pushes events over Redis pub/sub.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher creates a publisher on the given channel; empty means
// the default Channel.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = Channel
	}
	return &RedisPublisher{client: client, channel: channel}
}

var _ Notifier = (*RedisPublisher)(nil)

// Publish sends the event as JSON.
func (p *RedisPublisher) Publish(ctx context.Context, evt ScanEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, body).Err()
}
