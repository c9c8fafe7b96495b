package pubsub

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"
)

type RedisBroadcaster struct {
	r *redis.Client
}

func NewRedisBroadcaster(r *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{r: r}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.r.Publish(ctx, channel, payload).Err()
}

// Payload padrão para o WS do opportunity-service
type WSUpdate struct {
	Sport   string               `json:"sport"`
	Payload []events.Opportunity `json:"payload"`
}
