package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/value-bet-platform-poc/pkg/contracts/events"
)

// RedisCache encapsula o cache das oportunidades mais recentes por evento
// Client: cliente Redis
// TTL: tempo de expiração dos registros
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCache cria uma instância de cache Redis com TTL configurável
func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: c, TTL: ttl}
}

// key gera a chave Redis para as oportunidades de um evento do provedor
func key(eventID string) string { return "opportunities:event:" + eventID }

// SetEvent armazena as oportunidades derivadas de um evento com TTL definido
func (r *RedisCache) SetEvent(ctx context.Context, eventID string, ops []events.Opportunity) error {
	b, err := json.Marshal(ops)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key(eventID), b, r.TTL).Err()
}
