package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct{ R *redis.Client }

func New(r *redis.Client) *Cache { return &Cache{R: r} }

func keySport(sport string) string { return "opportunities:sport:" + sport }

func (c *Cache) GetOpportunities(ctx context.Context, sport string, dst any) (bool, error) {
	b, err := c.R.Get(ctx, keySport(sport)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) SetOpportunities(ctx context.Context, sport string, v any, ttl time.Duration) error {
	b, _ := json.Marshal(v)
	return c.R.Set(ctx, keySport(sport), b, ttl).Err()
}
