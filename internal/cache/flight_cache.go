package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"go-gin-flight-booking/internal/model"
	"time"

	"github.com/redis/go-redis/v9"
)

type FlightCache interface {
	// 讀取：快取未命中時回傳 (nil, nil)
	Get(ctx context.Context, flightID int) (*model.Flight, error)
	// 寫入：以 TTL 保存航班快照
	Set(ctx context.Context, flight *model.Flight) error
	// 失效：航班更新或刪除後呼叫
	Invalidate(ctx context.Context, flightID int) error
}

type RedisFlightCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisFlightCache(client *redis.Client, ttl time.Duration) FlightCache {
	return &RedisFlightCacheImpl{
		client: client,
		ttl:    ttl,
	}
}

// 航班快照 key
func (c *RedisFlightCacheImpl) getFlightKey(flightID int) string {
	return fmt.Sprintf("flight:%d", flightID)
}

func (c *RedisFlightCacheImpl) Get(ctx context.Context, flightID int) (*model.Flight, error) {
	data, err := c.client.Get(ctx, c.getFlightKey(flightID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var flight model.Flight
	if err := json.Unmarshal(data, &flight); err != nil {
		return nil, fmt.Errorf("unmarshal cached flight: %w", err)
	}
	return &flight, nil
}

func (c *RedisFlightCacheImpl) Set(ctx context.Context, flight *model.Flight) error {
	payload, err := json.Marshal(flight)
	if err != nil {
		return fmt.Errorf("marshal flight: %w", err)
	}
	return c.client.Set(ctx, c.getFlightKey(flight.ID), payload, c.ttl).Err()
}

func (c *RedisFlightCacheImpl) Invalidate(ctx context.Context, flightID int) error {
	return c.client.Del(ctx, c.getFlightKey(flightID)).Err()
}
