package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airline/config"
	"github.com/Domenick1991/airline/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	flightsKey   = "cache:flights"
	searchPrefix = "cache:flights:search:"
)

// RedisCache stores flight listings and search results. Every flight or
// seat mutation must call Invalidate.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), flightsTTL)
}

func NewRedisCacheWithClient(client *redis.Client, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetFlights returns the cached full listing. ok is false on a miss.
func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, bool, error) {
	return c.get(ctx, flightsKey)
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	return c.set(ctx, flightsKey, flights)
}

func (c *RedisCache) GetSearch(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, bool, error) {
	return c.get(ctx, searchKey(filter))
}

func (c *RedisCache) SetSearch(ctx context.Context, filter domain.FlightSearch, flights []domain.Flight) error {
	return c.set(ctx, searchKey(filter), flights)
}

// Invalidate drops the listing and every cached search.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	keys := []string{flightsKey}
	iter := c.client.Scan(ctx, 0, searchPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan search keys: %w", err)
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) get(ctx context.Context, key string) ([]domain.Flight, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, false, err
	}
	return flights, true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.flightsTTL).Err()
}

func searchKey(filter domain.FlightSearch) string {
	date := ""
	if filter.Date != nil {
		date = filter.Date.Format(time.DateOnly)
	}
	return searchPrefix + strings.ToLower(filter.From) + "|" + strings.ToLower(filter.To) + "|" + date
}
