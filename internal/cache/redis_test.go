package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchKey(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "cache:flights:search:delhi|mumbai|2026-03-15",
		searchKey(domain.FlightSearch{From: "Delhi", To: "MUMBAI", Date: &day}))
	assert.Equal(t, "cache:flights:search:||", searchKey(domain.FlightSearch{}))
	assert.Equal(t, searchKey(domain.FlightSearch{From: "goa"}), searchKey(domain.FlightSearch{From: "GOA"}))
}

func newTestCache(t *testing.T) *RedisCache {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.FlushDB(context.Background()).Err())

	c := NewRedisCacheWithClient(client, time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache_Flights(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.GetFlights(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetFlights(ctx, []domain.Flight{}))
	flights, ok, err := c.GetFlights(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "an empty listing is still a hit")
	assert.Empty(t, flights)
}

func TestRedisCache_Invalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	filter := domain.FlightSearch{From: "Delhi"}

	require.NoError(t, c.SetFlights(ctx, []domain.Flight{{ID: 1, FlightNumber: "AI-1000"}}))
	require.NoError(t, c.SetSearch(ctx, filter, []domain.Flight{{ID: 1, FlightNumber: "AI-1000"}}))

	got, ok, err := c.GetSearch(ctx, filter)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "AI-1000", got[0].FlightNumber)

	require.NoError(t, c.Invalidate(ctx))

	_, ok, err = c.GetFlights(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = c.GetSearch(ctx, filter)
	require.NoError(t, err)
	assert.False(t, ok)
}
