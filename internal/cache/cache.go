package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vidtube/backend/pkg/models"
)

// Cache provides read-through caching for hot dashboard views using Redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a new cache instance
func NewCache(host string, port int, password string, db int, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

func statsKey(channelID string) string {
	return fmt.Sprintf("stats:%s", channelID)
}

// SetChannelStats caches a channel's dashboard stats.
func (c *Cache) SetChannelStats(ctx context.Context, channelID string, stats *models.ChannelStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return c.client.Set(ctx, statsKey(channelID), data, c.ttl).Err()
}

// GetChannelStats retrieves cached channel stats. A miss returns nil, nil.
func (c *Cache) GetChannelStats(ctx context.Context, channelID string) (*models.ChannelStats, error) {
	data, err := c.client.Get(ctx, statsKey(channelID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get stats from cache: %w", err)
	}

	var stats models.ChannelStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	return &stats, nil
}

// InvalidateChannelStats drops a channel's cached stats. Called after
// writes that change the numbers: publish, delete, like, subscribe.
func (c *Cache) InvalidateChannelStats(ctx context.Context, channelID string) error {
	return c.client.Del(ctx, statsKey(channelID)).Err()
}

// Health check
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
