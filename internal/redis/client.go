package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"restaurant_manager/internal/models"
)

// ErrCacheMiss is returned when a key is absent; callers fall through to the
// database on this.
var ErrCacheMiss = fmt.Errorf("cache miss")

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// List-view cache. Only the default view (no filter, first page) of each
// entity is cached; mutations drop the key so the next read refreshes it.

func (c *Client) SetList(entity string, payload interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal list payload: %w", err)
	}

	return c.rdb.Set(ctx, "list:"+entity, jsonData, ttl).Err()
}

func (c *Client) GetList(entity string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "list:"+entity).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cached list: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) InvalidateList(entity string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "list:"+entity).Err()
}

// Cart staging. One in-progress order per session, serialized as JSON.

func (c *Client) SetCart(sessionID string, cart *models.Cart, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	return c.rdb.Set(ctx, "cart:"+sessionID, jsonData, ttl).Err()
}

func (c *Client) GetCart(sessionID string) (*models.Cart, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "cart:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return &cart, nil
}

func (c *Client) DeleteCart(sessionID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "cart:"+sessionID).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
