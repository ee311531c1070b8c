package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis operations the recorder needs.
type Client struct {
	rdb *redis.Client
	ctx context.Context
}

// NewClient creates a new Redis client
func NewClient(addr, password string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx := context.Background()

	// Test connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{
		rdb: rdb,
		ctx: ctx,
	}, nil
}

// GetWatchlist returns the set of tickers the recorder should subscribe to.
func (c *Client) GetWatchlist(key string) ([]string, error) {
	members, err := c.rdb.SMembers(c.ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist from Redis: %w", err)
	}
	return members, nil
}

// PublishPriceEvent pushes a streamed price update onto a Redis list for
// downstream consumers.
func (c *Client) PublishPriceEvent(listKey string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := c.rdb.LPush(c.ctx, listKey, data).Err(); err != nil {
		return fmt.Errorf("failed to push to Redis list: %w", err)
	}

	return nil
}

// CacheQuote stores the latest streamed price for a ticker in a Redis
// Hash keyed quote:<ticker>.
func (c *Client) CacheQuote(ticker string, currentPrice float64, fields map[string]interface{}) error {
	hashKey := fmt.Sprintf("quote:%s", ticker)

	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal quote fields: %w", err)
	}

	values := map[string]interface{}{
		"ticker":        ticker,
		"current_price": currentPrice,
		"timestamp":     time.Now().Unix(),
		"fields":        string(payload),
	}

	if err := c.rdb.HSet(c.ctx, hashKey, values).Err(); err != nil {
		return fmt.Errorf("failed to cache quote for %s: %w", ticker, err)
	}

	return nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
