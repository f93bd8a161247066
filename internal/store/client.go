// Package store loads sensor nodes from Redis or from a dataset file.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/logging"

	"github.com/kpumuk/nodescope/internal/devtools"
)

func init() {
	// Disable all Redis logging globally using the built-in VoidLogger
	redis.SetLogger(&logging.VoidLogger{})
}

// DefaultRedisURL is used when no URL is configured.
const DefaultRedisURL = "redis://localhost:6379/0"

// ErrNodeNotFound is returned for a node that does not exist.
var ErrNodeNotFound = errors.New("node not found")

// Client reads and writes nodes in Redis.
type Client struct {
	redis           *redis.Client
	displayRedisURL string
}

// NewClient creates a new client configured from a Redis URL.
func NewClient(redisURL string) (*Client, error) {
	if redisURL == "" {
		redisURL = DefaultRedisURL
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.MaxRetries = -1
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	return &Client{
		redis:           redis.NewClient(opts),
		displayRedisURL: sanitizeRedisURL(redisURL),
	}, nil
}

// WithTracker records every command the client issues.
func (c *Client) WithTracker(tracker *devtools.Tracker) *Client {
	if tracker != nil {
		c.redis.AddHook(tracker.Hook())
	}
	return c
}

// DisplayRedisURL returns a sanitized URL safe for display.
func (c *Client) DisplayRedisURL() string {
	return c.displayRedisURL
}

func sanitizeRedisURL(redisURL string) string {
	if redisURL == "" {
		return ""
	}
	parsed, err := url.Parse(redisURL)
	if err != nil {
		return redisURL
	}
	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = nil
		} else {
			parsed.User = url.User(username)
		}
	}
	return parsed.String()
}

// Ping checks that Redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping %s: %w", c.displayRedisURL, err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.redis.Close()
}
