package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DigestTTL bounds how long a pushed-schedule digest is remembered.
const DigestTTL = 48 * time.Hour

const digestKeyPrefix = "solat:push-digest:"

// Client remembers, per display, the digest of the last schedule pushed to it.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(address, username, password string) *Client {
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	}), DigestTTL)
}

func NewWithClient(rdb *redis.Client, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = DigestTTL
	}
	return &Client{rdb: rdb, ttl: ttl}
}

func digestKey(displayID string) string {
	return digestKeyPrefix + displayID
}

// LastDigest returns the stored digest, or "" when nothing has been pushed yet.
func (c *Client) LastDigest(ctx context.Context, displayID string) (string, error) {
	v, err := c.rdb.Get(ctx, digestKey(displayID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get digest for display %s: %w", displayID, err)
	}
	return v, nil
}

func (c *Client) SetDigest(ctx context.Context, displayID, digest string) error {
	if err := c.rdb.Set(ctx, digestKey(displayID), digest, c.ttl).Err(); err != nil {
		log.Error().Err(err).Str("display_id", displayID).Msg("failed to store push digest")
		return fmt.Errorf("set digest for display %s: %w", displayID, err)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
