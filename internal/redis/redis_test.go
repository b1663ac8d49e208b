package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestDigestKey(t *testing.T) {
	assert.Equal(t, "solat:push-digest:d-1", digestKey("d-1"))
}

func TestNewWithClient_DefaultTTL(t *testing.T) {
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), 0)
	defer c.Close()
	assert.Equal(t, DigestTTL, c.ttl)
}

func TestLastDigest_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewWithClient(rdb, time.Hour)
	defer c.Close()

	_, err := c.LastDigest(context.Background(), "d-1")
	assert.Error(t, err)
	assert.Error(t, c.SetDigest(context.Background(), "d-1", "abc"))
}
