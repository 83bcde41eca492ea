package valkey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/samirrijal/sundowner/internal/core/ports"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache miss")

// Cache implements ports.CacheService using Valkey (Redis-compatible).
// Every key is stored under prefix, so several deployments can share one
// server.
type Cache struct {
	client valkey.Client
	prefix string
}

var _ ports.CacheService = (*Cache)(nil)

// New creates a new Valkey cache client.
func New(addr, prefix string) (*Cache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &Cache{client: client, prefix: prefix}, nil
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Get retrieves a value by key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Do(ctx, c.client.B().Get().Key(c.key(key)).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return b, nil
}

// Set stores a value with a TTL in seconds. A non-positive TTL stores the
// value without expiry.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	var cmd valkey.Completed
	if ttlSeconds > 0 {
		cmd = c.client.B().Set().Key(c.key(key)).Value(valkey.BinaryString(value)).
			Ex(time.Duration(ttlSeconds) * time.Second).Build()
	} else {
		cmd = c.client.B().Set().Key(c.key(key)).Value(valkey.BinaryString(value)).Build()
	}
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Do(ctx, c.client.B().Del().Key(c.key(key)).Build()).Error()
}

// Ping checks that the server answers.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (c *Cache) Close() {
	c.client.Close()
}
