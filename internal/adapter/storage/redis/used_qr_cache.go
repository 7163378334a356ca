package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// UsedQRCodeCache implements ports.UsedQRCodeCache using Redis SET NX markers.
// It only short-circuits replays; the used_qr_codes primary key stays the guard.
type UsedQRCodeCache struct {
	client *goredis.Client
	prefix string
}

// NewUsedQRCodeCache creates a new Redis-backed used QR code cache.
func NewUsedQRCodeCache(client *goredis.Client) *UsedQRCodeCache {
	return &UsedQRCodeCache{
		client: client,
		prefix: "usedqr:",
	}
}

// IsUsed reports whether a marker exists for the payload id.
func (c *UsedQRCodeCache) IsUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := c.client.Exists(ctx, c.prefix+id.String()).Result()
	if err != nil {
		return false, fmt.Errorf("redis used qr exists: %w", err)
	}
	return n > 0, nil
}

// MarkUsed writes the marker with ttl. An existing marker is left untouched.
func (c *UsedQRCodeCache) MarkUsed(ctx context.Context, id uuid.UUID, ttl time.Duration) error {
	err := c.client.SetArgs(ctx, c.prefix+id.String(), 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Err()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis used qr mark: %w", err)
	}
	return nil
}
