package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fundraiser-backend/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

const bankCacheKey = "banks:directory"

// BankCache implements ports.BankCache: a read-through cache of the
// synced bank directory, invalidated after each directory sync.
type BankCache struct {
	client *goredis.Client
}

// NewBankCache creates a Redis-backed bank directory cache.
func NewBankCache(client *goredis.Client) *BankCache {
	return &BankCache{client: client}
}

// Get returns the cached directory, or nil, nil on a miss.
func (c *BankCache) Get(ctx context.Context) ([]domain.Bank, error) {
	val, err := c.client.Get(ctx, bankCacheKey).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis bank cache get: %w", err)
	}

	var banks []domain.Bank
	if err := json.Unmarshal(val, &banks); err != nil {
		return nil, fmt.Errorf("unmarshal cached banks: %w", err)
	}
	return banks, nil
}

// Set stores the directory with a TTL.
func (c *BankCache) Set(ctx context.Context, banks []domain.Bank, ttl time.Duration) error {
	data, err := json.Marshal(banks)
	if err != nil {
		return fmt.Errorf("marshal banks: %w", err)
	}
	if err := c.client.Set(ctx, bankCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis bank cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached directory.
func (c *BankCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, bankCacheKey).Err(); err != nil {
		return fmt.Errorf("redis bank cache del: %w", err)
	}
	return nil
}
