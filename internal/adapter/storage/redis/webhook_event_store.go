package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// WebhookEventStore implements ports.WebhookEventStore. The provider
// delivers events at least once; a SETNX per event reference lets the
// first delivery through and flags every redelivery.
type WebhookEventStore struct {
	client *goredis.Client
	prefix string
}

// NewWebhookEventStore creates a Redis-backed webhook event store.
func NewWebhookEventStore(client *goredis.Client) *WebhookEventStore {
	return &WebhookEventStore{
		client: client,
		prefix: "webhook:event:",
	}
}

// MarkProcessed records the reference atomically. Returns false when an
// earlier delivery already recorded it.
func (s *WebhookEventStore) MarkProcessed(ctx context.Context, reference string, ttl time.Duration) (bool, error) {
	set, err := s.client.SetNX(ctx, s.prefix+reference, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis webhook event setnx: %w", err)
	}
	return set, nil
}

// Forget drops the record so the provider's next retry is processed.
func (s *WebhookEventStore) Forget(ctx context.Context, reference string) error {
	if err := s.client.Del(ctx, s.prefix+reference).Err(); err != nil {
		return fmt.Errorf("redis webhook event del: %w", err)
	}
	return nil
}
