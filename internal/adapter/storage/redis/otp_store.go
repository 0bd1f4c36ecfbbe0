package redis

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// OTPStore implements ports.OTPStore: short-lived email verification
// codes, deleted on first successful match.
type OTPStore struct {
	client *goredis.Client
	prefix string
}

// NewOTPStore creates a Redis-backed OTP store.
func NewOTPStore(client *goredis.Client) *OTPStore {
	return &OTPStore{
		client: client,
		prefix: "otp:",
	}
}

// NewPasswordResetStore creates an OTP store under its own key prefix,
// so reset codes and verification codes cannot stand in for each other.
func NewPasswordResetStore(client *goredis.Client) *OTPStore {
	return &OTPStore{
		client: client,
		prefix: "pwreset:",
	}
}

// Store saves a verification code with TTL, replacing any previous one.
func (s *OTPStore) Store(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+email, code, ttl).Err(); err != nil {
		return fmt.Errorf("redis otp set: %w", err)
	}
	return nil
}

// Consume validates and deletes the code. Returns false when the code is
// absent, expired, or does not match.
func (s *OTPStore) Consume(ctx context.Context, email, code string) (bool, error) {
	key := s.prefix + email
	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == goredis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis otp get: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return false, fmt.Errorf("redis otp del: %w", err)
	}
	return true, nil
}
