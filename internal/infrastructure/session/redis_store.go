// Package session implements server-side sessions backed by Redis. Tokens are
// opaque and random; ending a session deletes the key, so logout is a real
// revocation rather than waiting for an expiry.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voicedeck/recorder-api/internal/core/domain"
)

const (
	keyPrefix  = "session:"
	tokenBytes = 32
)

// RedisStore implements ports.SessionManager on top of a Redis client.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Start creates a session for the user and returns the opaque token.
func (s *RedisStore) Start(ctx context.Context, userID int64) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	err = s.client.Set(ctx, keyPrefix+token, userID, s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Resolve looks up the token and returns the owning user ID. An unknown or
// expired token resolves to domain.ErrNotLoggedIn.
func (s *RedisStore) Resolve(ctx context.Context, token string) (int64, error) {
	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, domain.ErrNotLoggedIn
		}
		return 0, fmt.Errorf("resolve session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value %q: %w", val, err)
	}

	return userID, nil
}

// End revokes the session. Ending an already-ended session is not an error.
func (s *RedisStore) End(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
