package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shakauthossain/nh-buddy/internal/domain"
)

const redisKeyPrefix = "chat_session:"

// RedisStore implements Store on a Redis list per user. The store relies on
// Redis-native expiry for the TTL and on MULTI-pipelined RPUSH/LTRIM/EXPIRE
// so the trim invariant holds under concurrent appends.
type RedisStore struct {
	client     *redis.Client
	maxHistory int
	ttl        time.Duration
	timeout    time.Duration
}

// NewRedis connects to the Redis instance at url and verifies connectivity.
func NewRedis(ctx context.Context, url string, maxHistory int, ttl, timeout time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{
		client:     client,
		maxHistory: maxHistory,
		ttl:        ttl,
		timeout:    timeout,
	}, nil
}

func (s *RedisStore) key(userID string) string {
	return redisKeyPrefix + userID
}

// Append pushes the turn and trims to the newest maxHistory entries in one
// transactional pipeline.
func (s *RedisStore) Append(ctx context.Context, userID string, role domain.Role, content string) error {
	payload, err := json.Marshal(domain.Turn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode turn: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := s.key(userID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.LTrim(ctx, key, int64(-s.maxHistory), -1)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append turn for %s: %w", userID, err)
	}
	return nil
}

// Read returns the stored turns oldest-to-newest.
func (s *RedisStore) Read(ctx context.Context, userID string) ([]domain.Turn, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.LRange(ctx, s.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history for %s: %w", userID, err)
	}

	turns := make([]domain.Turn, 0, len(raw))
	for _, item := range raw {
		var turn domain.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			// Skip unreadable entries rather than failing the whole read.
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Clear deletes the user's history.
func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("clear history for %s: %w", userID, err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
