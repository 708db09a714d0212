package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisStore keeps each session in one Redis hash "session:{id}" with a
// field per key. Every write refreshes the TTL of the hash.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis backed store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func redisKey(sessionID uuid.UUID) string {
	return "session:" + sessionID.String()
}

// Get decodes the value stored under key into dest
func (s *RedisStore) Get(ctx context.Context, sessionID uuid.UUID, key string, dest interface{}) error {
	data, err := s.client.HGet(ctx, redisKey(sessionID), key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read session value %q: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode session value %q: %w", key, err)
	}
	return nil
}

// Set stores value under key and refreshes the TTL of the session
func (s *RedisStore) Set(ctx context.Context, sessionID uuid.UUID, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode session value %q: %w", key, err)
	}

	hash := redisKey(sessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hash, key, data)
		pipe.Expire(ctx, hash, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write session value %q: %w", key, err)
	}
	return nil
}

// Delete removes one key and refreshes the TTL of what remains
func (s *RedisStore) Delete(ctx context.Context, sessionID uuid.UUID, key string) error {
	hash := redisKey(sessionID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, hash, key)
		pipe.Expire(ctx, hash, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete session value %q: %w", key, err)
	}
	return nil
}

// Clear removes every key of the session
func (s *RedisStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
