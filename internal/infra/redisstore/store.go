// Package redisstore provides a Redis-backed implementation of domain.Slot.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/runoshun/tally/internal/domain"
)

// Ensure Store implements the slot interfaces.
var (
	_ domain.Slot        = (*Store)(nil)
	_ domain.SlotUpdater = (*Store)(nil)
)

// maxUpdateRetries bounds optimistic retries when a watched key changes.
const maxUpdateRetries = 10

// Store keeps each slot in one Redis string key.
type Store struct {
	client *redis.Client
	prefix string
}

// New creates a Store over an existing client.
func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Dial connects to Redis using cfg and verifies the connection.
func Dial(ctx context.Context, cfg domain.RedisConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return New(client, cfg.Prefix), nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set stores value under key without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Update applies fn under WATCH and retries if another client wrote the key.
func (s *Store) Update(ctx context.Context, key string, fn func([]byte, bool) ([]byte, error)) error {
	fullKey := s.prefix + key

	txf := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, fullKey).Bytes()
		ok := true
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				return fmt.Errorf("redis get: %w", err)
			}
			ok = false
		}

		next, err := fn(cur, ok)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, fullKey, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, fullKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("redis update %s: too many concurrent writers", key)
}

// Ping checks if the Redis connection is healthy.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client connection.
func (s *Store) Close() error {
	return s.client.Close()
}
