// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/redis/go-redis/v9"
)

const limiterKeyPrefix = "attempts:"

// redisLimiter is a fixed-window counter: the first attempt of a window
// gives the key a TTL equal to the window. The counter and its TTL are
// written in one MULTI, and EXPIRE NX re-arms a key that lost its TTL
// without stretching a live window.
type redisLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewRedisLimiter connects to Redis and returns an [AttemptLimiter]. It
// returns a limiter that allows everything when cfg.RedisAddress is empty.
func NewRedisLimiter(ctx context.Context, cfg config.Limiter, log *logger.Logger) (AttemptLimiter, error) {
	if cfg.RedisAddress == "" {
		log.Info().Str("func", "NewRedisLimiter").Msg("attempt limiter disabled")
		return noopLimiter{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisLimiter").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}

	return newRedisLimiter(client, cfg.MaxAttempts, cfg.Window), nil
}

func newRedisLimiter(client *redis.Client, maxAttempts int, window time.Duration) *redisLimiter {
	return &redisLimiter{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

// Allow implements [AttemptLimiter].
func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := limiterKeyPrefix + key

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "redisLimiter.Allow").Msg("failed to count attempt")
		return false, fmt.Errorf("error counting attempt: %w", err)
	}

	return incr.Val() <= l.maxAttempts, nil
}

// Reset implements [AttemptLimiter].
func (l *redisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, limiterKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("error resetting attempts: %w", err)
	}
	return nil
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (noopLimiter) Reset(context.Context, string) error         { return nil }
