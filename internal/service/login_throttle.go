package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const throttleKeyPrefix = "login:attempts:"

// LoginThrottle counts failed login attempts per identifier in Redis. It
// fails open: when Redis is unreachable, logins proceed unthrottled.
type LoginThrottle struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *zap.Logger
}

// NewLoginThrottle builds a throttle. A nil client disables throttling.
func NewLoginThrottle(client *redis.Client, maxPerWindow int, logger *zap.Logger) *LoginThrottle {
	return &LoginThrottle{
		client: client,
		max:    maxPerWindow,
		window: time.Minute,
		logger: logger,
	}
}

// Allow reports whether another attempt for the identifier is permitted.
func (t *LoginThrottle) Allow(ctx context.Context, identifier string) bool {
	if t == nil || t.client == nil || t.max <= 0 {
		return true
	}

	key := throttleKeyPrefix + identifier
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			t.logger.Warn("login throttle expire failed", zap.Error(err))
		}
	}
	return count <= int64(t.max)
}

// Reset clears the attempt counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, identifier string) {
	if t == nil || t.client == nil {
		return
	}
	if err := t.client.Del(ctx, throttleKeyPrefix+identifier).Err(); err != nil {
		t.logger.Warn("login throttle reset failed", zap.Error(err))
	}
}
