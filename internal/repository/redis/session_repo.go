package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("session extend failed")
	ErrDeleteFailed     = errors.New("session delete failed")
)

const (
	sessionKeyPrefix = "session:user"

	// SessionTTL is the idle timeout; it slides forward on every
	// authenticated request.
	SessionTTL = 30 * time.Minute
)

// SessionRepository whitelists one session id per user. A cookie token
// is only honoured while its id matches the stored one, so logging in
// again (or logging out) invalidates older cookies.
type SessionRepository struct {
	Client *redis.Client
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("%s:%d", sessionKeyPrefix, userID)
}

func (r *SessionRepository) Save(ctx context.Context, userID uint, sessionID string) error {
	if err := r.Client.Set(ctx, sessionKey(userID), sessionID, SessionTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, userID uint) (string, error) {
	val, err := r.Client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return val, nil
}

func (r *SessionRepository) Extend(ctx context.Context, userID uint) error {
	if err := r.Client.Expire(ctx, sessionKey(userID), SessionTTL).Err(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID uint) error {
	if err := r.Client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return ErrDeleteFailed
	}
	return nil
}
