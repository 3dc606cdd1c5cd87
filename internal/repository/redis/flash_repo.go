package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrFlashAddFailed = errors.New("flash add failed")
	ErrFlashPopFailed = errors.New("flash pop failed")
)

const (
	flashKeyPrefix = "flash:visitor"

	// FlashTTL bounds how long an unread flash survives; a flash is
	// normally consumed by the very next rendered response.
	FlashTTL = 10 * time.Minute
)

// FlashRepository stores read-once notices per visitor.
type FlashRepository struct {
	Client *redis.Client
}

func flashKey(visitorID string) string {
	return fmt.Sprintf("%s:%s", flashKeyPrefix, visitorID)
}

func (r *FlashRepository) Add(ctx context.Context, visitorID, message string) error {
	key := flashKey(visitorID)
	pipe := r.Client.TxPipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, FlashTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return ErrFlashAddFailed
	}
	return nil
}

// PopAll returns the pending messages and deletes them atomically.
func (r *FlashRepository) PopAll(ctx context.Context, visitorID string) ([]string, error) {
	key := flashKey(visitorID)
	script := `
local msgs = redis.call("LRANGE", KEYS[1], 0, -1)
redis.call("DEL", KEYS[1])
return msgs
`
	res, err := r.Client.Eval(ctx, script, []string{key}).StringSlice()
	if err != nil {
		return nil, ErrFlashPopFailed
	}
	return res, nil
}
