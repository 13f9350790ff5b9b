package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const TickLockKey = "zones:tick:lock"

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// TickLock is a lease that keeps one lifecycle tick running across replicas.
type TickLock struct {
	client *redis.Client
	key    string
}

func NewTickLock(r *Redis) *TickLock {
	return &TickLock{client: r.Client, key: TickLockKey}
}

// Acquire takes the lease for ttl. ok is false when another holder has it.
// release only deletes the key while this holder still owns it.
func (l *TickLock) Acquire(ctx context.Context, ttl time.Duration) (func(context.Context) error, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, ttl).Result()
	if err != nil || !ok {
		return nil, false, err
	}
	release := func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.client, []string{l.key}, token).Err()
	}
	return release, true, nil
}
