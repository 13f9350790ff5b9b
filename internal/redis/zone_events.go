package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"zonewatch/internal/domain"
	"zonewatch/pkg/e"

	"github.com/redis/go-redis/v9"
)

const (
	ZoneEventsKey = "zones:events"
	// MaxQueuedZoneEvents caps the backlog while the sender is down; the
	// oldest events are dropped first.
	MaxQueuedZoneEvents = 10_000
)

// ZoneEventQueue is a Redis list of zone transitions. The engine pushes,
// the webhook sender pops.
type ZoneEventQueue struct {
	client *redis.Client
	key    string
	max    int64
}

func NewZoneEventQueue(client *redis.Client, key string) *ZoneEventQueue {
	return &ZoneEventQueue{client: client, key: key, max: MaxQueuedZoneEvents}
}

// WithLimit overrides the backlog cap.
func (q *ZoneEventQueue) WithLimit(n int64) *ZoneEventQueue {
	q.max = n
	return q
}

func (q *ZoneEventQueue) Publish(ctx context.Context, ev domain.ZoneEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pipe := q.client.TxPipeline()
	pipe.LPush(ctx, q.key, b)
	pipe.LTrim(ctx, q.key, 0, q.max-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (q *ZoneEventQueue) Pop(ctx context.Context, timeout time.Duration) (domain.ZoneEvent, error) {
	var ev domain.ZoneEvent

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ev, e.ErrEventQueueEmpty
		}
		return ev, err
	}
	if len(res) < 2 {
		return ev, e.ErrEventQueueEmpty
	}
	if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
		return ev, err
	}
	return ev, nil
}
