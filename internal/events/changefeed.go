package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const changeChannelPrefix = "records."

// RecordChange is the wire form of a record mutation pushed to subscribers.
type RecordChange struct {
	Collection  string    `json:"collection"`
	Op          ChangeOp  `json:"op"`
	RecordID    string    `json:"record_id"`
	OwnerHandle string    `json:"owner_handle,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// ChangeFeed fans record mutations out to live subscribers through Redis
// pub/sub, one channel per collection.
type ChangeFeed struct {
	client *redis.Client
}

// NewChangeFeed wraps the Redis client.
func NewChangeFeed(client *redis.Client) *ChangeFeed {
	return &ChangeFeed{client: client}
}

// Publish pushes a change notification onto the collection's channel.
func (f *ChangeFeed) Publish(ctx context.Context, change RecordChange) error {
	if f == nil || f.client == nil {
		return nil
	}
	if change.Timestamp.IsZero() {
		change.Timestamp = time.Now()
	}
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, changeChannelPrefix+change.Collection, payload).Err()
}

// Subscription delivers change notifications until Close is called. Closing
// tears the underlying pub/sub connection down; a caller switching identity
// must Close before opening a new subscription so no stale notifications
// from the previous session are delivered.
type Subscription struct {
	C      <-chan RecordChange
	pubsub *redis.PubSub
	cancel context.CancelFunc
}

// Close tears down the subscription.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.cancel()
	_ = s.pubsub.Close()
}

// Subscribe opens a live subscription covering the given collections.
func (f *ChangeFeed) Subscribe(ctx context.Context, collections ...string) *Subscription {
	channels := make([]string, 0, len(collections))
	for _, c := range collections {
		channels = append(channels, changeChannelPrefix+c)
	}

	subCtx, cancel := context.WithCancel(ctx)
	pubsub := f.client.Subscribe(subCtx, channels...)
	out := make(chan RecordChange, 16)

	go func() {
		defer close(out)
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var change RecordChange
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					continue
				}
				select {
				case out <- change:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{C: out, pubsub: pubsub, cancel: cancel}
}
