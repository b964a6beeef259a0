package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/practice-kit/practice-service/internal/events"
)

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}

func publishRecordChange(ctx context.Context, dispatcher events.Dispatcher, actor, collection string, op events.ChangeOp, recordID, owner string) {
	publishEvent(ctx, dispatcher, events.Event{
		Type:        events.EventRecordChanged,
		ActorHandle: actor,
		Payload: events.RecordChangedPayload{
			Collection:  collection,
			Op:          op,
			RecordID:    recordID,
			OwnerHandle: owner,
		},
	})
}
