package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/practice-kit/practice-service/internal/events"
)

// NotificationService bridges in-process domain events to the outside
// world: record mutations go to the Redis change feed so connected
// dashboards refresh, and financial mutations invalidate the cached
// summaries.
type NotificationService struct {
	feed    *events.ChangeFeed
	finance *FinanceService
	logger  *zap.Logger
}

// NotificationDependencies wires outputs into the service.
type NotificationDependencies struct {
	ChangeFeed *events.ChangeFeed
	Finance    *FinanceService
	Logger     *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		feed:    deps.ChangeFeed,
		finance: deps.Finance,
		logger:  deps.Logger,
	}
}

// financialCollections are the collections whose mutations stale the
// cached monthly summary.
var financialCollections = map[string]bool{
	events.CollectionBilling:  true,
	events.CollectionIncomes:  true,
	events.CollectionExpenses: true,
}

// RegisterHandlers subscribes the service to the dispatcher.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventRecordChanged, n.handleRecordChanged)
	dispatcher.Subscribe(events.EventBillingGenerated, n.handleBillingGenerated)
	dispatcher.Subscribe(events.EventNoticePosted, n.handleNoticePosted)
	dispatcher.Subscribe(events.EventTaskAssigned, n.handleTaskAssigned)
}

func (n *NotificationService) handleRecordChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RecordChangedPayload)
	if !ok {
		return nil
	}

	if financialCollections[payload.Collection] && n.finance != nil {
		n.finance.BumpCacheVersion(ctx)
	}

	if n.feed == nil {
		return nil
	}
	err := n.feed.Publish(ctx, events.RecordChange{
		Collection:  payload.Collection,
		Op:          payload.Op,
		RecordID:    payload.RecordID,
		OwnerHandle: payload.OwnerHandle,
		Timestamp:   event.Timestamp,
	})
	if err != nil {
		n.logger.Warn("change feed publish failed",
			zap.String("collection", payload.Collection),
			zap.String("record_id", payload.RecordID),
			zap.Error(err),
		)
	}
	return nil
}

func (n *NotificationService) handleBillingGenerated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.BillingGeneratedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("monthly billing generated",
		zap.String("period", payload.Period),
		zap.Int("created", payload.Created),
		zap.Int("skipped", payload.Skipped),
		zap.String("actor", event.ActorHandle),
	)
	return nil
}

func (n *NotificationService) handleNoticePosted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.NoticePostedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("notice posted",
		zap.String("notice_id", payload.NoticeID),
		zap.Bool("everyone", payload.Everyone),
		zap.String("author", event.ActorHandle),
	)
	return nil
}

func (n *NotificationService) handleTaskAssigned(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskAssignedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("task assigned",
		zap.String("task_id", payload.TaskID),
		zap.Strings("assignees", payload.Assignees),
		zap.String("actor", event.ActorHandle),
	)
	return nil
}
