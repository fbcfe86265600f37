package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const leaveAggregate = "leave"

// OutboxNotifier records lifecycle events in the outbox; the worker binary
// publishes them to the broker.
type OutboxNotifier struct {
	repo   kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxNotifier(repo kafka.OutboxRepository, logger ...*zap.Logger) *OutboxNotifier {
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}
	return &OutboxNotifier{repo: repo, logger: l}
}

func (n *OutboxNotifier) Notify(ctx context.Context, evt events.LeaveLifecycleEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s: %w", evt.EventType, err)
	}

	row := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     evt.RequestID,
		AggregateType: leaveAggregate,
		AggregateID:   evt.LeaveID,
		EventType:     evt.EventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := n.repo.Create(ctx, row); err != nil {
		return fmt.Errorf("enqueue %s: %w", evt.EventType, err)
	}

	n.logger.Debug("leave event enqueued",
		zap.String("outbox_id", row.ID),
		zap.String("event_type", evt.EventType),
		zap.String("leave_id", evt.LeaveID),
	)
	return nil
}
