package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/domains/checkout/model"
	"storefront-backend/pkg/logger"
)

// Enqueuer is satisfied by *asynq.Client
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// SettlementTracker hands successful settlements to the worker
type SettlementTracker struct {
	client    Enqueuer
	queue     string
	sessionID string
}

func NewSettlementTracker(client Enqueuer, queue string) *SettlementTracker {
	return &SettlementTracker{client: client, queue: queue}
}

// ForSession returns a tracker that tags its tasks with sessionID
func (t *SettlementTracker) ForSession(sessionID string) *SettlementTracker {
	return &SettlementTracker{client: t.client, queue: t.queue, sessionID: sessionID}
}

func (t *SettlementTracker) TrackSettlement(ctx context.Context, receipt model.Receipt) error {
	task, err := NewTrackSettlementTask(TrackSettlementPayload{
		SessionID: t.sessionID,
		Receipt:   receipt,
	})
	if err != nil {
		return err
	}

	info, err := t.client.EnqueueContext(ctx, task,
		asynq.Queue(t.queue),
		asynq.MaxRetry(3),
		asynq.TaskID(receipt.Reference),
	)
	if err != nil {
		return fmt.Errorf("enqueue track settlement: %w", err)
	}

	logger.Info("Enqueued track settlement task", map[string]interface{}{
		"task_id":   info.ID,
		"queue":     info.Queue,
		"reference": receipt.Reference,
	})
	return nil
}
