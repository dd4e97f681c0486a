package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/checkout/model"
	"storefront-backend/internal/shared"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: shared.QueueLow, Type: task.Type()}, nil
}

func sampleReceipt() model.Receipt {
	return model.Receipt{
		Reference:     "9b2f0c1e-1111-2222-3333-444455556666",
		OrderNumber:   "SF-9B2F0C1E11",
		TransactionID: "SIM_abc",
		Amount:        decimal.RequireFromString("110.70"),
		PaymentMethod: model.PaymentMethodInstantTransfer,
		ContactEmail:  "buyer@example.com",
		LineCount:     2,
		TotalItems:    3,
		SettledAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestSettlementTracker_EnqueuesReceipt(t *testing.T) {
	q := &fakeEnqueuer{}
	tracker := NewSettlementTracker(q, shared.QueueLow).ForSession("sess-1")

	require.NoError(t, tracker.TrackSettlement(context.Background(), sampleReceipt()))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, shared.TypeTrackSettlement, q.tasks[0].Type())

	var payload TrackSettlementPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &payload))
	assert.Equal(t, "sess-1", payload.SessionID)
	assert.Equal(t, "SF-9B2F0C1E11", payload.Receipt.OrderNumber)
	assert.True(t, decimal.RequireFromString("110.70").Equal(payload.Receipt.Amount))
}

func TestSettlementTracker_EnqueueError(t *testing.T) {
	q := &fakeEnqueuer{err: errors.New("redis unavailable")}
	tracker := NewSettlementTracker(q, shared.QueueLow)

	err := tracker.TrackSettlement(context.Background(), sampleReceipt())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis unavailable")
}

func TestTrackSettlementHandler_ProcessTask(t *testing.T) {
	task, err := NewTrackSettlementTask(TrackSettlementPayload{Receipt: sampleReceipt()})
	require.NoError(t, err)

	h := NewTrackSettlementHandler()
	assert.NoError(t, h.ProcessTask(context.Background(), task))
}

func TestTrackSettlementHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewTrackSettlementHandler()

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeTrackSettlement, []byte("{not json")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeTrackSettlement, []byte(`{"receipt":{}}`)))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
