package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"storefront-backend/pkg/logger"
)

type TrackSettlementHandler struct{}

func NewTrackSettlementHandler() *TrackSettlementHandler {
	return &TrackSettlementHandler{}
}

func (h *TrackSettlementHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload TrackSettlementPayload
	if err := unmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.Receipt.Reference == "" {
		return fmt.Errorf("%w: receipt without reference", asynq.SkipRetry)
	}

	logger.Info("Tracked settlement", map[string]interface{}{
		"session_id":     payload.SessionID,
		"reference":      payload.Receipt.Reference,
		"order_number":   payload.Receipt.OrderNumber,
		"transaction_id": payload.Receipt.TransactionID,
		"amount":         payload.Receipt.Amount.String(),
		"payment_method": payload.Receipt.PaymentMethod,
		"total_items":    payload.Receipt.TotalItems,
	})

	return nil
}
