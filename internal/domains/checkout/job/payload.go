package job

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/domains/checkout/model"
	"storefront-backend/internal/shared"
)

// TrackSettlementPayload is the body of a checkout:track_settlement task
type TrackSettlementPayload struct {
	SessionID string        `json:"session_id,omitempty"`
	Receipt   model.Receipt `json:"receipt"`
}

func NewTrackSettlementTask(payload TrackSettlementPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal track settlement payload: %w", err)
	}
	return asynq.NewTask(shared.TypeTrackSettlement, data), nil
}

func unmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	return nil
}
