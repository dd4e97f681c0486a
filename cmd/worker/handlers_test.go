package main

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkoutJob "storefront-backend/internal/domains/checkout/job"
	"storefront-backend/internal/domains/checkout/model"
	"storefront-backend/internal/shared"
)

func TestRegisterHandlers_RoutesTrackSettlement(t *testing.T) {
	mux := asynq.NewServeMux()
	initializeHandlers().RegisterHandlers(mux)

	task, err := checkoutJob.NewTrackSettlementTask(checkoutJob.TrackSettlementPayload{
		Receipt: model.Receipt{Reference: "ref-1", OrderNumber: "SF-REF1"},
	})
	require.NoError(t, err)

	_, pattern := mux.Handler(task)
	assert.Equal(t, shared.TypeTrackSettlement, pattern)
	assert.NoError(t, mux.ProcessTask(context.Background(), task))
}

func TestRegisterHandlers_UnknownTaskIsRejected(t *testing.T) {
	mux := asynq.NewServeMux()
	initializeHandlers().RegisterHandlers(mux)

	err := mux.ProcessTask(context.Background(), asynq.NewTask("checkout:unknown", nil))
	assert.Error(t, err)
}
