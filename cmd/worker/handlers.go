package main

import (
	"github.com/hibiken/asynq"

	checkoutJob "storefront-backend/internal/domains/checkout/job"
	"storefront-backend/internal/shared"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	trackSettlement *checkoutJob.TrackSettlementHandler
}

func initializeHandlers() *HandlerRegistry {
	return &HandlerRegistry{
		trackSettlement: checkoutJob.NewTrackSettlementHandler(),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeTrackSettlement, h.trackSettlement.ProcessTask)
}
