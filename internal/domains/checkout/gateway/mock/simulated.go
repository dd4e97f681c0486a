package mock

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/checkout/gateway"
)

// =====================================================
// SIMULATED SETTLEMENT GATEWAY
// =====================================================

// SimulatedGateway reports success after a fixed latency.
// Failures only happen when configured with SetFail.
type SimulatedGateway struct {
	latency time.Duration

	mu      sync.Mutex
	failure *gateway.SettlementError

	calls atomic.Int64
}

func NewSimulatedGateway(latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{latency: latency}
}

func (g *SimulatedGateway) Settle(
	ctx context.Context,
	req gateway.SettlementRequest,
) (*gateway.SettlementResponse, error) {
	g.calls.Add(1)

	timer := time.NewTimer(g.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, &gateway.SettlementError{Kind: gateway.FailureNetwork, Reason: ctx.Err().Error()}
	case <-timer.C:
	}

	g.mu.Lock()
	failure := g.failure
	g.mu.Unlock()
	if failure != nil {
		return nil, failure
	}

	return &gateway.SettlementResponse{
		TransactionID: fmt.Sprintf("SIM_%s", uuid.NewString()),
		SettledAt:     time.Now().UTC(),
	}, nil
}

// SetFail makes the following settlements fail with kind; an empty kind restores success
func (g *SimulatedGateway) SetFail(kind gateway.FailureKind, reason string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if kind == "" {
		g.failure = nil
		return
	}
	g.failure = &gateway.SettlementError{Kind: kind, Reason: reason}
}

// Calls returns how many settlements were requested
func (g *SimulatedGateway) Calls() int {
	return int(g.calls.Load())
}
