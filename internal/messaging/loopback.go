package messaging

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-vault/internal/domain"
)

// Hub connects Loopback bridges inside one process. Every message published by
// a bridge is offered to every started bridge of the hub, the sender included,
// as a real pub/sub server would. The sender drops it by origin.
type Hub struct {
	mu      sync.RWMutex
	members map[*Loopback]InboundFunc
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{members: make(map[*Loopback]InboundFunc)}
}

// Bridge returns a new bridge attached to the hub.
func (h *Hub) Bridge(logger zerolog.Logger) *Loopback {
	return &Loopback{
		hub:    h,
		origin: uuid.NewString(),
		logger: logger.With().Str("bridge", "loopback").Logger(),
	}
}

func (h *Hub) broadcast(ctx context.Context, logger zerolog.Logger, payload []byte) {
	type target struct {
		origin    string
		onInbound InboundFunc
	}

	h.mu.RLock()
	targets := make([]target, 0, len(h.members))
	for l, fn := range h.members {
		targets = append(targets, target{origin: l.origin, onInbound: fn})
	}
	h.mu.RUnlock()

	for _, t := range targets {
		deliver(ctx, logger, t.origin, string(payload), t.onInbound)
	}
}

// Loopback is an in-process Bridge. Messages still go through the wire
// encoding, so it behaves like a networked transport with zero latency.
type Loopback struct {
	hub    *Hub
	origin string
	logger zerolog.Logger
}

// Start implements Bridge.
func (l *Loopback) Start(_ context.Context, onInbound InboundFunc) error {
	l.hub.mu.Lock()
	defer l.hub.mu.Unlock()

	if _, ok := l.hub.members[l]; ok {
		return ErrAlreadyStarted
	}

	l.hub.members[l] = onInbound

	return nil
}

// Publish implements Bridge. Delivery is synchronous.
func (l *Loopback) Publish(ctx context.Context, result domain.TransactionResult) {
	payload, ok := encode(l.logger, l.origin, result)
	if !ok {
		return
	}

	l.hub.mu.RLock()
	_, started := l.hub.members[l]
	l.hub.mu.RUnlock()

	if !started {
		l.logger.Warn().Err(ErrNotStarted).Msg("loopback publish skipped")
		return
	}

	l.hub.broadcast(ctx, l.logger, payload)
}

// Stop implements Bridge.
func (l *Loopback) Stop(context.Context) {
	l.hub.mu.Lock()
	defer l.hub.mu.Unlock()

	delete(l.hub.members, l)
}
