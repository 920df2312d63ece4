// Package eventbus dispatches committed economy transactions to in-process listeners.
package eventbus

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/rs/zerolog"
)

// Event is a successful transaction delivered to handlers.
type Event struct {
	Result domain.TransactionResult
	// Inbound is set when the transaction was replicated from another server
	// rather than committed locally.
	Inbound bool
}

// Action returns the committed action of the event.
func (e Event) Action() domain.Action {
	return e.Result.Action()
}

// Handler reacts to an event. A returned error is logged and otherwise ignored.
type Handler func(ctx context.Context, ev Event) error

// Subscription identifies a registered handler.
type Subscription struct {
	actionType domain.ActionType
	sub        *subscriber
}

// ActionType returns the action type the subscription listens to.
func (s Subscription) ActionType() domain.ActionType {
	return s.actionType
}

type subscriber struct {
	handler Handler
}

// Bus is an in-process publish/subscribe table keyed by action type.
//
// Handler lists are copy-on-write: a publish iterates the snapshot taken when it
// started, so handlers may subscribe or unsubscribe concurrently.
type Bus struct {
	logger zerolog.Logger

	mu       sync.RWMutex
	handlers map[domain.ActionType][]*subscriber
}

// New returns an empty Bus.
func New(logger zerolog.Logger) *Bus {
	return &Bus{
		logger:   logger,
		handlers: make(map[domain.ActionType][]*subscriber),
	}
}

// Subscribe registers handler for every future successful transaction whose
// action is of the given type, across all economies.
func (b *Bus) Subscribe(actionType domain.ActionType, handler Handler) Subscription {
	s := &subscriber{handler: handler}

	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.handlers[actionType]
	next := make([]*subscriber, len(current), len(current)+1)
	copy(next, current)
	b.handlers[actionType] = append(next, s)

	return Subscription{actionType: actionType, sub: s}
}

// SubscribeAll registers handler for every action type.
func (b *Bus) SubscribeAll(handler Handler) []Subscription {
	subs := make([]Subscription, 0, len(domain.ActionTypes))

	for _, t := range domain.ActionTypes {
		subs = append(subs, b.Subscribe(t, handler))
	}

	return subs
}

// Unsubscribe removes a previously registered handler. Unknown subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.handlers[sub.actionType]

	next := make([]*subscriber, 0, len(current))
	for _, s := range current {
		if s != sub.sub {
			next = append(next, s)
		}
	}

	if len(next) == 0 {
		delete(b.handlers, sub.actionType)
		return
	}

	b.handlers[sub.actionType] = next
}

// ClearAll removes every handler.
func (b *Bus) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = make(map[domain.ActionType][]*subscriber)
}

// Publish dispatches a locally committed result. Failures are dropped.
func (b *Bus) Publish(ctx context.Context, result domain.TransactionResult) {
	b.dispatch(ctx, Event{Result: result})
}

// PublishInbound dispatches a result replicated from another server.
func (b *Bus) PublishInbound(ctx context.Context, result domain.TransactionResult) {
	b.dispatch(ctx, Event{Result: result, Inbound: true})
}

func (b *Bus) dispatch(ctx context.Context, ev Event) {
	if !ev.Result.IsSuccess() {
		return
	}

	actionType := ev.Result.Action().Type()

	b.mu.RLock()
	snapshot := b.handlers[actionType]
	b.mu.RUnlock()

	for _, s := range snapshot {
		b.invoke(ctx, s, ev)
	}
}

func (b *Bus) invoke(ctx context.Context, s *subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Err(fmt.Errorf("panic: %v", r)).
				Str("economy", ev.Result.EconomyID()).
				Str("action", string(ev.Action().Type())).
				Msg("event handler panicked")
		}
	}()

	if err := s.handler(ctx, ev); err != nil {
		b.logger.Error().
			Err(err).
			Str("economy", ev.Result.EconomyID()).
			Str("action", string(ev.Action().Type())).
			Msg("event handler failed")
	}
}
