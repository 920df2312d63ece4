// Package vault owns the process-wide economy state: the registry of economies,
// the event bus and the cross-server bridge.
package vault

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/internal/eventbus"
	"github.com/go-petr/pet-vault/internal/messaging"
	"github.com/go-petr/pet-vault/internal/registry"
	"github.com/go-petr/pet-vault/internal/txeconomy"
)

// ErrAlreadyStarted is returned by Start on a running vault.
var ErrAlreadyStarted = errors.New("vault already started")

// Config holds the vault settings.
type Config struct {
	Registry registry.Config
}

// Vault wires economies, the event bus and an optional bridge together.
//
// Every economy registered through Provide publishes its committed
// transactions on the bus. While started, local transactions are forwarded to
// the bridge and transactions received from the bridge are published on the
// bus as inbound events, which are never forwarded again.
type Vault struct {
	logger   zerolog.Logger
	registry *registry.Registry
	bus      *eventbus.Bus
	bridge   messaging.Bridge

	mu        sync.Mutex
	listeners []eventbus.Handler
	subs      []eventbus.Subscription
	started   bool
}

// New returns a stopped vault. bridge may be nil for a single server setup.
func New(cfg Config, logger zerolog.Logger, bridge messaging.Bridge) *Vault {
	return &Vault{
		logger:   logger,
		registry: registry.New(cfg.Registry, logger.With().Str("component", "registry").Logger()),
		bus:      eventbus.New(logger.With().Str("component", "eventbus").Logger()),
		bridge:   bridge,
	}
}

// Registry returns the economy registry.
func (v *Vault) Registry() *registry.Registry { return v.registry }

// Bus returns the event bus.
func (v *Vault) Bus() *eventbus.Bus { return v.bus }

// AddListener registers handler for every action type once the vault starts.
func (v *Vault) AddListener(handler eventbus.Handler) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.listeners = append(v.listeners, handler)

	if v.started {
		v.subs = append(v.subs, v.bus.SubscribeAll(handler)...)
	}
}

// Provide wraps a raw provider so that it publishes its transactions, registers
// it and returns the wrapped economy.
func (v *Vault) Provide(raw domain.PlayerEconomy) *txeconomy.Economy {
	e := txeconomy.New(raw, v.bus)
	v.registry.Register(e)

	return e
}

// Economy returns the economy with the given id, falling back to the default.
func (v *Vault) Economy(id string) (domain.PlayerEconomy, error) {
	return v.registry.Get(id)
}

// Start subscribes the listeners and the outbound replication and starts the
// bridge. A bridge that fails to start is logged and left disabled.
func (v *Vault) Start(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.started {
		return ErrAlreadyStarted
	}

	for _, h := range v.listeners {
		v.subs = append(v.subs, v.bus.SubscribeAll(h)...)
	}

	if v.bridge != nil {
		if err := v.bridge.Start(ctx, v.receive); err != nil {
			v.logger.Error().Err(err).Msg("cross-server messaging disabled")
		} else {
			v.subs = append(v.subs, v.bus.SubscribeAll(v.forward)...)
			v.logger.Info().Msg("cross-server messaging enabled")
		}
	}

	v.started = true

	return nil
}

// Shutdown unsubscribes every handler, stops the bridge and clears the
// registry and the bus.
func (v *Vault) Shutdown(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, s := range v.subs {
		v.bus.Unsubscribe(s)
	}

	v.subs = nil

	if v.started && v.bridge != nil {
		v.bridge.Stop(ctx)
	}

	v.registry.Clear()
	v.bus.ClearAll()
	v.started = false

	v.logger.Info().Msg("vault stopped, registry cleared")
}

// forward sends local transactions to the other servers.
func (v *Vault) forward(ctx context.Context, ev eventbus.Event) error {
	if ev.Inbound {
		return nil
	}

	v.bridge.Publish(ctx, ev.Result)

	return nil
}

func (v *Vault) receive(ctx context.Context, result domain.TransactionResult) {
	v.bus.PublishInbound(ctx, result)
}
