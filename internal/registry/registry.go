// Package registry keeps the registered economies of a process and decides
// which of them is the default.
package registry

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-vault/internal/domain"
)

// Config holds the operator settings of a Registry.
type Config struct {
	// AllowMultiple keeps every registered economy. When false, registering an
	// economy replaces all previous ones.
	AllowMultiple bool
	// PreferredDefault is the id that always wins the default slot once registered.
	PreferredDefault string
}

// Registry maps economy ids to economies and tracks the default one.
//
// The default is recomputed after every membership or preference change:
//  1. a registered preferred economy is always the default;
//  2. otherwise, with no default set, the first registered economy becomes it;
//  3. otherwise the current default is kept.
type Registry struct {
	logger zerolog.Logger

	mu            sync.RWMutex
	economies     map[string]domain.PlayerEconomy
	order         []string
	defaultID     string
	preferredID   string
	allowMultiple bool
}

// New returns an empty Registry.
func New(config Config, logger zerolog.Logger) *Registry {
	return &Registry{
		logger:        logger,
		economies:     make(map[string]domain.PlayerEconomy),
		preferredID:   config.PreferredDefault,
		allowMultiple: config.AllowMultiple,
	}
}

// Register adds the economy, replacing any economy with the same id, and
// returns it.
func (r *Registry) Register(e domain.PlayerEconomy) domain.PlayerEconomy {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := e.ID()

	if !r.allowMultiple && len(r.economies) > 0 {
		r.logger.Info().Msg("multiple economies disabled, clearing previous registrations")
		r.clear()
	}

	if _, ok := r.economies[id]; ok {
		r.logger.Warn().Str("economy", id).Msg("overwriting existing economy")
	} else {
		r.order = append(r.order, id)
	}

	r.economies[id] = e

	r.logger.Info().Str("economy", id).Str("name", e.Name()).Msg("registered economy provider")

	r.refreshDefault()

	return e
}

// Unregister removes the economy with the given id.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.economies[id]; !ok {
		return
	}

	delete(r.economies, id)

	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}

	r.logger.Info().Str("economy", id).Msg("unregistered economy provider")

	if r.defaultID == id {
		r.defaultID = ""
		r.refreshDefault()
	}
}

// SetPreferredDefault records the operator preferred default id.
func (r *Registry) SetPreferredDefault(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.preferredID = id
	r.refreshDefault()
}

// SetAllowMultiple changes whether later registrations keep earlier ones.
func (r *Registry) SetAllowMultiple(allow bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.allowMultiple = allow
}

// Get returns the economy with the given id. An empty id, or an id that is
// not registered, returns the default economy.
func (r *Registry) Get(id string) (domain.PlayerEconomy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.economies) == 0 {
		return nil, domain.ErrNoEconomyRegistered
	}

	if id != "" {
		if e, ok := r.economies[id]; ok {
			return e, nil
		}

		r.logger.Warn().Str("economy", id).Msg("requested economy not found, falling back to default")
	}

	if e, ok := r.economies[r.defaultID]; ok {
		return e, nil
	}

	return r.economies[r.order[0]], nil
}

// Lookup returns the economy with exactly the given id, without falling back.
func (r *Registry) Lookup(id string) (domain.PlayerEconomy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.economies[id]
	if !ok {
		return nil, domain.ErrEconomyNotFound
	}

	return e, nil
}

// Default returns the default economy.
func (r *Registry) Default() (domain.PlayerEconomy, error) {
	return r.Get("")
}

// All returns a snapshot of the registered economies in registration order.
func (r *Registry) All() []domain.PlayerEconomy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.PlayerEconomy, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.economies[id])
	}

	return all
}

// HasAny reports whether any economy is registered.
func (r *Registry) HasAny() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.economies) > 0
}

// Clear removes every economy and the default.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clear()
}

func (r *Registry) clear() {
	r.economies = make(map[string]domain.PlayerEconomy)
	r.order = nil
	r.defaultID = ""
}

// refreshDefault must be called with r.mu held.
func (r *Registry) refreshDefault() {
	if _, ok := r.economies[r.preferredID]; ok && r.preferredID != "" {
		if r.defaultID != r.preferredID {
			r.logger.Info().Str("economy", r.preferredID).Msg("default economy set to preferred")
		}

		r.defaultID = r.preferredID

		return
	}

	if r.defaultID == "" && len(r.order) > 0 {
		r.defaultID = r.order[0]
		r.logger.Info().Str("economy", r.defaultID).Msg("default economy auto-selected")
	}
}
