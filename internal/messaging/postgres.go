package messaging

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-vault/internal/domain"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
)

// PostgresBridge is a Bridge over PostgreSQL LISTEN/NOTIFY.
//
// Payloads are limited to the server NOTIFY size (8000 bytes by default), far
// above any encoded transaction.
type PostgresBridge struct {
	config Config
	logger zerolog.Logger

	mu       sync.Mutex
	db       *sql.DB
	listener *pq.Listener
	stop     chan struct{}
	done     chan struct{}
}

// NewPostgresBridge returns a bridge for the database at config.URL.
func NewPostgresBridge(config Config, logger zerolog.Logger) *PostgresBridge {
	return &PostgresBridge{
		config: config.withDefaults(),
		logger: logger.With().Str("bridge", "postgres").Logger(),
	}
}

// Start implements Bridge.
func (b *PostgresBridge) Start(ctx context.Context, onInbound InboundFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithTimeout(ctx, b.config.ConnectTimeout)
	defer cancel()

	db, err := sql.Open("postgres", b.config.URL)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("connect to postgres: %w", err)
	}

	listener := pq.NewListener(b.config.URL, minReconnectInterval, maxReconnectInterval, b.reportEvent)

	listening := make(chan error, 1)
	go func() { listening <- listener.Listen(b.config.Topic) }()

	select {
	case err = <-listening:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		_ = listener.Close()
		_ = db.Close()

		return fmt.Errorf("listen on %s: %w", b.config.Topic, err)
	}

	b.db = db
	b.listener = listener
	b.stop = make(chan struct{})
	b.done = make(chan struct{})

	go b.receive(listener, onInbound, b.stop, b.done)

	b.logger.Info().Str("topic", b.config.Topic).Msg("subscribed to cross-server events")

	return nil
}

func (b *PostgresBridge) reportEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		b.logger.Debug().Msg("listener connected")
	case pq.ListenerEventDisconnected:
		b.logger.Warn().Err(err).Msg("listener disconnected")
	case pq.ListenerEventReconnected:
		b.logger.Info().Msg("listener reconnected, events sent while disconnected are lost")
	case pq.ListenerEventConnectionAttemptFailed:
		b.logger.Error().Err(err).Msg("listener connection attempt failed")
	}
}

func (b *PostgresBridge) receive(listener *pq.Listener, onInbound InboundFunc, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ctx := b.logger.WithContext(context.Background())

	for {
		select {
		case <-stop:
			return
		case n, ok := <-listener.Notify:
			if !ok {
				return
			}

			// nil is sent after a reconnect
			if n == nil || n.Channel != b.config.Topic {
				continue
			}

			deliver(ctx, b.logger, b.config.Origin, n.Extra, onInbound)
		}
	}
}

// Publish implements Bridge.
func (b *PostgresBridge) Publish(ctx context.Context, result domain.TransactionResult) {
	payload, ok := encode(b.logger, b.config.Origin, result)
	if !ok {
		return
	}

	b.mu.Lock()
	db := b.db
	b.mu.Unlock()

	if db == nil {
		b.logger.Warn().Err(ErrNotStarted).Msg("postgres publish skipped")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, b.config.PublishTimeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, `SELECT pg_notify($1, $2)`, b.config.Topic, string(payload)); err != nil {
		b.logger.Error().Err(err).Str("economy", result.EconomyID()).Msg("failed to publish cross-server event")
	}
}

// Stop implements Bridge.
func (b *PostgresBridge) Stop(ctx context.Context) {
	b.mu.Lock()
	db, listener, stop, done := b.db, b.listener, b.stop, b.done
	b.db, b.listener, b.stop, b.done = nil, nil, nil, nil
	b.mu.Unlock()

	if db == nil {
		return
	}

	close(stop)

	select {
	case <-done:
	case <-ctx.Done():
		b.logger.Warn().Err(ctx.Err()).Msg("postgres receiver did not stop in time")
	}

	if err := listener.Close(); err != nil {
		b.logger.Warn().Err(err).Msg("failed to close postgres listener")
	}

	if err := db.Close(); err != nil {
		b.logger.Warn().Err(err).Msg("failed to close postgres connection")
	}
}
