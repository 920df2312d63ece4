package messaging

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-vault/internal/domain"
)

// RedisBridge is a Bridge over Redis pub/sub.
type RedisBridge struct {
	config Config
	logger zerolog.Logger

	mu     sync.Mutex
	client *redis.Client
	pubsub *redis.PubSub
	done   chan struct{}
}

// NewRedisBridge returns a bridge for the Redis server at config.URL, for
// example redis://localhost:6379/0.
func NewRedisBridge(config Config, logger zerolog.Logger) *RedisBridge {
	return &RedisBridge{
		config: config.withDefaults(),
		logger: logger.With().Str("bridge", "redis").Logger(),
	}
}

// Start implements Bridge.
func (b *RedisBridge) Start(ctx context.Context, onInbound InboundFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.client != nil {
		return ErrAlreadyStarted
	}

	opts, err := redis.ParseURL(b.config.URL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}

	opts.DialTimeout = b.config.ConnectTimeout

	ctx, cancel := context.WithTimeout(ctx, b.config.ConnectTimeout)
	defer cancel()

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("connect to redis: %w", err)
	}

	pubsub := client.Subscribe(ctx, b.config.Topic)

	// Wait for the subscription confirmation.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		_ = client.Close()

		return fmt.Errorf("subscribe to %s: %w", b.config.Topic, err)
	}

	b.client = client
	b.pubsub = pubsub
	b.done = make(chan struct{})

	go b.receive(pubsub.Channel(), onInbound, b.done)

	b.logger.Info().Str("topic", b.config.Topic).Msg("subscribed to cross-server events")

	return nil
}

func (b *RedisBridge) receive(messages <-chan *redis.Message, onInbound InboundFunc, done chan<- struct{}) {
	defer close(done)

	ctx := b.logger.WithContext(context.Background())

	for msg := range messages {
		if msg.Channel != b.config.Topic {
			continue
		}

		deliver(ctx, b.logger, b.config.Origin, msg.Payload, onInbound)
	}
}

// Publish implements Bridge.
func (b *RedisBridge) Publish(ctx context.Context, result domain.TransactionResult) {
	payload, ok := encode(b.logger, b.config.Origin, result)
	if !ok {
		return
	}

	b.mu.Lock()
	client := b.client
	b.mu.Unlock()

	if client == nil {
		b.logger.Warn().Err(ErrNotStarted).Msg("redis publish skipped")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, b.config.PublishTimeout)
	defer cancel()

	if err := client.Publish(ctx, b.config.Topic, payload).Err(); err != nil {
		b.logger.Error().Err(err).Str("economy", result.EconomyID()).Msg("failed to publish cross-server event")
	}
}

// Stop implements Bridge.
func (b *RedisBridge) Stop(ctx context.Context) {
	b.mu.Lock()
	client, pubsub, done := b.client, b.pubsub, b.done
	b.client, b.pubsub, b.done = nil, nil, nil
	b.mu.Unlock()

	if client == nil {
		return
	}

	if err := pubsub.Close(); err != nil {
		b.logger.Warn().Err(err).Msg("failed to close redis subscription")
	}

	select {
	case <-done:
	case <-ctx.Done():
		b.logger.Warn().Err(ctx.Err()).Msg("redis receiver did not stop in time")
	}

	if err := client.Close(); err != nil {
		b.logger.Warn().Err(err).Msg("failed to close redis client")
	}
}
