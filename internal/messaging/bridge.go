// Package messaging replicates committed transactions between servers over a
// pub/sub transport.
//
// A Bridge publishes the wire form of local results to a shared topic and hands
// every decoded message received on that topic to an InboundFunc. Transport and
// serialization failures never reach the caller: they are logged and the
// message is dropped.
package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/internal/wire"
)

// DefaultTopic is the topic used when none is configured.
const DefaultTopic = "hyvault-events"

const (
	defaultConnectTimeout = 5 * time.Second
	defaultPublishTimeout = 2 * time.Second
)

var (
	// ErrAlreadyStarted is returned by Start on a running bridge.
	ErrAlreadyStarted = errors.New("bridge already started")
	// ErrNotStarted is logged when publishing on a bridge that is not running.
	ErrNotStarted = errors.New("bridge not started")
)

// InboundFunc receives a transaction replicated from another server.
type InboundFunc func(ctx context.Context, result domain.TransactionResult)

// Bridge is a cross-server transport for committed transactions.
type Bridge interface {
	// Start connects to the transport and subscribes to the topic. Decoded
	// inbound messages are passed to onInbound on the receive goroutine.
	Start(ctx context.Context, onInbound InboundFunc) error
	// Publish sends a successful result to the topic. Failed results are ignored.
	Publish(ctx context.Context, result domain.TransactionResult)
	// Stop releases the subscription and the connections.
	Stop(ctx context.Context)
}

// Config holds the transport settings shared by all bridges.
//
// Origin tags every published payload. A bridge drops received payloads
// carrying its own origin, so a server never sees its own events as inbound.
// It defaults to a random id per bridge.
type Config struct {
	URL            string
	Topic          string
	Origin         string
	ConnectTimeout time.Duration
	PublishTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Origin == "" {
		c.Origin = uuid.NewString()
	}

	if c.Topic == "" {
		c.Topic = DefaultTopic
	}

	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}

	if c.PublishTimeout <= 0 {
		c.PublishTimeout = defaultPublishTimeout
	}

	return c
}

// Topic returns the channel name for topic under prefix.
func Topic(prefix, topic string) string {
	if topic == "" {
		topic = DefaultTopic
	}

	if prefix == "" {
		return topic
	}

	return prefix + ":" + topic
}

// encode returns the payload for result, or false when it should not be sent.
func encode(logger zerolog.Logger, origin string, result domain.TransactionResult) ([]byte, bool) {
	if !result.IsSuccess() {
		return nil, false
	}

	payload, err := wire.EncodeFrom(origin, result)
	if err != nil {
		logger.Error().Err(err).Str("economy", result.EconomyID()).Msg("failed to serialize cross-server event")
		return nil, false
	}

	return payload, true
}

// deliver decodes payload and hands it to onInbound. Blank and undecodable
// payloads are dropped, and so are payloads sent with origin.
func deliver(ctx context.Context, logger zerolog.Logger, origin, payload string, onInbound InboundFunc) {
	if payload == "" {
		return
	}

	from, result, err := wire.DecodeFrom([]byte(payload))
	if err != nil {
		logger.Error().Err(err).Msg("failed to decode inbound cross-server event")
		return
	}

	if from != "" && from == origin {
		return
	}

	onInbound(ctx, result)
}
