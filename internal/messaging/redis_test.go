package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-vault/internal/domain"
)

const eventually = 2 * time.Second

func startRedisBridge(t *testing.T, server *miniredis.Miniredis, logger zerolog.Logger, c *collector) *RedisBridge {
	t.Helper()

	b := NewRedisBridge(Config{
		URL:            "redis://" + server.Addr(),
		Topic:          Topic("test", DefaultTopic),
		ConnectTimeout: time.Second,
		PublishTimeout: time.Second,
	}, logger)

	require.NoError(t, b.Start(context.Background(), c.onInbound))

	t.Cleanup(func() { b.Stop(context.Background()) })

	return b
}

func TestRedisBridgeRoundTrip(t *testing.T) {
	server := miniredis.RunT(t)

	var local, remote collector

	a := startRedisBridge(t, server, zerolog.Nop(), &local)
	_ = startRedisBridge(t, server, zerolog.Nop(), &remote)

	sent := depositResult("gold")
	a.Publish(context.Background(), sent)

	require.Eventually(t, func() bool { return len(remote.all()) == 1 }, eventually, 10*time.Millisecond)
	require.Never(t, func() bool { return len(local.all()) > 0 }, 100*time.Millisecond, 10*time.Millisecond)

	got := remote.all()[0]
	require.True(t, got.IsSuccess())
	require.Equal(t, "gold", got.EconomyID())
	require.Equal(t, sent.Action(), got.Action())
}

func TestRedisBridgeDropsBadPayloads(t *testing.T) {
	server := miniredis.RunT(t)
	logs := &syncBuffer{}

	var c collector

	b := startRedisBridge(t, server, zerolog.New(logs), &c)

	topic := Topic("test", DefaultTopic)

	server.Publish(topic, "not json")
	server.Publish(topic, `{"economyId":"gold","action":{"type":"Mint"}}`)
	server.Publish(topic, "")
	server.Publish("other-topic", `{"economyId":"gold"}`)

	own, ok := encode(zerolog.Nop(), b.config.Origin, depositResult("bronze"))
	require.True(t, ok)
	server.Publish(topic, string(own))

	payload, ok := encode(zerolog.Nop(), "another-server", depositResult("silver"))
	require.True(t, ok)
	server.Publish(topic, string(payload))

	require.Eventually(t, func() bool { return len(c.all()) == 1 }, eventually, 10*time.Millisecond)
	require.Equal(t, "silver", c.all()[0].EconomyID())
	require.Contains(t, logs.String(), "failed to decode inbound cross-server event")
}

func TestRedisBridgeIgnoresFailures(t *testing.T) {
	server := miniredis.RunT(t)

	var local, c collector

	b := startRedisBridge(t, server, zerolog.Nop(), &local)
	_ = startRedisBridge(t, server, zerolog.Nop(), &c)

	b.Publish(context.Background(), domain.Failure("gold", domain.ErrNegativeAmount))
	b.Publish(context.Background(), depositResult("gold"))

	require.Eventually(t, func() bool { return len(c.all()) == 1 }, eventually, 10*time.Millisecond)
	require.Never(t, func() bool { return len(c.all()) > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestRedisBridgeLifecycle(t *testing.T) {
	server := miniredis.RunT(t)
	logs := &syncBuffer{}
	ctx := context.Background()

	var c collector

	b := NewRedisBridge(Config{URL: "redis://" + server.Addr()}, zerolog.New(logs))

	b.Publish(ctx, depositResult("gold"))
	require.Contains(t, logs.String(), "redis publish skipped")

	require.NoError(t, b.Start(ctx, c.onInbound))
	require.ErrorIs(t, b.Start(ctx, c.onInbound), ErrAlreadyStarted)

	b.Stop(ctx)
	b.Stop(ctx)

	require.NoError(t, b.Start(ctx, c.onInbound))
	b.Stop(ctx)
}

func TestRedisBridgeStartErrors(t *testing.T) {
	testCases := []struct {
		name string
		url  string
	}{
		{name: "BadURL", url: "mysql://localhost"},
		{name: "Unreachable", url: "redis://127.0.0.1:1"},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b := NewRedisBridge(Config{URL: tc.url, ConnectTimeout: 200 * time.Millisecond}, zerolog.Nop())

			var c collector

			require.Error(t, b.Start(context.Background(), c.onInbound))
		})
	}
}

func TestRedisBridgePublishAfterServerLoss(t *testing.T) {
	server := miniredis.RunT(t)
	logs := &syncBuffer{}

	var c collector

	b := NewRedisBridge(Config{
		URL:            "redis://" + server.Addr(),
		PublishTimeout: 200 * time.Millisecond,
	}, zerolog.New(logs))

	require.NoError(t, b.Start(context.Background(), c.onInbound))
	defer b.Stop(context.Background())

	server.Close()

	b.Publish(context.Background(), depositResult("gold"))

	require.Contains(t, logs.String(), "failed to publish cross-server event")
}
