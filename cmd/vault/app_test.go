package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-vault/pkg/configpkg"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func testConfig() configpkg.Config {
	return configpkg.Config{
		DashboardEnabled:       true,
		EconomyStore:           configpkg.StoreMemory,
		EconomyID:              "hyconomy",
		EconomyName:            "Hyconomy",
		CurrencySingular:       "coin",
		CurrencyPlural:         "coins",
		FractionalDigits:       2,
		DefaultEconomyID:       "hyconomy",
		AllowMultipleEconomies: true,
		MessagingDriver:        configpkg.MessagingNone,
		MessagingTopic:         "hyvault-events",
		ServiceName:            "pet-vault",
	}
}

func startApp(t *testing.T, config configpkg.Config, logger zerolog.Logger) *app {
	t.Helper()

	a, err := newApp(context.Background(), config, logger)
	require.NoError(t, err)
	require.NoError(t, a.start(context.Background()))

	t.Cleanup(func() { a.close(context.Background()) })

	return a
}

func TestNewAppErrors(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *configpkg.Config)
		wantErr string
	}{
		{
			name:    "UnknownStore",
			mutate:  func(c *configpkg.Config) { c.EconomyStore = "mongo" },
			wantErr: `unknown economy store "mongo"`,
		},
		{
			name:    "UnknownMessaging",
			mutate:  func(c *configpkg.Config) { c.MessagingDriver = "kafka" },
			wantErr: `unknown messaging driver "kafka"`,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			config := testConfig()
			tc.mutate(&config)

			_, err := newApp(context.Background(), config, zerolog.Nop())
			require.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestAppServesDashboard(t *testing.T) {
	a := startApp(t, testConfig(), zerolog.Nop())
	require.NotNil(t, a.dashboard)

	ctx := context.Background()
	player := uuid.New()

	economy, err := a.vault.Economy("")
	require.NoError(t, err)
	require.Equal(t, "hyconomy", economy.ID())

	_, err = economy.CreateAccount(ctx, player)
	require.NoError(t, err)

	res, err := economy.Deposit(ctx, player, decimal.RequireFromString("20.00"))
	require.NoError(t, err)
	require.True(t, res.IsSuccess())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/economies/hyconomy/accounts/"+player.String(), nil)
	a.dashboard.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"formatted":"20.00 coins"`)
}

func TestAppDashboardDisabled(t *testing.T) {
	config := testConfig()
	config.DashboardEnabled = false

	a := startApp(t, config, zerolog.Nop())
	require.Nil(t, a.dashboard)
}

func TestAppsReplicateOverRedis(t *testing.T) {
	server := miniredis.RunT(t)

	config := testConfig()
	config.MessagingDriver = configpkg.MessagingRedis
	config.MessagingURL = "redis://" + server.Addr()
	config.MessagingPrefix = "network-a"
	config.MessagingConnectTimeout = time.Second
	config.MessagingPublishTimeout = time.Second

	var logsA, logsB syncBuffer

	a := startApp(t, config, zerolog.New(&logsA))
	_ = startApp(t, config, zerolog.New(&logsB))

	require.Equal(t, 2, server.PubSubNumSub("network-a:hyvault-events")["network-a:hyvault-events"])

	ctx := context.Background()
	player := uuid.New()

	economy, err := a.vault.Economy("")
	require.NoError(t, err)

	_, err = economy.CreateAccount(ctx, player)
	require.NoError(t, err)

	_, err = economy.Deposit(ctx, player, decimal.RequireFromString("20.00"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(logsB.String(), `"inbound":true`)
	}, 2*time.Second, 10*time.Millisecond)

	require.Contains(t, logsB.String(), `"new":"20.00"`)
	require.Contains(t, logsA.String(), `"inbound":false`)
	require.Never(t, func() bool {
		return strings.Contains(logsA.String(), `"inbound":true`)
	}, 200*time.Millisecond, 20*time.Millisecond)
}
