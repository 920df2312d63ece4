package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-vault/internal/dashboard"
	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/internal/memeconomy"
	"github.com/go-petr/pet-vault/internal/messaging"
	"github.com/go-petr/pet-vault/internal/pgeconomy"
	"github.com/go-petr/pet-vault/internal/registry"
	"github.com/go-petr/pet-vault/internal/telemetry"
	"github.com/go-petr/pet-vault/internal/vault"
	"github.com/go-petr/pet-vault/pkg/configpkg"
	"github.com/go-petr/pet-vault/pkg/currencypkg"
	"github.com/go-petr/pet-vault/pkg/dbpkg"
)

// app holds everything main starts and stops.
type app struct {
	logger    zerolog.Logger
	vault     *vault.Vault
	dashboard *dashboard.Server
	db        *sql.DB
	shutdown  func(context.Context) error
}

func newApp(ctx context.Context, config configpkg.Config, logger zerolog.Logger) (*app, error) {
	a := &app{logger: logger}

	provider, shutdown, err := telemetry.InitMeter(ctx, telemetry.MeterConfig{
		Enabled:      config.OTELEnabled,
		OTLPEndpoint: config.OTELEndpoint,
		OTLPInsecure: config.OTELInsecure,
		ServiceName:  config.ServiceName,
	})
	if err != nil {
		return nil, err
	}

	a.shutdown = shutdown

	metrics, err := telemetry.NewMetrics(provider)
	if err != nil {
		return nil, err
	}

	bridge, err := newBridge(config, logger.With().Str("component", "messaging").Logger())
	if err != nil {
		return nil, err
	}

	a.vault = vault.New(vault.Config{
		Registry: registry.Config{
			AllowMultiple:    config.AllowMultipleEconomies,
			PreferredDefault: config.DefaultEconomyID,
		},
	}, logger, bridge)

	a.vault.AddListener(metrics.Handle)
	a.vault.AddListener(telemetry.NewAuditLog(logger).Handle)

	economy, err := a.newEconomy(ctx, config)
	if err != nil {
		return nil, err
	}

	a.vault.Provide(economy)

	if config.DashboardEnabled {
		a.dashboard = dashboard.New(a.vault.Registry(), logger)
	}

	return a, nil
}

func (a *app) newEconomy(ctx context.Context, config configpkg.Config) (domain.PlayerEconomy, error) {
	display := currencypkg.Display{
		Singular:         config.CurrencySingular,
		Plural:           config.CurrencyPlural,
		FractionalDigits: config.FractionalDigits,
	}

	switch config.EconomyStore {
	case configpkg.StoreMemory:
		return memeconomy.New(memeconomy.Config{
			ID:      config.EconomyID,
			Name:    config.EconomyName,
			Display: display,
		}), nil
	case configpkg.StorePostgres:
		db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			return nil, fmt.Errorf("cannot connect to database: %w", err)
		}

		if err := pgeconomy.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("cannot migrate database: %w", err)
		}

		a.db = db

		return pgeconomy.New(db, pgeconomy.Config{
			ID:      config.EconomyID,
			Name:    config.EconomyName,
			Display: display,
		}), nil
	}

	return nil, fmt.Errorf("unknown economy store %q", config.EconomyStore)
}

func newBridge(config configpkg.Config, logger zerolog.Logger) (messaging.Bridge, error) {
	bridgeConfig := messaging.Config{
		URL:            config.MessagingURL,
		Topic:          messaging.Topic(config.MessagingPrefix, config.MessagingTopic),
		ConnectTimeout: config.MessagingConnectTimeout,
		PublishTimeout: config.MessagingPublishTimeout,
	}

	switch config.MessagingDriver {
	case configpkg.MessagingNone, "":
		return nil, nil
	case configpkg.MessagingRedis:
		return messaging.NewRedisBridge(bridgeConfig, logger), nil
	case configpkg.MessagingPostgres:
		if bridgeConfig.URL == "" {
			bridgeConfig.URL = config.DBSource
		}

		return messaging.NewPostgresBridge(bridgeConfig, logger), nil
	}

	return nil, fmt.Errorf("unknown messaging driver %q", config.MessagingDriver)
}

func (a *app) start(ctx context.Context) error {
	return a.vault.Start(ctx)
}

func (a *app) close(ctx context.Context) {
	a.vault.Shutdown(ctx)

	if err := a.shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("cannot flush metrics")
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("cannot close database")
		}
	}
}
