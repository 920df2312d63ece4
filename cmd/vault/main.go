// Package main runs a vault server: the configured economy, its event
// listeners, the cross-server bridge and the dashboard.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/go-petr/pet-vault/internal/middleware"
	"github.com/go-petr/pet-vault/pkg/configpkg"

	_ "github.com/lib/pq"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create vault")
	}

	if err := a.start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("cannot start vault")
	}

	logger.Info().Str("economy", config.EconomyID).Msg("VAULT HAS STARTED")

	var server *http.Server

	if a.dashboard != nil {
		server = &http.Server{
			Addr:              config.ServerAddress,
			Handler:           a.dashboard,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("dashboard server stopped")
				stop()
			}
		}()

		logger.Info().Str("address", config.ServerAddress).Msg("dashboard listening")
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("cannot shut down dashboard")
		}
	}

	a.close(shutdownCtx)
}
