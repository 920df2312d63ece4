// Package telemetry holds event bus listeners that observe committed transactions.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/internal/eventbus"
)

// MeterName is the instrumentation scope of the vault metrics.
const MeterName = "github.com/go-petr/pet-vault"

// Origin attribute values.
const (
	OriginLocal  = "local"
	OriginRemote = "remote"
)

// Metrics counts committed transactions and records moved amounts.
type Metrics struct {
	transactions metric.Int64Counter
	amounts      metric.Float64Histogram
}

// NewMetrics creates the instruments on a meter from provider.
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter(MeterName)

	transactions, err := meter.Int64Counter(
		"vault.transactions",
		metric.WithDescription("Number of committed economy transactions"),
	)
	if err != nil {
		return nil, err
	}

	amounts, err := meter.Float64Histogram(
		"vault.transaction.amount",
		metric.WithDescription("Absolute balance change of committed transactions"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{transactions: transactions, amounts: amounts}, nil
}

// Handle is an eventbus.Handler.
func (m *Metrics) Handle(ctx context.Context, ev eventbus.Event) error {
	origin := OriginLocal
	if ev.Inbound {
		origin = OriginRemote
	}

	action := ev.Action()

	attrs := metric.WithAttributes(
		attribute.String("economy", ev.Result.EconomyID()),
		attribute.String("action", string(action.Type())),
		attribute.String("origin", origin),
	)

	m.transactions.Add(ctx, 1, attrs)
	m.amounts.Record(ctx, delta(action), attrs)

	return nil
}

func delta(action domain.Action) float64 {
	var change float64

	switch a := action.(type) {
	case domain.Withdraw:
		change, _ = a.Old.Sub(a.New).Float64()
	case domain.Deposit:
		change, _ = a.New.Sub(a.Old).Float64()
	case domain.Set:
		change, _ = a.New.Sub(a.Old).Abs().Float64()
	case domain.Transfer:
		change, _ = a.From.Old.Sub(a.From.New).Float64()
	}

	return change
}
