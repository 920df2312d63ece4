package telemetry

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/internal/eventbus"
	"github.com/go-petr/pet-vault/pkg/currencypkg"
)

// AuditLog writes one log line per committed transaction.
type AuditLog struct {
	logger zerolog.Logger
}

// NewAuditLog returns an AuditLog writing to logger.
func NewAuditLog(logger zerolog.Logger) *AuditLog {
	return &AuditLog{logger: logger.With().Str("component", "audit").Logger()}
}

// Handle is an eventbus.Handler.
func (l *AuditLog) Handle(_ context.Context, ev eventbus.Event) error {
	e := l.logger.Info().
		Str("economy", ev.Result.EconomyID()).
		Str("action", string(ev.Action().Type())).
		Bool("inbound", ev.Inbound)

	switch a := ev.Action().(type) {
	case domain.Withdraw:
		e = balanceChange(e, "", a.UUID.String(), a.Old, a.New)
	case domain.Deposit:
		e = balanceChange(e, "", a.UUID.String(), a.Old, a.New)
	case domain.Set:
		e = balanceChange(e, "", a.UUID.String(), a.Old, a.New)
	case domain.Transfer:
		e = balanceChange(e, "from_", a.From.UUID.String(), a.From.Old, a.From.New)
		e = balanceChange(e, "to_", a.To.UUID.String(), a.To.Old, a.To.New)
	}

	e.Msg("transaction committed")

	return nil
}

func balanceChange(e *zerolog.Event, prefix, id string, prev, next decimal.Decimal) *zerolog.Event {
	return e.
		Str(prefix+"uuid", id).
		Str(prefix+"old", currencypkg.PlainString(prev)).
		Str(prefix+"new", currencypkg.PlainString(next))
}
