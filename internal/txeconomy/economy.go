// Package txeconomy publishes the successful mutations of an economy provider.
package txeconomy

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-vault/internal/domain"
)

// Publisher receives committed transactions.
//
//go:generate mockgen -source economy.go -destination economy_mock.go -package txeconomy
type Publisher interface {
	Publish(ctx context.Context, result domain.TransactionResult)
}

// Economy wraps a provider so that every successful mutation is published.
//
// Reads and metadata are served by the embedded provider unchanged. The
// provider itself must not publish, or every event would be seen twice.
type Economy struct {
	domain.PlayerEconomy
	publisher Publisher
}

// New wraps provider.
func New(provider domain.PlayerEconomy, publisher Publisher) *Economy {
	return &Economy{
		PlayerEconomy: provider,
		publisher:     publisher,
	}
}

// Provider returns the wrapped economy.
func (e *Economy) Provider() domain.PlayerEconomy {
	return e.PlayerEconomy
}

// Withdraw implements domain.PlayerEconomy.
func (e *Economy) Withdraw(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, error) {
	return e.publishOnSuccess(ctx)(e.PlayerEconomy.Withdraw(ctx, id, amount))
}

// Deposit implements domain.PlayerEconomy.
func (e *Economy) Deposit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, error) {
	return e.publishOnSuccess(ctx)(e.PlayerEconomy.Deposit(ctx, id, amount))
}

// SetBalance implements domain.PlayerEconomy.
func (e *Economy) SetBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, error) {
	return e.publishOnSuccess(ctx)(e.PlayerEconomy.SetBalance(ctx, id, amount))
}

// Transfer implements domain.PlayerEconomy.
func (e *Economy) Transfer(ctx context.Context, from, to uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, error) {
	return e.publishOnSuccess(ctx)(e.PlayerEconomy.Transfer(ctx, from, to, amount))
}

func (e *Economy) publishOnSuccess(ctx context.Context) func(domain.TransactionResult, error) (domain.TransactionResult, error) {
	return func(result domain.TransactionResult, err error) (domain.TransactionResult, error) {
		if err == nil && result.IsSuccess() {
			e.publisher.Publish(ctx, result)
		}

		return result, err
	}
}
