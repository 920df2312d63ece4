// Package adapters exposes a domain.PlayerEconomy in a future-returning and a
// context-free blocking form.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/pkg/futurepkg"
)

// Async runs every economy operation on its own goroutine.
type Async struct {
	economy domain.PlayerEconomy
}

// NewAsync returns an Async adapter for economy.
func NewAsync(economy domain.PlayerEconomy) *Async {
	return &Async{economy: economy}
}

// Economy returns the adapted economy.
func (a *Async) Economy() domain.PlayerEconomy {
	return a.economy
}

// CreateAccount resolves to false if the account already exists.
func (a *Async) CreateAccount(ctx context.Context, id uuid.UUID) *futurepkg.Future[bool] {
	return start(ctx, func(ctx context.Context) (bool, error) {
		return a.economy.CreateAccount(ctx, id)
	})
}

func (a *Async) HasAccount(ctx context.Context, id uuid.UUID) *futurepkg.Future[bool] {
	return start(ctx, func(ctx context.Context) (bool, error) {
		return a.economy.HasAccount(ctx, id)
	})
}

func (a *Async) Balance(ctx context.Context, id uuid.UUID) *futurepkg.Future[decimal.Decimal] {
	return start(ctx, func(ctx context.Context) (decimal.Decimal, error) {
		return a.economy.Balance(ctx, id)
	})
}

// Has resolves to true if the account holds at least amount. An unknown
// account holds nothing.
func (a *Async) Has(ctx context.Context, id uuid.UUID, amount decimal.Decimal) *futurepkg.Future[bool] {
	return start(ctx, func(ctx context.Context) (bool, error) {
		balance, err := a.economy.Balance(ctx, id)

		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			return false, nil
		case err != nil:
			return false, err
		}

		return balance.GreaterThanOrEqual(amount), nil
	})
}

func (a *Async) Deposit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) *futurepkg.Future[domain.TransactionResult] {
	return start(ctx, func(ctx context.Context) (domain.TransactionResult, error) {
		return a.economy.Deposit(ctx, id, amount)
	})
}

func (a *Async) Withdraw(ctx context.Context, id uuid.UUID, amount decimal.Decimal) *futurepkg.Future[domain.TransactionResult] {
	return start(ctx, func(ctx context.Context) (domain.TransactionResult, error) {
		return a.economy.Withdraw(ctx, id, amount)
	})
}

func (a *Async) SetBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) *futurepkg.Future[domain.TransactionResult] {
	return start(ctx, func(ctx context.Context) (domain.TransactionResult, error) {
		return a.economy.SetBalance(ctx, id, amount)
	})
}

func (a *Async) Transfer(ctx context.Context, from, to uuid.UUID, amount decimal.Decimal) *futurepkg.Future[domain.TransactionResult] {
	return start(ctx, func(ctx context.Context) (domain.TransactionResult, error) {
		return a.economy.Transfer(ctx, from, to, amount)
	})
}

func (a *Async) Accounts(ctx context.Context) *futurepkg.Future[[]domain.PlayerBalance] {
	return start(ctx, a.economy.Accounts)
}

func (a *Async) TopAccounts(ctx context.Context, limit, page int) *futurepkg.Future[[]domain.PlayerBalance] {
	return start(ctx, func(ctx context.Context) ([]domain.PlayerBalance, error) {
		return a.economy.TopAccounts(ctx, limit, page)
	})
}

// start runs fn on its own goroutine unless ctx is already done, in which case
// the future resolves immediately with the context error.
func start[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *futurepkg.Future[T] {
	if err := ctx.Err(); err != nil {
		var zero T
		return futurepkg.Completed(zero, err)
	}

	return futurepkg.Go(ctx, fn)
}
