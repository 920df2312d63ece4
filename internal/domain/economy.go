package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoEconomyRegistered indicates that no economy provider is registered.
	ErrNoEconomyRegistered = errors.New("no economy registered")
	// ErrEconomyNotFound indicates that the requested economy id is not registered.
	ErrEconomyNotFound = errors.New("economy not found")
	// ErrUnavailable indicates that the economy could not complete the call in time.
	ErrUnavailable = errors.New("economy unavailable")
)

//go:generate mockgen -source economy.go -destination economy_mock.go -package domain

// PlayerEconomy is the capability every economy provider implements.
//
// Mutations report domain violations (negative amount, unknown account,
// insufficient balance, overflow) as a failed TransactionResult. The error
// return is reserved for faults such as a cancelled context or a storage outage.
type PlayerEconomy interface {
	ID() string
	Name() string
	Enabled() bool
	CurrencySingular() string
	CurrencyPlural() string
	// FractionalDigits is used for display only; balances are exact decimals.
	FractionalDigits() int
	Format(amount decimal.Decimal) string

	// CreateAccount returns false if the account already exists.
	CreateAccount(ctx context.Context, id uuid.UUID) (bool, error)
	HasAccount(ctx context.Context, id uuid.UUID) (bool, error)
	// Balance returns ErrAccountNotFound for an unknown account.
	Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)

	Deposit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (TransactionResult, error)
	Withdraw(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (TransactionResult, error)
	SetBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (TransactionResult, error)
	Transfer(ctx context.Context, from, to uuid.UUID, amount decimal.Decimal) (TransactionResult, error)

	Accounts(ctx context.Context) ([]PlayerBalance, error)
	// TopAccounts returns accounts by descending balance. Page is 1-based.
	TopAccounts(ctx context.Context, limit, page int) ([]PlayerBalance, error)
}
