// Package memeconomy provides an in-memory economy provider.
//
// Balances live in a map of per-account cells. Each cell has its own lock, so
// mutations of one account are serialized while different accounts never wait
// on each other. The provider does not publish events; wrap it with txeconomy
// to get them.
package memeconomy

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/pkg/currencypkg"
)

// Config describes the economy exposed by the provider.
type Config struct {
	ID      string
	Name    string
	Display currencypkg.Display
}

type account struct {
	mu      sync.Mutex
	balance decimal.Decimal
}

// Economy is an in-memory domain.PlayerEconomy.
type Economy struct {
	config   Config
	accounts sync.Map // uuid.UUID -> *account
}

// New returns an empty in-memory economy.
func New(config Config) *Economy {
	if config.Name == "" {
		config.Name = config.ID
	}

	return &Economy{config: config}
}

// ID implements domain.PlayerEconomy.
func (e *Economy) ID() string { return e.config.ID }

// Name implements domain.PlayerEconomy.
func (e *Economy) Name() string { return e.config.Name }

// Enabled implements domain.PlayerEconomy.
func (e *Economy) Enabled() bool { return true }

// CurrencySingular implements domain.PlayerEconomy.
func (e *Economy) CurrencySingular() string { return e.config.Display.Singular }

// CurrencyPlural implements domain.PlayerEconomy.
func (e *Economy) CurrencyPlural() string { return e.config.Display.Plural }

// FractionalDigits implements domain.PlayerEconomy.
func (e *Economy) FractionalDigits() int { return e.config.Display.FractionalDigits }

// Format implements domain.PlayerEconomy.
func (e *Economy) Format(amount decimal.Decimal) string {
	return e.config.Display.Format(amount)
}

// CreateAccount creates a zero balance account unless one already exists.
func (e *Economy) CreateAccount(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, loaded := e.accounts.LoadOrStore(id, &account{balance: decimal.Zero})

	return !loaded, nil
}

// HasAccount reports whether the account exists.
func (e *Economy) HasAccount(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, ok := e.accounts.Load(id)

	return ok, nil
}

// Balance returns the current balance of the account.
func (e *Economy) Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	a, ok := e.load(id)
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balance, nil
}

// Deposit adds amount to the account.
func (e *Economy) Deposit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, error) {
	return e.mutate(ctx, id, amount, func(current decimal.Decimal) (decimal.Decimal, error) {
		next := current.Add(amount)
		if next.GreaterThan(domain.MaxBalance) {
			return current, fmt.Errorf("%w: has %s, depositing %s", domain.ErrBalanceOverflow, current, amount)
		}

		return next, nil
	}, func(prev, next decimal.Decimal) domain.Action {
		return domain.Deposit{UUID: id, Old: prev, New: next}
	})
}

// Withdraw takes amount from the account.
func (e *Economy) Withdraw(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, error) {
	return e.mutate(ctx, id, amount, func(current decimal.Decimal) (decimal.Decimal, error) {
		if current.LessThan(amount) {
			return current, fmt.Errorf("%w: has %s, needs %s", domain.ErrInsufficientBalance, current, amount)
		}

		return current.Sub(amount), nil
	}, func(prev, next decimal.Decimal) domain.Action {
		return domain.Withdraw{UUID: id, Old: prev, New: next}
	})
}

// SetBalance overwrites the account balance.
func (e *Economy) SetBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, error) {
	return e.mutate(ctx, id, amount, func(current decimal.Decimal) (decimal.Decimal, error) {
		if amount.GreaterThan(domain.MaxBalance) {
			return current, fmt.Errorf("%w: setting %s", domain.ErrBalanceOverflow, amount)
		}

		return amount, nil
	}, func(prev, next decimal.Decimal) domain.Action {
		return domain.Set{UUID: id, Old: prev, New: next}
	})
}

// Transfer moves amount between two accounts.
//
// Both accounts are locked in UUID order for the duration of the transfer, so
// either both legs are applied or neither is.
func (e *Economy) Transfer(ctx context.Context, from, to uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.TransactionResult{}, err
	}

	if amount.IsNegative() {
		return e.failure(fmt.Errorf("%w: %s", domain.ErrNegativeAmount, amount)), nil
	}

	if from == to {
		return e.failure(fmt.Errorf("%w: %s", domain.ErrSelfTransfer, from)), nil
	}

	src, ok := e.load(from)
	if !ok {
		return e.failure(fmt.Errorf("%w: %s", domain.ErrAccountNotFound, from)), nil
	}

	dst, ok := e.load(to)
	if !ok {
		return e.failure(fmt.Errorf("%w: %s", domain.ErrAccountNotFound, to)), nil
	}

	// To avoid deadlocks lock in consistent id order
	first, second := src, dst
	if bytes.Compare(to[:], from[:]) < 0 {
		first, second = dst, src
	}

	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if src.balance.LessThan(amount) {
		return e.failure(fmt.Errorf("%w: has %s, needs %s", domain.ErrInsufficientBalance, src.balance, amount)), nil
	}

	dstNext := dst.balance.Add(amount)
	if dstNext.GreaterThan(domain.MaxBalance) {
		return e.failure(fmt.Errorf("%w: has %s, depositing %s", domain.ErrBalanceOverflow, dst.balance, amount)), nil
	}

	action := domain.Transfer{
		From: domain.Withdraw{UUID: from, Old: src.balance, New: src.balance.Sub(amount)},
		To:   domain.Deposit{UUID: to, Old: dst.balance, New: dstNext},
	}

	src.balance = action.From.New
	dst.balance = action.To.New

	return domain.Success(e.config.ID, action), nil
}

// Accounts returns every account in no particular order.
func (e *Economy) Accounts(ctx context.Context) ([]domain.PlayerBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return e.snapshot(), nil
}

// TopAccounts returns one page of accounts ordered by descending balance.
// Equal balances are ordered by ascending UUID.
func (e *Economy) TopAccounts(ctx context.Context, limit, page int) ([]domain.PlayerBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if limit < 1 || page < 1 {
		return nil, domain.ErrInvalidPagination
	}

	items := e.snapshot()

	sort.Slice(items, func(i, j int) bool {
		if c := items[i].Balance.Cmp(items[j].Balance); c != 0 {
			return c > 0
		}

		return items[i].UUID.String() < items[j].UUID.String()
	})

	offset := (page - 1) * limit
	if offset >= len(items) {
		return []domain.PlayerBalance{}, nil
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end], nil
}

func (e *Economy) load(id uuid.UUID) (*account, bool) {
	v, ok := e.accounts.Load(id)
	if !ok {
		return nil, false
	}

	return v.(*account), true
}

func (e *Economy) snapshot() []domain.PlayerBalance {
	items := []domain.PlayerBalance{}

	e.accounts.Range(func(key, value any) bool {
		a := value.(*account)

		a.mu.Lock()
		balance := a.balance
		a.mu.Unlock()

		items = append(items, domain.PlayerBalance{UUID: key.(uuid.UUID), Balance: balance})

		return true
	})

	return items
}

func (e *Economy) failure(err error) domain.TransactionResult {
	return domain.Failure(e.config.ID, err)
}

// mutate runs the shared validation order of single account mutations:
// amount sign, account existence, then the operation specific bound check
// performed by compute while the account is locked.
func (e *Economy) mutate(
	ctx context.Context,
	id uuid.UUID,
	amount decimal.Decimal,
	compute func(current decimal.Decimal) (decimal.Decimal, error),
	record func(prev, next decimal.Decimal) domain.Action,
) (domain.TransactionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.TransactionResult{}, err
	}

	if amount.IsNegative() {
		return e.failure(fmt.Errorf("%w: %s", domain.ErrNegativeAmount, amount)), nil
	}

	a, ok := e.load(id)
	if !ok {
		return e.failure(fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)), nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	next, err := compute(a.balance)
	if err != nil {
		return e.failure(err), nil
	}

	old := a.balance
	a.balance = next

	return domain.Success(e.config.ID, record(old, next)), nil
}
