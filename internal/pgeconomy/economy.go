// Package pgeconomy provides an economy provider backed by PostgreSQL.
package pgeconomy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/pkg/currencypkg"
	"github.com/go-petr/pet-vault/pkg/dbpkg"
	"github.com/go-petr/pet-vault/pkg/errorspkg"
)

const (
	balanceCheckConstraint = "player_accounts_balance_check"
	balanceMaxConstraint   = "player_accounts_balance_max"
)

// Config describes the economy exposed by the provider. Several economies can
// share one table, keyed by ID.
type Config struct {
	ID      string
	Name    string
	Display currencypkg.Display
}

// Economy is a domain.PlayerEconomy stored in the player_accounts table.
type Economy struct {
	config Config
	db     dbpkg.SQLInterface
	conn   *sql.DB
}

// New returns an economy using conn. The schema must exist, see Migrate.
func New(conn *sql.DB, config Config) *Economy {
	if config.Name == "" {
		config.Name = config.ID
	}

	return &Economy{
		config: config,
		db:     conn,
		conn:   conn,
	}
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

const createQuery = `
INSERT INTO
    player_accounts (economy_id, uuid, balance)
VALUES
    ($1, $2, 0)
ON CONFLICT (economy_id, uuid) DO NOTHING
`

// CreateAccount creates a zero balance account unless one already exists.
func (e *Economy) CreateAccount(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := e.db.ExecContext(ctx, createQuery, e.config.ID, id)
	if err != nil {
		return false, fault(ctx, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fault(ctx, err)
	}

	return n == 1, nil
}

const hasQuery = `
SELECT EXISTS (
    SELECT 1 FROM player_accounts WHERE economy_id = $1 AND uuid = $2
)
`

// HasAccount reports whether the account exists.
func (e *Economy) HasAccount(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool

	if err := e.db.QueryRowContext(ctx, hasQuery, e.config.ID, id).Scan(&exists); err != nil {
		return false, fault(ctx, err)
	}

	return exists, nil
}

const balanceQuery = `
SELECT balance
FROM player_accounts
WHERE economy_id = $1 AND uuid = $2
`

// Balance returns the current balance of the account.
func (e *Economy) Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := e.db.QueryRowContext(ctx, balanceQuery, e.config.ID, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrAccountNotFound
		}

		return decimal.Zero, fault(ctx, err)
	}

	return balance, nil
}

const addBalanceQuery = `
UPDATE player_accounts
SET balance = balance + $3
WHERE economy_id = $1 AND uuid = $2
RETURNING balance - $3, balance
`

// Deposit adds amount to the account.
func (e *Economy) Deposit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, error) {
	return e.update(ctx, id, amount, addBalanceQuery, amount, func(prev, next decimal.Decimal) domain.Action {
		return domain.Deposit{UUID: id, Old: prev, New: next}
	})
}

// Withdraw takes amount from the account.
func (e *Economy) Withdraw(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, error) {
	return e.update(ctx, id, amount, addBalanceQuery, amount.Neg(), func(prev, next decimal.Decimal) domain.Action {
		return domain.Withdraw{UUID: id, Old: prev, New: next}
	})
}

const setBalanceQuery = `
WITH prev AS (
    SELECT balance
    FROM player_accounts
    WHERE economy_id = $1 AND uuid = $2
    FOR UPDATE
)
UPDATE player_accounts p
SET balance = $3
FROM prev
WHERE p.economy_id = $1 AND p.uuid = $2
RETURNING prev.balance, p.balance
`

// SetBalance overwrites the account balance.
func (e *Economy) SetBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, error) {
	return e.update(ctx, id, amount, setBalanceQuery, amount, func(prev, next decimal.Decimal) domain.Action {
		return domain.Set{UUID: id, Old: prev, New: next}
	})
}

// update runs a single statement mutation returning the old and new balance.
// Bound violations are reported by the table constraints.
func (e *Economy) update(
	ctx context.Context,
	id uuid.UUID,
	amount decimal.Decimal,
	query string,
	arg decimal.Decimal,
	record func(prev, next decimal.Decimal) domain.Action,
) (domain.TransactionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.TransactionResult{}, err
	}

	if amount.IsNegative() {
		return e.failure(fmt.Errorf("%w: %s", domain.ErrNegativeAmount, amount)), nil
	}

	var prev, next decimal.Decimal

	err := e.db.QueryRowContext(ctx, query, e.config.ID, id, arg).Scan(&prev, &next)
	if err != nil {
		if failure, ok := e.violation(err, id, amount); ok {
			return failure, nil
		}

		return domain.TransactionResult{}, fault(ctx, err)
	}

	return domain.Success(e.config.ID, record(prev, next)), nil
}

const lockQuery = `
SELECT uuid, balance
FROM player_accounts
WHERE economy_id = $1 AND uuid = ANY($2::uuid[])
ORDER BY uuid
FOR UPDATE
`

const setQuery = `
UPDATE player_accounts
SET balance = $3
WHERE economy_id = $1 AND uuid = $2
`

// Transfer moves amount between two accounts within a single transaction.
//
// Both rows are locked in uuid order before either is changed, so concurrent
// opposite transfers cannot deadlock.
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

	var result domain.TransactionResult

	err := dbpkg.ExecTx(ctx, e.conn, func(tx *sql.Tx) error {
		balances, err := lockBalances(ctx, tx, e.config.ID, from, to)
		if err != nil {
			return err
		}

		src, ok := balances[from]
		if !ok {
			result = e.failure(fmt.Errorf("%w: %s", domain.ErrAccountNotFound, from))
			return nil
		}

		dst, ok := balances[to]
		if !ok {
			result = e.failure(fmt.Errorf("%w: %s", domain.ErrAccountNotFound, to))
			return nil
		}

		if src.LessThan(amount) {
			result = e.failure(fmt.Errorf("%w: has %s, needs %s", domain.ErrInsufficientBalance, src, amount))
			return nil
		}

		if dst.Add(amount).GreaterThan(domain.MaxBalance) {
			result = e.failure(fmt.Errorf("%w: has %s, depositing %s", domain.ErrBalanceOverflow, dst, amount))
			return nil
		}

		action := domain.Transfer{
			From: domain.Withdraw{UUID: from, Old: src, New: src.Sub(amount)},
			To:   domain.Deposit{UUID: to, Old: dst, New: dst.Add(amount)},
		}

		// To avoid deadlocks execute statements in consistent id order
		first, second := action.From.UUID, action.To.UUID
		firstBalance, secondBalance := action.From.New, action.To.New

		if to.String() < from.String() {
			first, second = second, first
			firstBalance, secondBalance = secondBalance, firstBalance
		}

		if _, err := tx.ExecContext(ctx, setQuery, e.config.ID, first, firstBalance); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, setQuery, e.config.ID, second, secondBalance); err != nil {
			return err
		}

		result = domain.Success(e.config.ID, action)

		return nil
	})
	if err != nil {
		return domain.TransactionResult{}, fault(ctx, err)
	}

	return result, nil
}

func lockBalances(ctx context.Context, tx *sql.Tx, economyID string, ids ...uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	rows, err := tx.QueryContext(ctx, lockQuery, economyID, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make(map[uuid.UUID]decimal.Decimal, len(ids))

	for rows.Next() {
		var (
			id      uuid.UUID
			balance decimal.Decimal
		)

		if err := rows.Scan(&id, &balance); err != nil {
			return nil, err
		}

		balances[id] = balance
	}

	return balances, rows.Err()
}

const listQuery = `
SELECT uuid, balance
FROM player_accounts
WHERE economy_id = $1
`

// Accounts returns every account in no particular order.
func (e *Economy) Accounts(ctx context.Context) ([]domain.PlayerBalance, error) {
	rows, err := e.db.QueryContext(ctx, listQuery, e.config.ID)
	if err != nil {
		return nil, fault(ctx, err)
	}

	return scanBalances(ctx, rows)
}

const topQuery = `
SELECT uuid, balance
FROM player_accounts
WHERE economy_id = $1
ORDER BY balance DESC, uuid ASC
LIMIT $2 OFFSET $3
`

// TopAccounts returns one page of accounts ordered by descending balance.
// Equal balances are ordered by ascending UUID.
func (e *Economy) TopAccounts(ctx context.Context, limit, page int) ([]domain.PlayerBalance, error) {
	if limit < 1 || page < 1 {
		return nil, domain.ErrInvalidPagination
	}

	rows, err := e.db.QueryContext(ctx, topQuery, e.config.ID, limit, (page-1)*limit)
	if err != nil {
		return nil, fault(ctx, err)
	}

	return scanBalances(ctx, rows)
}

func scanBalances(ctx context.Context, rows *sql.Rows) ([]domain.PlayerBalance, error) {
	defer rows.Close()

	items := []domain.PlayerBalance{}

	for rows.Next() {
		var b domain.PlayerBalance
		if err := rows.Scan(&b.UUID, &b.Balance); err != nil {
			return nil, fault(ctx, err)
		}

		items = append(items, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fault(ctx, err)
	}

	return items, nil
}

func (e *Economy) failure(err error) domain.TransactionResult {
	return domain.Failure(e.config.ID, err)
}

// violation maps a missing row or a violated balance constraint to a failed result.
func (e *Economy) violation(err error, id uuid.UUID, amount decimal.Decimal) (domain.TransactionResult, bool) {
	if errors.Is(err, sql.ErrNoRows) {
		return e.failure(fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)), true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case balanceCheckConstraint:
			return e.failure(fmt.Errorf("%w: needs %s", domain.ErrInsufficientBalance, amount)), true
		case balanceMaxConstraint:
			return e.failure(fmt.Errorf("%w: %s", domain.ErrBalanceOverflow, amount)), true
		}
	}

	return domain.TransactionResult{}, false
}

// fault logs a storage error and hides it behind errorspkg.ErrInternal.
// Context errors are returned as they are.
func fault(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	zerolog.Ctx(ctx).Error().Err(err).Send()

	return errorspkg.ErrInternal
}
