//go:build integration

package pgeconomy

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/pkg/configpkg"
	"github.com/go-petr/pet-vault/pkg/currencypkg"
	"github.com/go-petr/pet-vault/pkg/dbpkg"
	"github.com/go-petr/pet-vault/pkg/randompkg"

	_ "github.com/lib/pq"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err = sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	if err := Migrate(context.Background(), testDB); err != nil {
		log.Fatal("cannot migrate db:", err)
	}

	os.Exit(m.Run())
}

// newTestEconomy returns an economy with a random id so that tests never
// share rows.
func newTestEconomy() *Economy {
	return New(testDB, Config{
		ID:      randompkg.EconomyID(),
		Display: currencypkg.Display{Singular: "coin", Plural: "coins", FractionalDigits: 2},
	})
}

func seedAccount(t *testing.T, e *Economy, balance string) uuid.UUID {
	t.Helper()

	id := randompkg.UUID()

	created, err := e.CreateAccount(context.Background(), id)
	require.NoError(t, err)
	require.True(t, created)

	if balance != "" {
		res, err := e.SetBalance(context.Background(), id, decimal.RequireFromString(balance))
		require.NoError(t, err)
		require.True(t, res.IsSuccess())
	}

	return id
}

func requireBalance(t *testing.T, e *Economy, id uuid.UUID, want string) {
	t.Helper()

	got, err := e.Balance(context.Background(), id)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestMigrateIsIdempotent(t *testing.T) {
	config, err := configpkg.Load("../../configs")
	require.NoError(t, err)

	tx := dbpkg.SetupTX(t, config.DBDriver, config.DBSource)

	require.NoError(t, Migrate(context.Background(), tx))
	require.NoError(t, Migrate(context.Background(), tx))
}

func TestCreateAccount(t *testing.T) {
	e := newTestEconomy()
	ctx := context.Background()
	id := randompkg.UUID()

	has, err := e.HasAccount(ctx, id)
	require.NoError(t, err)
	require.False(t, has)

	created, err := e.CreateAccount(ctx, id)
	require.NoError(t, err)
	require.True(t, created)

	created, err = e.CreateAccount(ctx, id)
	require.NoError(t, err)
	require.False(t, created)

	has, err = e.HasAccount(ctx, id)
	require.NoError(t, err)
	require.True(t, has)

	requireBalance(t, e, id, "0")

	_, err = e.Balance(ctx, randompkg.UUID())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDepositWithdrawScenario(t *testing.T) {
	e := newTestEconomy()
	ctx := context.Background()
	id := seedAccount(t, e, "")

	res, err := e.Deposit(ctx, id, decimal.RequireFromString("20.00"))
	require.NoError(t, err)
	require.True(t, res.IsSuccess())

	deposit := res.Action().(domain.Deposit)
	require.True(t, deposit.Old.IsZero())
	require.True(t, decimal.NewFromInt(20).Equal(deposit.New))

	res, err = e.Withdraw(ctx, id, decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	require.ErrorIs(t, res.Err(), domain.ErrInsufficientBalance)
	requireBalance(t, e, id, "20.00")

	res, err = e.Deposit(ctx, id, decimal.RequireFromString("80.00"))
	require.NoError(t, err)
	require.True(t, res.IsSuccess())

	deposit = res.Action().(domain.Deposit)
	require.True(t, decimal.NewFromInt(20).Equal(deposit.Old))
	require.True(t, decimal.NewFromInt(100).Equal(deposit.New))
	requireBalance(t, e, id, "100.00")

	res, err = e.SetBalance(ctx, id, decimal.RequireFromString("7.25"))
	require.NoError(t, err)

	set := res.Action().(domain.Set)
	require.True(t, decimal.NewFromInt(100).Equal(set.Old))
	require.True(t, decimal.RequireFromString("7.25").Equal(set.New))
}

func TestMutationValidation(t *testing.T) {
	e := newTestEconomy()
	ctx := context.Background()
	id := seedAccount(t, e, "10")

	testCases := []struct {
		name    string
		mutate  func() (domain.TransactionResult, error)
		wantErr error
	}{
		{
			name: "NegativeBeforeUnknown",
			mutate: func() (domain.TransactionResult, error) {
				return e.Deposit(ctx, randompkg.UUID(), decimal.NewFromInt(-1))
			},
			wantErr: domain.ErrNegativeAmount,
		},
		{
			name: "UnknownDeposit",
			mutate: func() (domain.TransactionResult, error) {
				return e.Deposit(ctx, randompkg.UUID(), decimal.NewFromInt(1))
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "UnknownSet",
			mutate: func() (domain.TransactionResult, error) {
				return e.SetBalance(ctx, randompkg.UUID(), decimal.NewFromInt(1))
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "DepositOverflow",
			mutate: func() (domain.TransactionResult, error) {
				return e.Deposit(ctx, id, domain.MaxBalance)
			},
			wantErr: domain.ErrBalanceOverflow,
		},
		{
			name: "SetOverflow",
			mutate: func() (domain.TransactionResult, error) {
				return e.SetBalance(ctx, id, domain.MaxBalance.Add(decimal.NewFromInt(1)))
			},
			wantErr: domain.ErrBalanceOverflow,
		},
		{
			name: "WithdrawInsufficient",
			mutate: func() (domain.TransactionResult, error) {
				return e.Withdraw(ctx, id, decimal.NewFromInt(11))
			},
			wantErr: domain.ErrInsufficientBalance,
		},
		{
			name: "WithdrawNegative",
			mutate: func() (domain.TransactionResult, error) {
				return e.Withdraw(ctx, id, decimal.NewFromInt(-11))
			},
			wantErr: domain.ErrNegativeAmount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := tc.mutate()
			require.NoError(t, err)
			require.False(t, res.IsSuccess())
			require.ErrorIs(t, res.Err(), tc.wantErr)
		})
	}

	requireBalance(t, e, id, "10")
}

func TestConcurrentDeposits(t *testing.T) {
	e := newTestEconomy()
	id := seedAccount(t, e, "")

	const n = 50

	var g errgroup.Group

	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := e.Deposit(context.Background(), id, decimal.RequireFromString("1.50"))
			return err
		})
	}

	require.NoError(t, g.Wait())
	requireBalance(t, e, id, "75")
}

func TestTransfer(t *testing.T) {
	e := newTestEconomy()
	ctx := context.Background()

	from := seedAccount(t, e, "50")
	to := seedAccount(t, e, "5")

	res, err := e.Transfer(ctx, from, to, decimal.NewFromInt(20))
	require.NoError(t, err)
	require.True(t, res.IsSuccess())

	transfer := res.Action().(domain.Transfer)
	require.True(t, decimal.NewFromInt(30).Equal(transfer.From.New))
	require.True(t, decimal.NewFromInt(25).Equal(transfer.To.New))

	requireBalance(t, e, from, "30")
	requireBalance(t, e, to, "25")

	testCases := []struct {
		name    string
		from    uuid.UUID
		to      uuid.UUID
		amount  decimal.Decimal
		wantErr error
	}{
		{name: "Self", from: from, to: from, amount: decimal.NewFromInt(1), wantErr: domain.ErrSelfTransfer},
		{name: "Negative", from: from, to: to, amount: decimal.NewFromInt(-1), wantErr: domain.ErrNegativeAmount},
		{name: "UnknownSource", from: randompkg.UUID(), to: to, amount: decimal.NewFromInt(1), wantErr: domain.ErrAccountNotFound},
		{name: "UnknownDestination", from: from, to: randompkg.UUID(), amount: decimal.NewFromInt(1), wantErr: domain.ErrAccountNotFound},
		{name: "Insufficient", from: from, to: to, amount: decimal.NewFromInt(31), wantErr: domain.ErrInsufficientBalance},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := e.Transfer(ctx, tc.from, tc.to, tc.amount)
			require.NoError(t, err)
			require.ErrorIs(t, res.Err(), tc.wantErr)
		})
	}

	requireBalance(t, e, from, "30")
	requireBalance(t, e, to, "25")
}

func TestConcurrentOppositeTransfers(t *testing.T) {
	e := newTestEconomy()

	a := seedAccount(t, e, "100")
	b := seedAccount(t, e, "100")

	var g errgroup.Group

	for i := 0; i < 20; i++ {
		from, to := a, b
		if i%2 == 1 {
			from, to = b, a
		}

		g.Go(func() error {
			_, err := e.Transfer(context.Background(), from, to, decimal.NewFromInt(1))
			return err
		})
	}

	require.NoError(t, g.Wait())
	requireBalance(t, e, a, "100")
	requireBalance(t, e, b, "100")
}

func TestTopAccounts(t *testing.T) {
	e := newTestEconomy()
	ctx := context.Background()

	for _, balance := range []string{"5", "3", "3", "1"} {
		seedAccount(t, e, balance)
	}

	page1, err := e.TopAccounts(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.True(t, decimal.NewFromInt(5).Equal(page1[0].Balance))
	require.True(t, decimal.NewFromInt(3).Equal(page1[1].Balance))

	page2, err := e.TopAccounts(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	require.True(t, decimal.NewFromInt(3).Equal(page2[0].Balance))
	require.True(t, decimal.NewFromInt(1).Equal(page2[1].Balance))
	require.Less(t, page1[1].UUID.String(), page2[0].UUID.String())

	page3, err := e.TopAccounts(ctx, 2, 3)
	require.NoError(t, err)
	require.Empty(t, page3)

	_, err = e.TopAccounts(ctx, 0, 1)
	require.ErrorIs(t, err, domain.ErrInvalidPagination)

	all, err := e.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestCancelledContext(t *testing.T) {
	e := newTestEconomy()
	id := seedAccount(t, e, "1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Deposit(ctx, id, decimal.NewFromInt(1))
	require.ErrorIs(t, err, context.Canceled)

	_, err = e.Transfer(ctx, id, randompkg.UUID(), decimal.NewFromInt(1))
	require.ErrorIs(t, err, context.Canceled)
}
