package txeconomy

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/internal/eventbus"
	"github.com/go-petr/pet-vault/internal/memeconomy"
)

func TestMutationsPublishOnSuccess(t *testing.T) {
	ctx := context.Background()
	player := uuid.New()
	other := uuid.New()

	testCases := []struct {
		name        string
		prepare     func(t *testing.T, e *Economy)
		mutate      func(e *Economy) (domain.TransactionResult, error)
		wantPublish bool
		wantErr     error
	}{
		{
			name: "DepositOK",
			mutate: func(e *Economy) (domain.TransactionResult, error) {
				return e.Deposit(ctx, player, decimal.NewFromInt(20))
			},
			wantPublish: true,
		},
		{
			name: "DepositNegative",
			mutate: func(e *Economy) (domain.TransactionResult, error) {
				return e.Deposit(ctx, player, decimal.NewFromInt(-1))
			},
			wantErr: domain.ErrNegativeAmount,
		},
		{
			name: "WithdrawInsufficient",
			mutate: func(e *Economy) (domain.TransactionResult, error) {
				return e.Withdraw(ctx, player, decimal.NewFromInt(1))
			},
			wantErr: domain.ErrInsufficientBalance,
		},
		{
			name: "WithdrawOK",
			prepare: func(t *testing.T, e *Economy) {
				_, err := e.Provider().SetBalance(ctx, player, decimal.NewFromInt(5))
				require.NoError(t, err)
			},
			mutate: func(e *Economy) (domain.TransactionResult, error) {
				return e.Withdraw(ctx, player, decimal.NewFromInt(5))
			},
			wantPublish: true,
		},
		{
			name: "SetBalanceOK",
			mutate: func(e *Economy) (domain.TransactionResult, error) {
				return e.SetBalance(ctx, player, decimal.NewFromInt(100))
			},
			wantPublish: true,
		},
		{
			name: "SetBalanceUnknownAccount",
			mutate: func(e *Economy) (domain.TransactionResult, error) {
				return e.SetBalance(ctx, uuid.New(), decimal.NewFromInt(100))
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "TransferOK",
			prepare: func(t *testing.T, e *Economy) {
				_, err := e.Provider().SetBalance(ctx, player, decimal.NewFromInt(5))
				require.NoError(t, err)
			},
			mutate: func(e *Economy) (domain.TransactionResult, error) {
				return e.Transfer(ctx, player, other, decimal.NewFromInt(5))
			},
			wantPublish: true,
		},
		{
			name: "TransferSelf",
			mutate: func(e *Economy) (domain.TransactionResult, error) {
				return e.Transfer(ctx, player, player, decimal.NewFromInt(5))
			},
			wantErr: domain.ErrSelfTransfer,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			publisher := NewMockPublisher(ctrl)

			provider := memeconomy.New(memeconomy.Config{ID: "gold"})
			e := New(provider, publisher)

			for _, id := range []uuid.UUID{player, other} {
				_, err := e.CreateAccount(ctx, id)
				require.NoError(t, err)
			}

			if tc.prepare != nil {
				tc.prepare(t, e)
			}

			var published domain.TransactionResult

			if tc.wantPublish {
				publisher.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Times(1).
					Do(func(_ context.Context, result domain.TransactionResult) {
						published = result
					})
			} else {
				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)
			}

			res, err := tc.mutate(e)
			require.NoError(t, err)

			if tc.wantErr != nil {
				require.False(t, res.IsSuccess())
				require.ErrorIs(t, res.Err(), tc.wantErr)
				return
			}

			require.True(t, res.IsSuccess())
			require.Equal(t, res, published)
			require.Equal(t, "gold", published.EconomyID())
		})
	}
}

func TestProviderFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	player := uuid.New()
	errStorage := errors.New("connection reset")

	provider := domain.NewMockPlayerEconomy(ctrl)
	publisher := NewMockPublisher(ctrl)

	provider.EXPECT().
		Deposit(gomock.Any(), gomock.Eq(player), gomock.Any()).
		Times(1).
		Return(domain.TransactionResult{}, errStorage)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	e := New(provider, publisher)

	_, err := e.Deposit(ctx, player, decimal.NewFromInt(1))
	require.ErrorIs(t, err, errStorage)
}

func TestReadsDelegate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	player := uuid.New()

	provider := domain.NewMockPlayerEconomy(ctrl)
	publisher := NewMockPublisher(ctrl)

	provider.EXPECT().ID().Return("gold").AnyTimes()
	provider.EXPECT().Balance(gomock.Any(), gomock.Eq(player)).Times(1).Return(decimal.NewFromInt(7), nil)
	provider.EXPECT().TopAccounts(gomock.Any(), 10, 1).Times(1).Return([]domain.PlayerBalance{}, nil)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	e := New(provider, publisher)

	require.Equal(t, "gold", e.ID())

	balance, err := e.Balance(ctx, player)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(7).Equal(balance))

	top, err := e.TopAccounts(ctx, 10, 1)
	require.NoError(t, err)
	require.Empty(t, top)
}

func TestWithEventBus(t *testing.T) {
	ctx := context.Background()
	player := uuid.New()

	bus := eventbus.New(zerolog.Nop())
	e := New(memeconomy.New(memeconomy.Config{ID: "gold"}), bus)

	var deposits []domain.Deposit

	bus.Subscribe(domain.ActionDeposit, func(_ context.Context, ev eventbus.Event) error {
		deposits = append(deposits, ev.Action().(domain.Deposit))
		require.False(t, ev.Inbound)
		return nil
	})

	_, err := e.CreateAccount(ctx, player)
	require.NoError(t, err)

	_, err = e.Deposit(ctx, player, decimal.NewFromInt(20))
	require.NoError(t, err)

	_, err = e.Deposit(ctx, player, decimal.NewFromInt(-20))
	require.NoError(t, err)

	require.Len(t, deposits, 1)
	require.True(t, decimal.Zero.Equal(deposits[0].Old))
	require.True(t, decimal.NewFromInt(20).Equal(deposits[0].New))
}
