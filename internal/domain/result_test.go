package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTransactionResult(t *testing.T) {
	id := uuid.New()
	deposit := Deposit{UUID: id, Old: decimal.Zero, New: decimal.NewFromInt(20)}

	testCases := []struct {
		name        string
		result      TransactionResult
		wantSuccess bool
		wantAction  Action
		wantErr     error
		wantMessage string
	}{
		{
			name:        "Success",
			result:      Success("gold", deposit),
			wantSuccess: true,
			wantAction:  deposit,
		},
		{
			name:        "Failure",
			result:      Failure("gold", fmt.Errorf("%w: has 20, needs 100", ErrInsufficientBalance)),
			wantErr:     ErrInsufficientBalance,
			wantMessage: "insufficient balance: has 20, needs 100",
		},
		{
			name:   "SuccessWithoutAction",
			result: Success("gold", nil),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, "gold", tc.result.EconomyID())
			require.Equal(t, tc.wantSuccess, tc.result.IsSuccess())
			require.Equal(t, tc.wantAction, tc.result.Action())
			require.Equal(t, tc.wantMessage, tc.result.ErrorMessage())

			if tc.wantErr != nil {
				require.True(t, errors.Is(tc.result.Err(), tc.wantErr))
			}
		})
	}
}

func TestActionTypes(t *testing.T) {
	actions := []Action{Withdraw{}, Deposit{}, Set{}, Transfer{}}

	require.Len(t, actions, len(ActionTypes))

	for i, a := range actions {
		require.Equal(t, ActionTypes[i], a.Type())
	}
}
