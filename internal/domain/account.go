// Package domain provides defenitions of all entities.
package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNegativeAmount indicates negative amount.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrBalanceOverflow indicates that the balance would exceed MaxBalance.
	ErrBalanceOverflow = errors.New("balance would exceed maximum")
	// ErrSelfTransfer indicates a transfer whose source and destination are the same account.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")
	// ErrInvalidPagination indicates a non-positive page or page size.
	ErrInvalidPagination = errors.New("page and limit must be positive")
)

// MaxBalance is the largest balance an account may hold.
var MaxBalance = decimal.NewFromInt(9_223_372_036_854_775_807)

// PlayerBalance is a single row of an account listing.
type PlayerBalance struct {
	UUID    uuid.UUID       `json:"uuid"`
	Balance decimal.Decimal `json:"balance"`
}
