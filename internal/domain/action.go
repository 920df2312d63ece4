package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActionType names the concrete variant of an Action.
type ActionType string

// Action types, also used as the "type" discriminator on the wire.
const (
	ActionWithdraw ActionType = "Withdraw"
	ActionDeposit  ActionType = "Deposit"
	ActionSet      ActionType = "Set"
	ActionTransfer ActionType = "Transfer"
)

// ActionTypes lists every action variant.
var ActionTypes = []ActionType{
	ActionWithdraw,
	ActionDeposit,
	ActionSet,
	ActionTransfer,
}

// Action is an immutable record of one committed balance mutation.
//
// The set of implementations is closed: Withdraw, Deposit, Set and Transfer.
type Action interface {
	Type() ActionType
	isAction()
}

// Withdraw records money taken from an account.
type Withdraw struct {
	UUID uuid.UUID
	Old  decimal.Decimal
	New  decimal.Decimal
}

// Deposit records money added to an account.
type Deposit struct {
	UUID uuid.UUID
	Old  decimal.Decimal
	New  decimal.Decimal
}

// Set records an account balance being overwritten.
type Set struct {
	UUID uuid.UUID
	Old  decimal.Decimal
	New  decimal.Decimal
}

// Transfer records money moved between two accounts.
type Transfer struct {
	From Withdraw
	To   Deposit
}

// Type implements Action.
func (Withdraw) Type() ActionType { return ActionWithdraw }

// Type implements Action.
func (Deposit) Type() ActionType { return ActionDeposit }

// Type implements Action.
func (Set) Type() ActionType { return ActionSet }

// Type implements Action.
func (Transfer) Type() ActionType { return ActionTransfer }

func (Withdraw) isAction() {}
func (Deposit) isAction()  {}
func (Set) isAction()      {}
func (Transfer) isAction() {}
