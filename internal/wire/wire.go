// Package wire converts committed transactions to and from the JSON payload
// exchanged between servers.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/pkg/currencypkg"
)

var (
	// ErrNotSuccess indicates that a failed result was offered for serialization.
	ErrNotSuccess = errors.New("only successful results can be serialized")
	// ErrUnknownAction indicates an action type discriminator that is not recognised.
	ErrUnknownAction = errors.New("unknown action type")
	// ErrMalformed indicates a payload field that cannot be parsed.
	ErrMalformed = errors.New("malformed payload")
)

// Balance is the wire form of a single account change.
type Balance struct {
	UUID string `json:"uuid"`
	Old  string `json:"old"`
	New  string `json:"new"`
}

// Action is the wire form of a domain.Action. Type selects which fields are set.
type Action struct {
	Type string `json:"type"`

	UUID string `json:"uuid,omitempty"`
	Old  string `json:"old,omitempty"`
	New  string `json:"new,omitempty"`

	From *Balance `json:"from,omitempty"`
	To   *Balance `json:"to,omitempty"`
}

// SerializedTransactionResult is the wire form of a successful TransactionResult.
// Origin names the sending bridge and is empty for payloads built without one.
type SerializedTransactionResult struct {
	EconomyID string `json:"economyId"`
	Origin    string `json:"origin,omitempty"`
	Action    Action `json:"action"`
}

// FromResult projects a successful result to its wire form.
func FromResult(result domain.TransactionResult) (SerializedTransactionResult, error) {
	if !result.IsSuccess() {
		return SerializedTransactionResult{}, ErrNotSuccess
	}

	var a Action

	switch v := result.Action().(type) {
	case domain.Withdraw:
		a = single(domain.ActionWithdraw, v.UUID, v.Old, v.New)
	case domain.Deposit:
		a = single(domain.ActionDeposit, v.UUID, v.Old, v.New)
	case domain.Set:
		a = single(domain.ActionSet, v.UUID, v.Old, v.New)
	case domain.Transfer:
		a = Action{
			Type: string(domain.ActionTransfer),
			From: balance(v.From.UUID, v.From.Old, v.From.New),
			To:   balance(v.To.UUID, v.To.Old, v.To.New),
		}
	default:
		return SerializedTransactionResult{}, fmt.Errorf("%w: %T", ErrUnknownAction, v)
	}

	return SerializedTransactionResult{EconomyID: result.EconomyID(), Action: a}, nil
}

// ToResult rebuilds the successful result carried by s.
func (s SerializedTransactionResult) ToResult() (domain.TransactionResult, error) {
	var action domain.Action

	switch t := domain.ActionType(s.Action.Type); t {
	case domain.ActionWithdraw, domain.ActionDeposit, domain.ActionSet:
		id, prev, next, err := s.Action.single()
		if err != nil {
			return domain.TransactionResult{}, err
		}

		switch t {
		case domain.ActionWithdraw:
			action = domain.Withdraw{UUID: id, Old: prev, New: next}
		case domain.ActionDeposit:
			action = domain.Deposit{UUID: id, Old: prev, New: next}
		default:
			action = domain.Set{UUID: id, Old: prev, New: next}
		}
	case domain.ActionTransfer:
		transfer, err := s.Action.transfer()
		if err != nil {
			return domain.TransactionResult{}, err
		}

		action = transfer
	default:
		return domain.TransactionResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, s.Action.Type)
	}

	return domain.Success(s.EconomyID, action), nil
}

// Encode serializes a successful result to JSON.
func Encode(result domain.TransactionResult) ([]byte, error) {
	return EncodeFrom("", result)
}

// EncodeFrom serializes a successful result to JSON tagged with origin.
func EncodeFrom(origin string, result domain.TransactionResult) ([]byte, error) {
	s, err := FromResult(result)
	if err != nil {
		return nil, err
	}

	s.Origin = origin

	return json.Marshal(s)
}

// Decode parses a JSON payload into a successful result. Unknown fields are ignored.
func Decode(data []byte) (domain.TransactionResult, error) {
	_, result, err := DecodeFrom(data)
	return result, err
}

// DecodeFrom parses a JSON payload and returns its origin with the result.
func DecodeFrom(data []byte) (string, domain.TransactionResult, error) {
	var s SerializedTransactionResult

	if err := json.Unmarshal(data, &s); err != nil {
		return "", domain.TransactionResult{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	result, err := s.ToResult()
	if err != nil {
		return "", domain.TransactionResult{}, err
	}

	return s.Origin, result, nil
}

func single(t domain.ActionType, id uuid.UUID, prev, next decimal.Decimal) Action {
	b := balance(id, prev, next)

	return Action{Type: string(t), UUID: b.UUID, Old: b.Old, New: b.New}
}

func balance(id uuid.UUID, prev, next decimal.Decimal) *Balance {
	return &Balance{
		UUID: id.String(),
		Old:  currencypkg.PlainString(prev),
		New:  currencypkg.PlainString(next),
	}
}

func (a Action) single() (uuid.UUID, decimal.Decimal, decimal.Decimal, error) {
	return Balance{UUID: a.UUID, Old: a.Old, New: a.New}.parse()
}

func (a Action) transfer() (domain.Action, error) {
	if a.From == nil || a.To == nil {
		return nil, fmt.Errorf("%w: transfer without both legs", ErrMalformed)
	}

	fromID, fromOld, fromNew, err := a.From.parse()
	if err != nil {
		return nil, err
	}

	toID, toOld, toNew, err := a.To.parse()
	if err != nil {
		return nil, err
	}

	return domain.Transfer{
		From: domain.Withdraw{UUID: fromID, Old: fromOld, New: fromNew},
		To:   domain.Deposit{UUID: toID, Old: toOld, New: toNew},
	}, nil
}

func (b Balance) parse() (uuid.UUID, decimal.Decimal, decimal.Decimal, error) {
	id, err := uuid.Parse(b.UUID)
	if err != nil {
		return uuid.Nil, decimal.Zero, decimal.Zero, fmt.Errorf("%w: uuid %q: %v", ErrMalformed, b.UUID, err)
	}

	prev, err := decimal.NewFromString(b.Old)
	if err != nil {
		return uuid.Nil, decimal.Zero, decimal.Zero, fmt.Errorf("%w: old %q: %v", ErrMalformed, b.Old, err)
	}

	next, err := decimal.NewFromString(b.New)
	if err != nil {
		return uuid.Nil, decimal.Zero, decimal.Zero, fmt.Errorf("%w: new %q: %v", ErrMalformed, b.New, err)
	}

	return id, prev, next, nil
}
