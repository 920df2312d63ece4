package domain

// TransactionResult is the outcome of one mutation attempt.
//
// It is either a success carrying the committed Action or a failure carrying the
// reason. A failure reason always wraps one of the domain errors, so errors.Is
// can be used to tell failures apart.
type TransactionResult struct {
	economyID string
	action    Action
	err       error
}

// Success returns a successful result for the given economy.
func Success(economyID string, action Action) TransactionResult {
	return TransactionResult{economyID: economyID, action: action}
}

// Failure returns a failed result for the given economy.
func Failure(economyID string, err error) TransactionResult {
	return TransactionResult{economyID: economyID, err: err}
}

// EconomyID returns the id of the economy that produced the result.
func (r TransactionResult) EconomyID() string { return r.economyID }

// Action returns the committed action, or nil for a failure.
func (r TransactionResult) Action() Action { return r.action }

// Err returns the failure reason, or nil for a success.
func (r TransactionResult) Err() error { return r.err }

// IsSuccess reports whether the mutation was applied.
func (r TransactionResult) IsSuccess() bool {
	return r.err == nil && r.action != nil
}

// ErrorMessage returns a human readable failure message, empty on success.
func (r TransactionResult) ErrorMessage() string {
	if r.err == nil {
		return ""
	}

	return r.err.Error()
}
