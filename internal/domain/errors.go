package domain

import "errors"

// Rejection reasons returned by the engine. A rejection means the
// operation was evaluated against current state, found inapplicable, and
// nothing changed. None of these are fatal.
var (
	ErrDuplicateTransaction = errors.New("transaction id already exists")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrClientMismatch       = errors.New("client does not own transaction")
	ErrAccountLocked        = errors.New("account is locked")
	ErrInsufficientFunds    = errors.New("insufficient available funds")
	ErrBalanceOverflow      = errors.New("balance out of range")
	ErrInvalidTransition    = errors.New("illegal state transition")
)
