package domain

import "github.com/shopspring/decimal"

// TransactionState is the dispute-lifecycle state of a transaction record.
// A record starts Resolved, may flip between Disputed and Resolved any
// number of times, and Chargeback is final.
type TransactionState int

const (
	StateResolved TransactionState = iota
	StateDisputed
	StateChargeback
)

// String returns the lowercase name of the state.
func (s TransactionState) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateDisputed:
		return "disputed"
	case StateChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Transaction is one ledger entry. Amount is positive for a deposit and
// negative for a withdrawal, and never changes after creation; only State
// moves.
type Transaction struct {
	Tx     uint32
	Client uint16
	Amount decimal.Decimal
	State  TransactionState
}

// Operation is a validated, typed unit of work derived from one input row:
// either a Creation opening a new transaction record or a Modifier moving
// an existing record through its state machine. The set of implementations
// is closed.
type Operation interface {
	isOperation()
}

// Creation opens a new transaction record for a client.
type Creation struct {
	Tx     uint32
	Client uint16
	Amount decimal.Decimal
}

// Modifier requests a state transition on an existing transaction record.
type Modifier struct {
	Tx     uint32
	Client uint16
	Target TransactionState
}

func (Creation) isOperation() {}
func (Modifier) isOperation() {}
