// Package normalizer turns raw input rows into validated ledger operations.
// It is a pure mapping with no ledger state of its own: a row either becomes
// an Operation or is rejected with a reason, and the caller moves on.
package normalizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/payflow/internal/domain"
)

// Rejection reasons. Callers treat all of them the same way (skip the row);
// they exist so tests and debug logs can tell rejections apart.
var (
	ErrUnknownType      = errors.New("unknown record type")
	ErrInvalidClient    = errors.New("invalid client id")
	ErrInvalidTx        = errors.New("invalid transaction id")
	ErrMissingAmount    = errors.New("missing amount")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrUnexpectedAmount = errors.New("amount not allowed")
)

// Record is one loosely-typed input row as handed over by an I/O adapter.
// Amount is empty when the row carried no amount field.
type Record struct {
	Type   string
	Client string
	Tx     string
	Amount string
}

// Normalize maps one record to an Operation or reports why it is rejected.
// Deposits and withdrawals become Creations (withdrawal amounts are
// negated); dispute, resolve and chargeback become Modifiers and must not
// carry an amount.
func Normalize(rec Record) (domain.Operation, error) {
	client64, err := strconv.ParseUint(strings.TrimSpace(rec.Client), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidClient, rec.Client)
	}
	tx64, err := strconv.ParseUint(strings.TrimSpace(rec.Tx), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTx, rec.Tx)
	}
	client, tx := uint16(client64), uint32(tx64)

	switch strings.ToLower(strings.TrimSpace(rec.Type)) {
	case "deposit":
		amount, err := parseAmount(rec.Amount)
		if err != nil {
			return nil, err
		}
		return domain.Creation{Tx: tx, Client: client, Amount: amount}, nil
	case "withdrawal":
		amount, err := parseAmount(rec.Amount)
		if err != nil {
			return nil, err
		}
		return domain.Creation{Tx: tx, Client: client, Amount: amount.Neg()}, nil
	case "dispute":
		return modifier(tx, client, rec.Amount, domain.StateDisputed)
	case "resolve":
		return modifier(tx, client, rec.Amount, domain.StateResolved)
	case "chargeback":
		return modifier(tx, client, rec.Amount, domain.StateChargeback)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, rec.Type)
	}
}

func modifier(tx uint32, client uint16, amount string, target domain.TransactionState) (domain.Operation, error) {
	if strings.TrimSpace(amount) != "" {
		return nil, fmt.Errorf("%w on %s", ErrUnexpectedAmount, target)
	}
	return domain.Modifier{Tx: tx, Client: client, Target: target}, nil
}

// parseAmount validates a deposit/withdrawal amount: present, strictly
// positive, at most Scale textual decimal places (never rounded), and
// within the representable balance range.
func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, ErrMissingAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	switch {
	case amount.Exponent() < -domain.Scale:
		return decimal.Decimal{}, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, domain.Scale)
	case !amount.IsPositive():
		return decimal.Decimal{}, fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	case amount.GreaterThan(domain.MaxBalance):
		return decimal.Decimal{}, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	return amount, nil
}
