// Package engine owns all mutable ledger state and applies one validated
// operation at a time. Later operations' legality depends on exact prior
// state, so a single engine instance must see the stream in order and is
// not safe for concurrent use.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/iho/payflow/internal/domain"
)

// Engine applies operations against the transaction and client stores.
type Engine struct {
	transactions TransactionStore
	clients      ClientStore
}

// New creates an engine over the given stores.
func New(transactions TransactionStore, clients ClientStore) *Engine {
	return &Engine{
		transactions: transactions,
		clients:      clients,
	}
}

// Apply applies one operation. A nil return means the operation committed;
// a rejection sentinel from the domain package means it was evaluated and
// dropped with no state changed. Rejections are outcomes, not faults.
func (e *Engine) Apply(ctx context.Context, op domain.Operation) error {
	switch op := op.(type) {
	case domain.Creation:
		return e.applyCreation(ctx, op)
	case domain.Modifier:
		return e.applyModifier(ctx, op)
	default:
		return fmt.Errorf("unsupported operation %T", op)
	}
}

// Clients returns every account that has had at least one applied
// operation.
func (e *Engine) Clients(ctx context.Context) ([]*domain.Client, error) {
	return e.clients.List(ctx)
}

func (e *Engine) applyCreation(ctx context.Context, op domain.Creation) error {
	if _, err := e.transactions.Get(ctx, op.Tx); err == nil {
		return domain.ErrDuplicateTransaction
	} else if !errors.Is(err, domain.ErrTransactionNotFound) {
		return err
	}

	client, err := e.clients.Get(ctx, op.Client)
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		// A client's first-ever activity cannot be a withdrawal.
		if op.Amount.IsNegative() {
			return domain.ErrClientNotFound
		}
		if err := e.clients.Insert(ctx, domain.NewClient(op.Client, op.Amount)); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		// Deposits stay allowed on locked accounts; withdrawals do not.
		if client.Locked && op.Amount.IsNegative() {
			return domain.ErrAccountLocked
		}
		available, err := domain.CheckedAdd(client.Available(), op.Amount)
		if err != nil {
			return err
		}
		if available.IsNegative() {
			return domain.ErrInsufficientFunds
		}
		total, err := domain.CheckedAdd(client.Total, op.Amount)
		if err != nil {
			return err
		}
		// Total can dip below available while a withdrawal is disputed,
		// so it gets its own sign check.
		if total.IsNegative() {
			return domain.ErrInsufficientFunds
		}
		client.Total = total
		if err := e.clients.Update(ctx, client); err != nil {
			return err
		}
	}

	return e.transactions.Insert(ctx, &domain.Transaction{
		Tx:     op.Tx,
		Client: op.Client,
		Amount: op.Amount,
		State:  domain.StateResolved,
	})
}

func (e *Engine) applyModifier(ctx context.Context, op domain.Modifier) error {
	rec, err := e.transactions.Get(ctx, op.Tx)
	if err != nil {
		return err
	}
	// A modifier claiming a different owner is a spoof attempt.
	if rec.Client != op.Client {
		return domain.ErrClientMismatch
	}
	// No transaction is ever created without its client, so this lookup
	// only fails on a broken store.
	client, err := e.clients.Get(ctx, rec.Client)
	if err != nil {
		return err
	}

	switch op.Target {
	case domain.StateDisputed:
		if rec.State != domain.StateResolved {
			return domain.ErrInvalidTransition
		}
		held, err := domain.CheckedAdd(client.Held, rec.Amount)
		if err != nil {
			return err
		}
		client.Held = held
	case domain.StateResolved:
		if rec.State != domain.StateDisputed {
			return domain.ErrInvalidTransition
		}
		held, err := domain.CheckedSub(client.Held, rec.Amount)
		if err != nil {
			return err
		}
		client.Held = held
	case domain.StateChargeback:
		if rec.State != domain.StateDisputed {
			return domain.ErrInvalidTransition
		}
		held, err := domain.CheckedSub(client.Held, rec.Amount)
		if err != nil {
			return err
		}
		total, err := domain.CheckedSub(client.Total, rec.Amount)
		if err != nil {
			return err
		}
		client.Held = held
		client.Total = total
		client.Locked = true
	default:
		return domain.ErrInvalidTransition
	}

	rec.State = op.Target
	if err := e.clients.Update(ctx, client); err != nil {
		return err
	}
	return e.transactions.Update(ctx, rec)
}
