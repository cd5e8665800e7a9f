package engine

import (
	"context"

	"github.com/iho/payflow/internal/domain"
)

// TransactionStore defines data access for transaction records. Get returns
// domain.ErrTransactionNotFound for an unknown id. Implementations must
// hand out copies: a record obtained from Get is only committed back by
// Update.
type TransactionStore interface {
	Get(ctx context.Context, tx uint32) (*domain.Transaction, error)
	Insert(ctx context.Context, t *domain.Transaction) error
	Update(ctx context.Context, t *domain.Transaction) error
}

// ClientStore defines data access for client accounts, with the same
// copy-out contract as TransactionStore. Get returns
// domain.ErrClientNotFound for an unknown id.
type ClientStore interface {
	Get(ctx context.Context, id uint16) (*domain.Client, error)
	Insert(ctx context.Context, c *domain.Client) error
	Update(ctx context.Context, c *domain.Client) error
	List(ctx context.Context) ([]*domain.Client, error)
}
