// Package memory provides map-backed stores for a single-pass ledger run.
// The maps stand in for a durable store; the engine only sees the store
// interfaces, so swapping in a persistent implementation does not touch the
// state-machine logic.
package memory

import (
	"context"
	"sync"

	"github.com/iho/payflow/internal/domain"
)

// TransactionStore keeps transaction records in memory, keyed by id.
type TransactionStore struct {
	mu           sync.RWMutex
	transactions map[uint32]domain.Transaction
}

// NewTransactionStore creates an empty TransactionStore.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		transactions: make(map[uint32]domain.Transaction),
	}
}

// Get returns a copy of the record. Mutations to the copy are only
// committed by Update.
func (s *TransactionStore) Get(ctx context.Context, tx uint32) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[tx]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return &t, nil
}

// Insert stores a new record, rejecting an id that already exists.
func (s *TransactionStore) Insert(ctx context.Context, t *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[t.Tx]; ok {
		return domain.ErrDuplicateTransaction
	}
	s.transactions[t.Tx] = *t
	return nil
}

// Update commits a modified record over an existing one.
func (s *TransactionStore) Update(ctx context.Context, t *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[t.Tx]; !ok {
		return domain.ErrTransactionNotFound
	}
	s.transactions[t.Tx] = *t
	return nil
}

// ClientStore keeps client accounts in memory, keyed by id.
type ClientStore struct {
	mu      sync.RWMutex
	clients map[uint16]domain.Client
}

// NewClientStore creates an empty ClientStore.
func NewClientStore() *ClientStore {
	return &ClientStore{
		clients: make(map[uint16]domain.Client),
	}
}

// Get returns a copy of the account. Mutations to the copy are only
// committed by Update.
func (s *ClientStore) Get(ctx context.Context, id uint16) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return &c, nil
}

// Insert stores a new account.
func (s *ClientStore) Insert(ctx context.Context, c *domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[c.ID] = *c
	return nil
}

// Update commits a modified account over an existing one.
func (s *ClientStore) Update(ctx context.Context, c *domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[c.ID]; !ok {
		return domain.ErrClientNotFound
	}
	s.clients[c.ID] = *c
	return nil
}

// List returns copies of every stored account, in no particular order.
func (s *ClientStore) List(ctx context.Context) ([]*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Client, 0, len(s.clients))
	for _, c := range s.clients {
		c := c
		out = append(out, &c)
	}
	return out, nil
}
