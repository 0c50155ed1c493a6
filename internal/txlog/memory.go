package txlog

import (
	"context"
	"fmt"

	"github.com/venlock/payments-engine/internal/domain"
)

// MemoryStore is the default transaction log. Like the ledger it is
// written by a single goroutine and does no locking.
type MemoryStore struct {
	transactions map[uint32]domain.LoggedTransaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{transactions: make(map[uint32]domain.LoggedTransaction)}
}

func (s *MemoryStore) RecordDeposit(_ context.Context, tx domain.LoggedTransaction) error {
	if _, ok := s.transactions[tx.ID]; ok {
		return fmt.Errorf("RecordDeposit: tx %d: %w", tx.ID, domain.ErrDuplicateTransaction)
	}
	s.transactions[tx.ID] = tx
	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, txID uint32) (domain.LoggedTransaction, error) {
	tx, ok := s.transactions[txID]
	if !ok {
		return domain.LoggedTransaction{}, fmt.Errorf("Lookup: tx %d: %w", txID, domain.ErrUnknownTransaction)
	}
	return tx, nil
}

func (s *MemoryStore) SetState(_ context.Context, txID uint32, state domain.DisputeState) error {
	tx, ok := s.transactions[txID]
	if !ok {
		return fmt.Errorf("SetState: tx %d: %w", txID, domain.ErrUnknownTransaction)
	}
	if err := domain.ValidateTransition(tx.State, state); err != nil {
		return fmt.Errorf("SetState: tx %d: %w", txID, err)
	}

	tx.State = state
	s.transactions[txID] = tx
	return nil
}
