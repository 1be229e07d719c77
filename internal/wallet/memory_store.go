package wallet

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryStore is a concurrency-safe in-memory store useful for unit tests.
// Atomic holds the store mutex for the whole callback, which serializes all
// operations; good enough for tests, not a model of row-level locking. A
// callback error discards every write the callback made, matching the
// transactional semantics of the Postgres store.
type MemoryStore struct {
	mu       sync.Mutex
	balances map[uuid.UUID]decimal.Decimal
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{balances: make(map[uuid.UUID]decimal.Decimal)}
}

func (s *MemoryStore) Get(_ context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*memoryTxStore)(s).get(walletID)
}

func (s *MemoryStore) CreateIfAbsent(_ context.Context, walletID uuid.UUID, initial decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	(*memoryTxStore)(s).createIfAbsent(walletID, initial)
	return nil
}

func (s *MemoryStore) UpdateBalance(_ context.Context, walletID uuid.UUID, balance decimal.Decimal) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*memoryTxStore)(s).updateBalance(walletID, balance), nil
}

func (s *MemoryStore) Atomic(_ context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[uuid.UUID]decimal.Decimal, len(s.balances))
	for id, balance := range s.balances {
		snapshot[id] = balance
	}

	if err := fn((*memoryTxStore)(s)); err != nil {
		s.balances = snapshot
		return err
	}
	return nil
}

// memoryTxStore is the view handed to Atomic callbacks; the mutex is already
// held, so its methods touch the map directly.
type memoryTxStore MemoryStore

func (s *memoryTxStore) Get(_ context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	return s.get(walletID)
}

func (s *memoryTxStore) CreateIfAbsent(_ context.Context, walletID uuid.UUID, initial decimal.Decimal) error {
	s.createIfAbsent(walletID, initial)
	return nil
}

func (s *memoryTxStore) UpdateBalance(_ context.Context, walletID uuid.UUID, balance decimal.Decimal) (int64, error) {
	return s.updateBalance(walletID, balance), nil
}

func (s *memoryTxStore) Atomic(_ context.Context, fn func(Store) error) error {
	return fn(s)
}

func (s *memoryTxStore) get(walletID uuid.UUID) (decimal.Decimal, error) {
	balance, ok := s.balances[walletID]
	if !ok {
		return decimal.Decimal{}, ErrWalletNotFound
	}
	return balance, nil
}

func (s *memoryTxStore) createIfAbsent(walletID uuid.UUID, initial decimal.Decimal) {
	if _, exists := s.balances[walletID]; !exists {
		s.balances[walletID] = initial
	}
}

func (s *memoryTxStore) updateBalance(walletID uuid.UUID, balance decimal.Decimal) int64 {
	if _, exists := s.balances[walletID]; !exists {
		return 0
	}
	s.balances[walletID] = balance
	return 1
}
