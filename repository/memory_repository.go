package repository

import (
	"context"
	"sync"

	"go-ledger-api/model"

	"github.com/shopspring/decimal"
)

// MemoryAccountRepository implements IAccountRepository in process memory.
// A single mutex serializes all mutations, which satisfies the same atomic
// delta contract the Postgres store gets from row-level locking. Useful for
// tests and for running the service without a database.
type MemoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]decimal.Decimal
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[string]decimal.Decimal)}
}

func (r *MemoryAccountRepository) Create(ctx context.Context, id string, initialBalance decimal.Decimal) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; ok {
		return nil, ErrAccountExists
	}
	r.accounts[id] = initialBalance
	return &model.Account{ID: id, Balance: initialBalance}, nil
}

func (r *MemoryAccountRepository) Get(ctx context.Context, id string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	balance, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &model.Account{ID: id, Balance: balance}, nil
}

func (r *MemoryAccountRepository) ApplyDelta(ctx context.Context, id string, delta decimal.Decimal) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	balance, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	newBalance := balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, ErrInsufficientFunds
	}
	r.accounts[id] = newBalance
	return &model.Account{ID: id, Balance: newBalance}, nil
}
