package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Xausdorf/ledger-core/internal/domain/entity"
	"github.com/Xausdorf/ledger-core/internal/domain/repository"
)

// AccountRepo keeps accounts by value. Callers always get and hand back
// copies, so nothing outside the repo aliases stored state.
type AccountRepo struct {
	mu       sync.RWMutex
	accounts map[int32]*entity.Account
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{accounts: make(map[int32]*entity.Account)}
}

func (r *AccountRepo) Create(_ context.Context, account *entity.Account) (bool, error) {
	if account == nil {
		return false, fmt.Errorf("create account: %w", entity.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID()]; ok {
		return false, nil
	}
	r.accounts[account.ID()] = account.Clone()
	return true, nil
}

func (r *AccountRepo) Update(_ context.Context, account *entity.Account) error {
	if account == nil {
		return fmt.Errorf("update account: %w", entity.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID()]; !ok {
		return fmt.Errorf("update account %d: %w", account.ID(), repository.ErrNotFound)
	}
	r.accounts[account.ID()] = account.Clone()
	return nil
}

func (r *AccountRepo) Get(_ context.Context, id int32) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return account.Clone(), nil
}

type legKey struct {
	operationID int32
	kind        entity.TransactionKind
}

// TransactionRepo holds at most one leg per (operation id, kind).
type TransactionRepo struct {
	mu   sync.RWMutex
	legs map[legKey]*entity.Transaction
}

func NewTransactionRepo() *TransactionRepo {
	return &TransactionRepo{legs: make(map[legKey]*entity.Transaction)}
}

func (r *TransactionRepo) Insert(_ context.Context, tx *entity.Transaction) (bool, error) {
	if tx == nil || !tx.Kind().Valid() {
		return false, fmt.Errorf("insert transaction: %w", entity.ErrInvalidArgument)
	}

	key := legKey{operationID: tx.OperationID(), kind: tx.Kind()}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.legs[key]; ok {
		return false, nil
	}
	r.legs[key] = tx
	return true, nil
}

func (r *TransactionRepo) Remove(_ context.Context, tx *entity.Transaction) (bool, error) {
	if tx == nil {
		return false, fmt.Errorf("remove transaction: %w", entity.ErrInvalidArgument)
	}

	key := legKey{operationID: tx.OperationID(), kind: tx.Kind()}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.legs[key]
	if !ok || stored.ID() != tx.ID() {
		return false, nil
	}
	delete(r.legs, key)
	return true, nil
}

func (r *TransactionRepo) List(_ context.Context, operationID int32) ([]*entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Transaction
	for _, kind := range []entity.TransactionKind{entity.KindDebit, entity.KindCredit} {
		if tx, ok := r.legs[legKey{operationID: operationID, kind: kind}]; ok {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *TransactionRepo) HasTransactions(ctx context.Context, operationID int32) (bool, error) {
	legs, err := r.List(ctx, operationID)
	if err != nil {
		return false, err
	}
	return len(legs) > 0, nil
}

var (
	_ repository.AccountRepository     = (*AccountRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
)
