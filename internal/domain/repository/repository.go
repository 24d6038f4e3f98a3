package repository

//go:generate mockgen -destination=../../usecase/transfer/mocks/mock_repository.go -package=mocks . AccountRepository,TransactionRepository

import (
	"context"
	"errors"

	"github.com/Xausdorf/ledger-core/internal/domain/entity"
)

var ErrNotFound = errors.New("not found")

// AccountRepository is the account store. Implementations must make every
// method atomic with respect to concurrent callers on the same id.
type AccountRepository interface {
	// Create stores account only if its id is free and reports whether this
	// call won the slot.
	Create(ctx context.Context, account *entity.Account) (bool, error)
	// Update overwrites an existing account. Returns ErrNotFound for unknown ids.
	Update(ctx context.Context, account *entity.Account) error
	// Get returns a copy of the stored account or ErrNotFound.
	Get(ctx context.Context, id int32) (*entity.Account, error)
}

// TransactionRepository is the ledger of transfer legs, keyed by
// (operation id, kind).
type TransactionRepository interface {
	// Insert stores the leg unless one with the same key exists and reports
	// whether this call performed the first insertion.
	Insert(ctx context.Context, tx *entity.Transaction) (bool, error)
	// Remove deletes the leg stored under tx's key only if it is tx itself
	// (same leg id) and reports whether it did. Used to release a claim when
	// a transfer cannot be completed.
	Remove(ctx context.Context, tx *entity.Transaction) (bool, error)
	List(ctx context.Context, operationID int32) ([]*entity.Transaction, error)
	HasTransactions(ctx context.Context, operationID int32) (bool, error)
}
