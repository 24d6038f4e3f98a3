package memory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/ledger-core/internal/domain/entity"
	"github.com/Xausdorf/ledger-core/internal/domain/repository"
	"github.com/Xausdorf/ledger-core/internal/infrastructure/memory"
)

func TestAccountRepo_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepo()

	_, err := repo.Get(ctx, 1)
	require.ErrorIs(t, err, repository.ErrNotFound)

	created, err := repo.Create(ctx, entity.NewAccount(1, entity.CurrencyUSD, 100))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Create(ctx, entity.NewAccount(1, entity.CurrencyUSD, 100))
	require.NoError(t, err)
	assert.False(t, created, "identical account must not win an occupied slot")

	acc, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, acc.Debit(40))

	stored, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), stored.Balance(), "mutating a copy must not leak into the store")
	assert.Equal(t, int64(0), stored.Version())

	require.NoError(t, repo.Update(ctx, acc))

	stored, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(60), stored.Balance())
	assert.Equal(t, int64(1), stored.Version())
	assert.Equal(t, entity.CurrencyUSD, stored.Currency())
}

func TestAccountRepo_UpdateUnknown(t *testing.T) {
	repo := memory.NewAccountRepo()

	err := repo.Update(context.Background(), entity.NewAccount(7, entity.CurrencyEUR, 0))
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAccountRepo_ConcurrentCreateSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepo()

	const workers = 32
	var wg sync.WaitGroup
	var wins atomic.Int32

	wg.Add(workers)
	for i := range workers {
		go func(balance int64) {
			defer wg.Done()
			ok, err := repo.Create(ctx, entity.NewAccount(42, entity.CurrencyGBP, balance))
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestTransactionRepo_InsertFirstWriterWins(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepo()

	has, err := repo.HasTransactions(ctx, 1)
	require.NoError(t, err)
	assert.False(t, has)

	ok, err := repo.Insert(ctx, entity.NewTransaction(1, 10, entity.KindDebit, 50))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Insert(ctx, entity.NewTransaction(1, 11, entity.KindDebit, 70))
	require.NoError(t, err)
	assert.False(t, ok, "second DEBIT for the same operation must lose")

	ok, err = repo.Insert(ctx, entity.NewTransaction(1, 20, entity.KindCredit, 50))
	require.NoError(t, err)
	assert.True(t, ok)

	legs, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, legs, 2)

	var sum int64
	for _, leg := range legs {
		sum += leg.SignedAmount()
	}
	assert.Zero(t, sum)

	has, err = repo.HasTransactions(ctx, 1)
	require.NoError(t, err)
	assert.True(t, has)

	legs, err = repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, legs)
}

func TestTransactionRepo_InsertRejectsUnknownKind(t *testing.T) {
	repo := memory.NewTransactionRepo()

	_, err := repo.Insert(context.Background(), entity.NewTransaction(1, 1, "REFUND", 5))
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestTransactionRepo_ConcurrentInsertSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepo()

	const workers = 32
	var wg sync.WaitGroup
	var wins atomic.Int32

	wg.Add(workers)
	for i := range workers {
		go func(accountID int32) {
			defer wg.Done()
			ok, err := repo.Insert(ctx, entity.NewTransaction(9, accountID, entity.KindCredit, 1))
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}(int32(i + 1))
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())

	legs, err := repo.List(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, legs, 1)
}

func TestTransactionRepo_RemoveOnlyOwnLeg(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepo()

	mine := entity.NewTransaction(3, 10, entity.KindDebit, 50)
	ok, err := repo.Insert(ctx, mine)
	require.NoError(t, err)
	require.True(t, ok)

	other := entity.NewTransaction(3, 11, entity.KindDebit, 50)
	removed, err := repo.Remove(ctx, other)
	require.NoError(t, err)
	assert.False(t, removed, "a leg with another id must not release the key")

	removed, err = repo.Remove(ctx, mine)
	require.NoError(t, err)
	assert.True(t, removed)

	has, err := repo.HasTransactions(ctx, 3)
	require.NoError(t, err)
	assert.False(t, has)

	ok, err = repo.Insert(ctx, other)
	require.NoError(t, err)
	assert.True(t, ok, "released key must be claimable again")
}
