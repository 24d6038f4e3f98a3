package account_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Xausdorf/ledger-core/internal/domain/entity"
	"github.com/Xausdorf/ledger-core/internal/domain/repository"
	"github.com/Xausdorf/ledger-core/internal/infrastructure/memory"
	"github.com/Xausdorf/ledger-core/internal/usecase/account"
	"github.com/Xausdorf/ledger-core/internal/usecase/transfer/mocks"
)

func TestAccountUseCase_Create_EmptyBalance(t *testing.T) {
	repo := memory.NewAccountRepo()
	uc := account.NewUseCase(repo, account.WithIDSequence(account.NewIDSequence()))

	acc, err := uc.Create(context.Background(), entity.CurrencyGBP, 0)
	require.NoError(t, err)

	assert.Equal(t, int32(1), acc.ID())
	assert.Equal(t, entity.CurrencyGBP, acc.Currency())
	assert.Zero(t, acc.Balance())
	assert.Zero(t, acc.Version())

	stored, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, acc.ID(), stored.ID())
	assert.Equal(t, acc.Balance(), stored.Balance())
	assert.Equal(t, acc.Currency(), stored.Currency())
}

func TestAccountUseCase_Create_PersistsViaStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAccountRepository(ctrl)
	uc := account.NewUseCase(repo, account.WithIDSequence(account.NewIDSequence()))

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, acc *entity.Account) (bool, error) {
			assert.Equal(t, int32(1), acc.ID())
			assert.Equal(t, entity.CurrencyEUR, acc.Currency())
			assert.Equal(t, int64(2000), acc.Balance())
			assert.Zero(t, acc.Version())
			return true, nil
		})

	acc, err := uc.Create(context.Background(), entity.CurrencyEUR, 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), acc.Balance())
}

func TestAccountUseCase_Create_InvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		currency entity.Currency
		balance  int64
	}{
		{name: "negative balance", currency: entity.CurrencyEUR, balance: -2000},
		{name: "missing currency", currency: "", balance: 2000},
		{name: "unknown currency", currency: "JPY", balance: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc := account.NewUseCase(mocks.NewMockAccountRepository(ctrl))

			_, err := uc.Create(context.Background(), tt.currency, tt.balance)
			require.ErrorIs(t, err, entity.ErrInvalidArgument)
		})
	}
}

func TestAccountUseCase_Create_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAccountRepository(ctrl)
	uc := account.NewUseCase(repo, account.WithIDSequence(account.NewIDSequence()))

	boom := errors.New("store unavailable")
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(false, boom)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := uc.Create(context.Background(), entity.CurrencyUSD, 1)
	require.ErrorIs(t, err, boom)

	_, err = uc.Create(context.Background(), entity.CurrencyUSD, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account 2 already exists")
}

func TestAccountUseCase_Create_ConcurrentIDsNeverCollide(t *testing.T) {
	repo := memory.NewAccountRepo()
	uc := account.NewUseCase(repo, account.WithIDSequence(account.NewIDSequence()))

	const workers = 64
	ids := make([]int32, workers)
	var wg sync.WaitGroup

	wg.Add(workers)
	for i := range workers {
		go func(idx int) {
			defer wg.Done()
			acc, err := uc.Create(context.Background(), entity.CurrencyUSD, int64(idx))
			if assert.NoError(t, err) {
				ids[idx] = acc.ID()
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int32]bool, workers)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		assert.GreaterOrEqual(t, id, int32(1))
		assert.LessOrEqual(t, id, int32(workers))
		seen[id] = true
	}
}

func TestAccountUseCase_Get_NotFound(t *testing.T) {
	uc := account.NewUseCase(memory.NewAccountRepo())

	_, err := uc.Get(context.Background(), 10)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAccountUseCase_Create_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	uc := account.NewUseCase(memory.NewAccountRepo(), account.WithLogger(zap.New(core)))

	_, err := uc.Create(context.Background(), entity.CurrencyRUB, 802)
	require.NoError(t, err)

	entries := logs.FilterMessage("account created").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "RUB", entries[0].ContextMap()["currency"])
}

func TestAccountUseCase_Create_DefaultSequenceIsSharedByInstances(t *testing.T) {
	repo := memory.NewAccountRepo()
	first := account.NewUseCase(repo)
	second := account.NewUseCase(repo)

	const perFactory = 32
	var wg sync.WaitGroup
	wg.Add(2 * perFactory)
	for range perFactory {
		for _, uc := range []*account.UseCase{first, second} {
			go func() {
				defer wg.Done()
				_, err := uc.Create(context.Background(), entity.CurrencyEUR, 0)
				assert.NoError(t, err, "factories in one process must not collide on ids")
			}()
		}
	}
	wg.Wait()
}
