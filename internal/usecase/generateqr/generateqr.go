package generateqr

import (
	"context"
	"fmt"

	"github.com/Xausdorf/ledger-core/internal/domain/entity"
	"github.com/Xausdorf/ledger-core/internal/domain/qrcode"
)

type Request struct {
	AccountID int32
	Amount    int64
}

type AccountFinder interface {
	Get(ctx context.Context, id int32) (*entity.Account, error)
}

type UseCase struct {
	accounts  AccountFinder
	generator qrcode.Generator
}

func NewUseCase(accounts AccountFinder, generator qrcode.Generator) *UseCase {
	return &UseCase{accounts: accounts, generator: generator}
}

// Execute renders a payment request into the receiving account. Errors from
// the account lookup are returned unwrapped so callers can match
// repository.ErrNotFound.
func (uc *UseCase) Execute(ctx context.Context, req Request) ([]byte, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount %d must be positive: %w", req.Amount, entity.ErrInvalidArgument)
	}

	acc, err := uc.accounts.Get(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	return uc.generator.Generate(qrcode.QRData{
		ToAccount: acc.ID(),
		Amount:    req.Amount,
		Currency:  acc.Currency().String(),
	})
}
