package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Xausdorf/ledger-core/internal/delivery/grpc/ledgerv1"
	"github.com/Xausdorf/ledger-core/internal/domain/entity"
	"github.com/Xausdorf/ledger-core/internal/domain/repository"
	"github.com/Xausdorf/ledger-core/internal/usecase/account"
	"github.com/Xausdorf/ledger-core/internal/usecase/transfer"
)

type Handler struct {
	ledgerv1.UnimplementedLedgerServer

	accountUC  *account.UseCase
	transferUC *transfer.UseCase
}

func NewHandler(accountUC *account.UseCase, transferUC *transfer.UseCase) *Handler {
	return &Handler{
		accountUC:  accountUC,
		transferUC: transferUC,
	}
}

func (h *Handler) CreateAccount(ctx context.Context, req *ledgerv1.CreateAccountRequest) (*ledgerv1.CreateAccountResponse, error) {
	currency, ok := entity.ParseCurrency(req.Currency)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unsupported currency %q", req.Currency)
	}
	if req.Balance < 0 {
		return nil, status.Error(codes.InvalidArgument, "balance must not be negative")
	}

	acc, err := h.accountUC.Create(ctx, currency, req.Balance)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidArgument) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "create account: %v", err)
	}
	return &ledgerv1.CreateAccountResponse{Id: acc.ID()}, nil
}

func (h *Handler) GetAccount(ctx context.Context, req *ledgerv1.GetAccountRequest) (*ledgerv1.Account, error) {
	if req.Id <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id must be positive")
	}

	acc, err := h.accountUC.Get(ctx, req.Id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, status.Errorf(codes.NotFound, "Account by id=%d not found", req.Id)
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get account: %v", err)
	}

	return &ledgerv1.Account{
		Id:               acc.ID(),
		Currency:         acc.Currency().String(),
		Balance:          acc.Balance(),
		BalanceFormatted: acc.Currency().Format(acc.Balance()),
		Version:          acc.Version(),
	}, nil
}

func (h *Handler) Transfer(ctx context.Context, req *ledgerv1.TransferRequest) (*ledgerv1.TransferResponse, error) {
	switch {
	case req.AccountFrom <= 0:
		return nil, status.Error(codes.InvalidArgument, "account_from must be positive")
	case req.AccountTo <= 0:
		return nil, status.Error(codes.InvalidArgument, "account_to must be positive")
	case req.Amount <= 0:
		return nil, status.Error(codes.InvalidArgument, "amount must be positive")
	}

	err := h.transferUC.Execute(ctx, transfer.Request{
		OperationID:   req.OperationId,
		FromAccountID: req.AccountFrom,
		ToAccountID:   req.AccountTo,
		Amount:        req.Amount,
	})
	switch {
	case err == nil:
		return &ledgerv1.TransferResponse{Status: ledgerv1.TransferStatusOK}, nil
	case errors.Is(err, transfer.ErrTransferAlreadyProcessed):
		return &ledgerv1.TransferResponse{Status: ledgerv1.TransferStatusAlreadyProcessed}, nil
	default:
		return nil, transferStatus(err)
	}
}

func (h *Handler) ListLegs(ctx context.Context, req *ledgerv1.ListLegsRequest) (*ledgerv1.ListLegsResponse, error) {
	legs, err := h.transferUC.Legs(ctx, req.OperationId)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list legs: %v", err)
	}

	resp := &ledgerv1.ListLegsResponse{
		OperationId: req.OperationId,
		Legs:        make([]*ledgerv1.Leg, 0, len(legs)),
	}
	for _, leg := range legs {
		resp.Legs = append(resp.Legs, &ledgerv1.Leg{
			Id:        leg.ID().String(),
			AccountId: leg.AccountID(),
			Kind:      string(leg.Kind()),
			Amount:    leg.Amount(),
			CreatedAt: leg.CreatedAt().UTC().Format(time.RFC3339Nano),
		})
	}
	return resp, nil
}

// transferStatus carries the rejection kind as the status message.
func transferStatus(err error) error {
	switch {
	case errors.Is(err, transfer.ErrAccountFromNotFound):
		return status.Error(codes.NotFound, KindAccountFromNotFound)
	case errors.Is(err, transfer.ErrAccountToNotFound):
		return status.Error(codes.NotFound, KindAccountToNotFound)
	case errors.Is(err, transfer.ErrCurrencyMismatch):
		return status.Error(codes.FailedPrecondition, KindDifferentCurrencies)
	case errors.Is(err, transfer.ErrInsufficientBalance):
		return status.Error(codes.FailedPrecondition, KindInsufficientBalance)
	case errors.Is(err, transfer.ErrSameAccount):
		return status.Error(codes.FailedPrecondition, KindSameAccount)
	case errors.Is(err, transfer.ErrBalanceOverflow):
		return status.Error(codes.FailedPrecondition, KindBalanceOverflow)
	case errors.Is(err, entity.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Errorf(codes.Internal, "transfer failed: %v", err)
	}
}

const (
	KindAccountFromNotFound = "ACCOUNT_FROM_NOT_FOUND"
	KindAccountToNotFound   = "ACCOUNT_TO_NOT_FOUND"
	KindDifferentCurrencies = "DIFFERENT_ACCOUNT_CURRENCIES"
	KindInsufficientBalance = "INSUFFICIENT_BALANCE"
	KindSameAccount         = "SAME_ACCOUNT"
	KindBalanceOverflow     = "BALANCE_OVERFLOW"
)
