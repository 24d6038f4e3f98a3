package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Xausdorf/ledger-core/internal/domain/entity"
	"github.com/Xausdorf/ledger-core/internal/domain/event"
	"github.com/Xausdorf/ledger-core/internal/domain/repository"
)

const tracerName = "github.com/Xausdorf/ledger-core/internal/usecase/transfer"

var (
	ErrAccountFromNotFound      = errors.New("account from not found")
	ErrAccountToNotFound        = errors.New("account to not found")
	ErrCurrencyMismatch         = errors.New("accounts have different currencies")
	ErrSameAccount              = errors.New("from and to accounts must differ")
	ErrInsufficientBalance      = entity.ErrInsufficientFunds
	ErrBalanceOverflow          = entity.ErrBalanceOverflow
	ErrTransferAlreadyProcessed = errors.New("transfer already processed")
)

type Request struct {
	OperationID   int32
	FromAccountID int32
	ToAccountID   int32
	Amount        int64
}

type UseCase struct {
	accounts  repository.AccountRepository
	ledger    repository.TransactionRepository
	locks     *accountLocks
	publisher event.Publisher
	logger    *zap.Logger
	tracer    trace.Tracer
}

type Option func(*UseCase)

func WithLogger(logger *zap.Logger) Option {
	return func(uc *UseCase) { uc.logger = logger }
}

func WithPublisher(p event.Publisher) Option {
	return func(uc *UseCase) { uc.publisher = p }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(uc *UseCase) { uc.tracer = tp.Tracer(tracerName) }
}

func NewUseCase(
	accounts repository.AccountRepository,
	ledger repository.TransactionRepository,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		accounts:  accounts,
		ledger:    ledger,
		locks:     newAccountLocks(),
		publisher: event.NopPublisher{},
		logger:    zap.NewNop(),
		tracer:    otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute moves req.Amount from one account to another exactly once per
// operation id. Both account locks are taken in ascending id order, so
// transfers in opposite directions over the same pair cannot deadlock.
func (uc *UseCase) Execute(ctx context.Context, req Request) (err error) {
	ctx, span := uc.tracer.Start(ctx, "transfer.Execute", trace.WithAttributes(
		attribute.Int("ledger.operation_id", int(req.OperationID)),
		attribute.Int("ledger.from_account_id", int(req.FromAccountID)),
		attribute.Int("ledger.to_account_id", int(req.ToAccountID)),
		attribute.Int64("ledger.amount", req.Amount),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			uc.logger.Debug("transfer rejected", requestFields(req, zap.Error(err))...)
		}
		span.End()
	}()

	if req.Amount <= 0 {
		return fmt.Errorf("amount %d must be positive: %w", req.Amount, entity.ErrInvalidArgument)
	}

	from, err := uc.resolve(ctx, req.FromAccountID, ErrAccountFromNotFound)
	if err != nil {
		return err
	}
	to, err := uc.resolve(ctx, req.ToAccountID, ErrAccountToNotFound)
	if err != nil {
		return err
	}

	if from.Currency() != to.Currency() {
		return ErrCurrencyMismatch
	}
	if from.ID() == to.ID() {
		return ErrSameAccount
	}

	committed, err := uc.apply(ctx, req)
	if err != nil {
		return err
	}

	uc.logger.Info("transfer committed", requestFields(req)...)
	uc.publish(ctx, committed)
	return nil
}

// Legs returns the ledger entries recorded for an operation id.
func (uc *UseCase) Legs(ctx context.Context, operationID int32) ([]*entity.Transaction, error) {
	return uc.ledger.List(ctx, operationID)
}

// apply is the critical section. Accounts are re-read under the locks and
// mutated as private copies. The DEBIT leg claims the operation id, both
// accounts are persisted, and the CREDIT leg completes the commit. A failure
// after the claim restores the pre-images and releases the claim, so the
// operation can be retried.
func (uc *UseCase) apply(ctx context.Context, req Request) (event.TransferCommitted, error) {
	unlock := uc.locks.lockPair(req.FromAccountID, req.ToAccountID)
	defer unlock()

	from, err := uc.resolve(ctx, req.FromAccountID, ErrAccountFromNotFound)
	if err != nil {
		return event.TransferCommitted{}, err
	}
	to, err := uc.resolve(ctx, req.ToAccountID, ErrAccountToNotFound)
	if err != nil {
		return event.TransferCommitted{}, err
	}

	if req.Amount > from.Balance() {
		return event.TransferCommitted{}, ErrInsufficientBalance
	}
	if err := to.CanCredit(req.Amount); err != nil {
		return event.TransferCommitted{}, err
	}

	processed, err := uc.ledger.HasTransactions(ctx, req.OperationID)
	if err != nil {
		return event.TransferCommitted{}, fmt.Errorf("check operation %d: %w", req.OperationID, err)
	}
	if processed {
		return event.TransferCommitted{}, ErrTransferAlreadyProcessed
	}

	fromBefore, toBefore := from.Clone(), to.Clone()
	if err := from.Debit(req.Amount); err != nil {
		return event.TransferCommitted{}, err
	}
	if err := to.Credit(req.Amount); err != nil {
		return event.TransferCommitted{}, err
	}

	// The same operation id on a disjoint account pair does not contend on
	// these locks; the ledger's first-writer-wins on the DEBIT key decides.
	debit := entity.NewTransaction(req.OperationID, req.FromAccountID, entity.KindDebit, req.Amount)
	inserted, err := uc.ledger.Insert(ctx, debit)
	if err != nil {
		return event.TransferCommitted{}, fmt.Errorf("record debit leg: %w", err)
	}
	if !inserted {
		return event.TransferCommitted{}, ErrTransferAlreadyProcessed
	}

	if err := uc.persist(ctx, from, to, fromBefore); err != nil {
		return event.TransferCommitted{}, uc.release(ctx, debit, err)
	}

	inserted, err = uc.ledger.Insert(ctx, entity.NewTransaction(req.OperationID, req.ToAccountID, entity.KindCredit, req.Amount))
	if err == nil && !inserted {
		err = fmt.Errorf("credit leg of operation %d already recorded", req.OperationID)
	}
	if err != nil {
		err = uc.restore(ctx, fmt.Errorf("record credit leg: %w", err), fromBefore, toBefore)
		return event.TransferCommitted{}, uc.release(ctx, debit, err)
	}

	return event.TransferCommitted{
		OperationID:   req.OperationID,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Currency:      from.Currency().String(),
		CommittedAt:   time.Now().UTC(),
	}, nil
}

// persist writes both accounts. When the second write fails the first one is
// put back from its pre-image.
func (uc *UseCase) persist(ctx context.Context, from, to, fromBefore *entity.Account) error {
	if err := uc.accounts.Update(ctx, from); err != nil {
		return fmt.Errorf("update account %d: %w", from.ID(), err)
	}
	if err := uc.accounts.Update(ctx, to); err != nil {
		return uc.restore(ctx, fmt.Errorf("update account %d: %w", to.ID(), err), fromBefore)
	}
	return nil
}

// restore writes pre-images back. Restore failures are joined onto cause.
func (uc *UseCase) restore(ctx context.Context, cause error, before ...*entity.Account) error {
	ctx = context.WithoutCancel(ctx)
	for _, acc := range before {
		if err := uc.accounts.Update(ctx, acc); err != nil {
			uc.logger.Error("restore account failed", zap.Int32("account_id", acc.ID()), zap.Error(err))
			cause = errors.Join(cause, fmt.Errorf("restore account %d: %w", acc.ID(), err))
		}
	}
	return cause
}

// release drops the DEBIT claim so a retry of the operation can commit.
func (uc *UseCase) release(ctx context.Context, debit *entity.Transaction, cause error) error {
	if _, err := uc.ledger.Remove(context.WithoutCancel(ctx), debit); err != nil {
		uc.logger.Error("release operation failed", zap.Int32("operation_id", debit.OperationID()), zap.Error(err))
		return errors.Join(cause, fmt.Errorf("release operation %d: %w", debit.OperationID(), err))
	}
	return cause
}

func (uc *UseCase) resolve(ctx context.Context, id int32, notFound error) (*entity.Account, error) {
	acc, err := uc.accounts.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}
	return acc, nil
}

func (uc *UseCase) publish(ctx context.Context, e event.TransferCommitted) {
	if err := uc.publisher.PublishTransferCommitted(ctx, e); err != nil {
		uc.logger.Warn("publish transfer event failed",
			zap.Int32("operation_id", e.OperationID),
			zap.Error(err),
		)
	}
}

func requestFields(req Request, extra ...zap.Field) []zap.Field {
	return append([]zap.Field{
		zap.Int32("operation_id", req.OperationID),
		zap.Int32("from_account_id", req.FromAccountID),
		zap.Int32("to_account_id", req.ToAccountID),
		zap.Int64("amount", req.Amount),
	}, extra...)
}
