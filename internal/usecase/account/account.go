package account

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Xausdorf/ledger-core/internal/domain/entity"
	"github.com/Xausdorf/ledger-core/internal/domain/repository"
)

const tracerName = "github.com/Xausdorf/ledger-core/internal/usecase/account"

var ErrIDSpaceExhausted = errors.New("account id space exhausted")

// IDSequence hands out account ids starting at 1. Ids are never reused.
type IDSequence struct {
	last atomic.Int32
}

func NewIDSequence() *IDSequence {
	return &IDSequence{}
}

// Next returns the next id, or ErrIDSpaceExhausted once MaxInt32 was issued.
func (s *IDSequence) Next() (int32, error) {
	for {
		last := s.last.Load()
		if last == math.MaxInt32 {
			return 0, ErrIDSpaceExhausted
		}
		if s.last.CompareAndSwap(last, last+1) {
			return last + 1, nil
		}
	}
}

// processIDs is shared by every UseCase that is not given its own sequence.
var processIDs = NewIDSequence()

// UseCase opens accounts and looks them up.
type UseCase struct {
	accounts repository.AccountRepository
	ids      *IDSequence
	logger   *zap.Logger
	tracer   trace.Tracer
}

type Option func(*UseCase)

// WithIDSequence replaces the process-wide id sequence. Use it when the
// account store is not shared with the rest of the process.
func WithIDSequence(seq *IDSequence) Option {
	return func(uc *UseCase) { uc.ids = seq }
}

func WithLogger(logger *zap.Logger) Option {
	return func(uc *UseCase) { uc.logger = logger }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(uc *UseCase) { uc.tracer = tp.Tracer(tracerName) }
}

func NewUseCase(accounts repository.AccountRepository, opts ...Option) *UseCase {
	uc := &UseCase{
		accounts: accounts,
		ids:      processIDs,
		logger:   zap.NewNop(),
		tracer:   otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create opens an account. It does not deduplicate submissions: every call
// that passes validation allocates a fresh id.
func (uc *UseCase) Create(ctx context.Context, currency entity.Currency, balance int64) (_ *entity.Account, err error) {
	ctx, span := uc.tracer.Start(ctx, "account.Create", trace.WithAttributes(
		attribute.String("ledger.currency", currency.String()),
		attribute.Int64("ledger.balance", balance),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if !currency.Valid() {
		return nil, fmt.Errorf("currency %q: %w", currency, entity.ErrInvalidArgument)
	}
	if balance < 0 {
		return nil, fmt.Errorf("balance %d is negative: %w", balance, entity.ErrInvalidArgument)
	}

	id, err := uc.ids.Next()
	if err != nil {
		return nil, err
	}

	acc := entity.NewAccount(id, currency, balance)
	created, err := uc.accounts.Create(ctx, acc)
	if err != nil {
		return nil, fmt.Errorf("store account %d: %w", id, err)
	}
	if !created {
		return nil, fmt.Errorf("account %d already exists", id)
	}

	span.SetAttributes(attribute.Int("ledger.account_id", int(id)))
	uc.logger.Info("account created",
		zap.Int32("account_id", id),
		zap.String("currency", currency.String()),
		zap.Int64("balance", balance),
	)
	return acc, nil
}

// Get returns repository.ErrNotFound for unknown ids.
func (uc *UseCase) Get(ctx context.Context, id int32) (*entity.Account, error) {
	return uc.accounts.Get(ctx, id)
}
