package event

import (
	"context"
	"time"
)

// TransferCommitted is emitted once per operation id after both legs and
// both account updates are persisted.
type TransferCommitted struct {
	OperationID   int32     `json:"operation_id"`
	FromAccountID int32     `json:"from_account_id"`
	ToAccountID   int32     `json:"to_account_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	CommittedAt   time.Time `json:"committed_at"`
}

//go:generate mockgen -destination=../../usecase/transfer/mocks/mock_publisher.go -package=mocks . Publisher

type Publisher interface {
	PublishTransferCommitted(ctx context.Context, e TransferCommitted) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishTransferCommitted(context.Context, TransferCommitted) error {
	return nil
}
