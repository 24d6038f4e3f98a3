package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind is the side of a double-entry leg.
type TransactionKind string

const (
	KindDebit  TransactionKind = "DEBIT"
	KindCredit TransactionKind = "CREDIT"
)

func (k TransactionKind) Valid() bool {
	return k == KindDebit || k == KindCredit
}

// Transaction is one leg of a transfer. A committed transfer owns exactly one
// DEBIT and one CREDIT leg sharing the same operation id.
type Transaction struct {
	id          uuid.UUID
	operationID int32
	accountID   int32
	kind        TransactionKind
	amount      int64
	createdAt   time.Time
}

func NewTransaction(operationID, accountID int32, kind TransactionKind, amount int64) *Transaction {
	return &Transaction{
		id:          uuid.New(),
		operationID: operationID,
		accountID:   accountID,
		kind:        kind,
		amount:      amount,
		createdAt:   time.Now(),
	}
}

func ReconstructTransaction(
	id uuid.UUID,
	operationID, accountID int32,
	kind TransactionKind,
	amount int64,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:          id,
		operationID: operationID,
		accountID:   accountID,
		kind:        kind,
		amount:      amount,
		createdAt:   createdAt,
	}
}

func (t *Transaction) ID() uuid.UUID {
	return t.id
}

func (t *Transaction) OperationID() int32 {
	return t.operationID
}

func (t *Transaction) AccountID() int32 {
	return t.accountID
}

func (t *Transaction) Kind() TransactionKind {
	return t.kind
}

func (t *Transaction) Amount() int64 {
	return t.amount
}

func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

// SignedAmount is the leg's contribution to the account balance: negative for
// DEBIT, positive for CREDIT.
func (t *Transaction) SignedAmount() int64 {
	if t.kind == KindDebit {
		return -t.amount
	}
	return t.amount
}
