package entity

import (
	"errors"
	"math"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrBalanceOverflow   = errors.New("balance would overflow")
)

// Account is a single-currency holding. Balance is kept in minor units.
//
// Values returned by an AccountStore are private copies: mutate them with
// Debit/Credit and hand them back through AccountStore.Update.
type Account struct {
	id       int32
	currency Currency
	balance  int64
	version  int64
}

func NewAccount(id int32, currency Currency, balance int64) *Account {
	return &Account{
		id:       id,
		currency: currency,
		balance:  balance,
	}
}

func ReconstructAccount(id int32, currency Currency, balance, version int64) *Account {
	return &Account{
		id:       id,
		currency: currency,
		balance:  balance,
		version:  version,
	}
}

func (a *Account) ID() int32 {
	return a.id
}

func (a *Account) Currency() Currency {
	return a.currency
}

func (a *Account) Balance() int64 {
	return a.balance
}

func (a *Account) Version() int64 {
	return a.version
}

// Clone returns an independent copy of the account.
func (a *Account) Clone() *Account {
	c := *a
	return &c
}

// Debit withdraws amount and bumps the version. The account is left untouched
// on error.
func (a *Account) Debit(amount int64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if a.balance < amount {
		return ErrInsufficientFunds
	}
	a.balance -= amount
	a.version++
	return nil
}

// CanCredit reports whether Credit(amount) would succeed.
func (a *Account) CanCredit(amount int64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if amount > math.MaxInt64-a.balance {
		return ErrBalanceOverflow
	}
	return nil
}

// Credit deposits amount and bumps the version. The account is left untouched
// on error.
func (a *Account) Credit(amount int64) error {
	if err := a.CanCredit(amount); err != nil {
		return err
	}
	a.balance += amount
	a.version++
	return nil
}
