package vending

import (
	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/store"
)

// Ledger applies balance mutations to the user store. Every mutation runs
// inside a store mutator, so check and write happen under one lock.
type Ledger struct {
	users *store.Users
}

// NewLedger returns a Ledger over the given user store.
func NewLedger(users *store.Users) *Ledger {
	return &Ledger{users: users}
}

// Deposit adds amountCents to the user's balance and returns the new
// balance. The only failure is an unknown user.
func (l *Ledger) Deposit(username string, amountCents int64) (int64, error) {
	u, err := l.users.Update(username, func(u *model.User) error {
		u.BalanceInCents += amountCents
		return nil
	})
	if err != nil {
		return 0, err
	}
	return u.BalanceInCents, nil
}

// Debit subtracts amountCents and returns the new balance. When the balance
// is short it fails with ErrInsufficientFunds and nothing changes.
func (l *Ledger) Debit(username string, amountCents int64) (int64, error) {
	u, err := l.users.Update(username, func(u *model.User) error {
		if amountCents > u.BalanceInCents {
			return model.ErrInsufficientFunds
		}
		u.BalanceInCents -= amountCents
		return nil
	})
	if err != nil {
		return 0, err
	}
	return u.BalanceInCents, nil
}

// Reset sets the user's balance to zero regardless of its prior value.
func (l *Ledger) Reset(username string) error {
	_, err := l.users.Update(username, func(u *model.User) error {
		u.BalanceInCents = 0
		return nil
	})
	return err
}

// Refund returns a previously debited amount. Used to unwind a debit when
// settlement cannot complete.
func (l *Ledger) Refund(username string, amountCents int64) error {
	_, err := l.Deposit(username, amountCents)
	return err
}
