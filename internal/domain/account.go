// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrWrongPin indicates that the supplied pin does not match the account pin.
	ErrWrongPin = errors.New("wrong pin")
)

// Account holds one customer's ledger.
//
// Movements and MovementDates are parallel slices: the i-th date is the
// timestamp of the i-th movement. Every mutation appends to both, so their
// lengths stay equal for the lifetime of the account.
type Account struct {
	Owner         string            `json:"owner"`
	Username      string            `json:"username"`
	Movements     []decimal.Decimal `json:"movements"`
	MovementDates []time.Time       `json:"movement_dates"`
	InterestRate  decimal.Decimal   `json:"interest_rate"`
	Pin           int               `json:"-"`
	Currency      string            `json:"currency"`
	Locale        string            `json:"locale"`
}

// Append records one signed movement with its timestamp.
func (a *Account) Append(amount decimal.Decimal, at time.Time) {
	a.Movements = append(a.Movements, amount)
	a.MovementDates = append(a.MovementDates, at)
}
