// Package ledger provides the pure operations over one account's movements.
//
// Everything here is recomputed from scratch on each call; nothing is cached
// and nothing mutates the account.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankist/bankist/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// Balance is the sum of all movements.
func Balance(a domain.Account) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range a.Movements {
		sum = sum.Add(m)
	}

	return sum
}

// TotalDeposits is the sum of all positive movements.
func TotalDeposits(a domain.Account) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range a.Movements {
		if m.IsPositive() {
			sum = sum.Add(m)
		}
	}

	return sum
}

// TotalWithdrawals is the absolute sum of all negative movements.
func TotalWithdrawals(a domain.Account) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range a.Movements {
		if m.IsNegative() {
			sum = sum.Add(m)
		}
	}

	return sum.Abs()
}

// TotalInterest accrues the account rate on each deposit independently.
// Interest applies to the raw deposit amount and is never compounded.
func TotalInterest(a domain.Account) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range a.Movements {
		if m.IsPositive() {
			sum = sum.Add(m.Mul(a.InterestRate).Div(oneHundred))
		}
	}

	return sum
}

// HasDepositCovering reports whether any single past movement reaches the
// given threshold. Loan eligibility is defined on top of this.
func HasDepositCovering(a domain.Account, threshold decimal.Decimal) bool {
	for _, m := range a.Movements {
		if m.GreaterThanOrEqual(threshold) {
			return true
		}
	}

	return false
}

// Movement pairs one signed amount with its timestamp.
type Movement struct {
	Amount decimal.Decimal
	Date   time.Time
}

// Movements zips the account's parallel slices into display order,
// most recent first. With sorted set, entries are first stably sorted
// ascending by amount, matching the sorted statement view.
func Movements(a domain.Account, sorted bool) []Movement {
	n := len(a.Movements)

	chrono := make([]Movement, n)
	for i, m := range a.Movements {
		chrono[i] = Movement{Amount: m, Date: a.MovementDates[i]}
	}

	if sorted {
		sort.SliceStable(chrono, func(i, j int) bool {
			return chrono[i].Amount.LessThan(chrono[j].Amount)
		})
	}

	out := make([]Movement, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, chrono[i])
	}

	return out
}
