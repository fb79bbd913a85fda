// Package seed is the input collaborator: it supplies the initial ordered
// collection of accounts, either the built-in demo set or a JSON file.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankist/bankist/internal/domain"
	"github.com/bankist/bankist/pkg/currencypkg"
)

// record mirrors domain.Account for seed files, with the pin included
// (the domain type never serializes it).
type record struct {
	Owner         string            `json:"owner"`
	Movements     []decimal.Decimal `json:"movements"`
	MovementDates []time.Time       `json:"movement_dates"`
	InterestRate  decimal.Decimal   `json:"interest_rate"`
	Pin           int               `json:"pin"`
	Currency      string            `json:"currency"`
	Locale        string            `json:"locale"`
}

func (r record) account() domain.Account {
	return domain.Account{
		Owner:         r.Owner,
		Movements:     r.Movements,
		MovementDates: r.MovementDates,
		InterestRate:  r.InterestRate,
		Pin:           r.Pin,
		Currency:      r.Currency,
		Locale:        r.Locale,
	}
}

// Load reads an ordered account list from a JSON seed file. With an empty
// path it returns the demo accounts.
func Load(path string) ([]domain.Account, error) {
	if path == "" {
		return Demo(time.Now()), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(records))

	for _, r := range records {
		if !currencypkg.IsSupportedCurrency(r.Currency) {
			return nil, fmt.Errorf("account %q: unsupported currency %q", r.Owner, r.Currency)
		}

		if len(r.Movements) != len(r.MovementDates) {
			return nil, fmt.Errorf("account %q: %d movements but %d dates",
				r.Owner, len(r.Movements), len(r.MovementDates))
		}

		accounts = append(accounts, r.account())
	}

	return accounts, nil
}

func daysAgo(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// Demo returns the two built-in demo accounts. Movement dates are laid out
// relative to now so the statement shows the whole day-label range.
func Demo(now time.Time) []domain.Account {
	amounts := func(values ...float64) []decimal.Decimal {
		out := make([]decimal.Decimal, 0, len(values))
		for _, v := range values {
			out = append(out, decimal.NewFromFloat(v))
		}

		return out
	}

	return []domain.Account{
		{
			Owner:     "Sofia Ramos Carvalho",
			Movements: amounts(200, 455.23, -306.5, 25000, -642.21, -133.9, 79.97, 1300),
			MovementDates: []time.Time{
				daysAgo(now, 600), daysAgo(now, 400), daysAgo(now, 90),
				daysAgo(now, 30), daysAgo(now, 8), daysAgo(now, 7),
				daysAgo(now, 1), now,
			},
			InterestRate: decimal.NewFromFloat(1.2),
			Pin:          1111,
			Currency:     "EUR",
			Locale:       "pt-PT",
		},
		{
			Owner:     "Jessica Davis",
			Movements: amounts(5000, 3400, -150, -790, -3210, -1000, 8500, -30),
			MovementDates: []time.Time{
				daysAgo(now, 500), daysAgo(now, 300), daysAgo(now, 120),
				daysAgo(now, 45), daysAgo(now, 10), daysAgo(now, 5),
				daysAgo(now, 2), daysAgo(now, 1),
			},
			InterestRate: decimal.NewFromFloat(1.5),
			Pin:          2222,
			Currency:     "USD",
			Locale:       "en-US",
		},
	}
}
