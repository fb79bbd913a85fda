// Package formatpkg renders ledger values for display: locale-tagged currency
// strings, human-relative day labels, hour-of-day greetings and the session
// countdown. Ledger logic never depends on it; it is a display collaborator.
package formatpkg

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency renders an amount with the currency symbol for the given locale,
// e.g. ("1327.36", "pt-PT", "EUR") -> "€ 1 327,36".
// Unknown locales fall back to the undetermined language, unknown currency
// codes to a bare fixed-point rendering.
func Currency(amount decimal.Decimal, locale, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2)
	}

	p := message.NewPrinter(language.Make(locale))
	value, _ := amount.Round(2).Float64()

	return p.Sprintf("%v", currency.Symbol(unit.Amount(value)))
}

// DaysBetween returns the absolute day difference between two instants,
// rounded to the nearest whole day.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(math.Abs(b.Sub(a).Hours()) / 24))
}

// RelativeDayLabel renders a movement timestamp relative to now:
// "Today", "Yesterday", "N days ago" up to a week, then a locale date.
func RelativeDayLabel(ts, now time.Time, locale string) string {
	switch days := DaysBetween(ts, now); {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return Date(ts, locale)
	}
}

// Date renders a numeric date in the day/month order of the locale's region.
func Date(ts time.Time, locale string) string {
	region, _ := language.Make(locale).Region()
	if region.String() == "US" {
		return ts.Format("1/2/2006")
	}

	return ts.Format("2/1/2006")
}

// Timestamp renders a numeric date plus time of day, for the login banner.
func Timestamp(ts time.Time, locale string) string {
	return Date(ts, locale) + ", " + ts.Format("15:04")
}

// Greeting returns the salutation for the given hour of day.
func Greeting(hour int) string {
	switch {
	case hour >= 6 && hour <= 10:
		return "Good Morning"
	case hour >= 11 && hour <= 14:
		return "Good Day"
	case hour >= 15 && hour <= 18:
		return "Good Afternoon"
	case hour >= 19 && hour <= 22:
		return "Good Evening"
	default:
		return "Good Night"
	}
}

// Countdown renders remaining whole seconds as zero-padded MM:SS.
func Countdown(remaining int) string {
	if remaining < 0 {
		remaining = 0
	}

	return fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
}
