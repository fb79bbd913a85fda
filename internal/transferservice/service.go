// Package transferservice manages the business logic layer of transfers and loans.
package transferservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankist/bankist/internal/domain"
	"github.com/bankist/bankist/internal/ledger"
	"github.com/bankist/bankist/pkg/schedpkg"
)

// loanEligibilityShare is the fraction of the requested amount some single
// past deposit must reach before a loan is granted.
var loanEligibilityShare = decimal.NewFromFloat(0.10)

// Repo provides the data access interface needed by the transfer service layer.
type Repo interface {
	Find(username string) (domain.Account, error)
	Append(username string, amount decimal.Decimal, at time.Time) error
	TransferPair(from, to string, amount decimal.Decimal, at time.Time) error
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo  Repo
	sched schedpkg.Scheduler
	delay time.Duration

	// OnLoanApplied is invoked after a delayed loan lands on the account,
	// so the caller can reset the owner's session countdown.
	OnLoanApplied func(username string)

	now func() time.Time
}

// New returns a transfer service. The delay is how long a granted loan
// request waits before the amount lands on the account.
func New(repo Repo, sched schedpkg.Scheduler, delay time.Duration) *Service {
	return &Service{
		repo:  repo,
		sched: sched,
		delay: delay,
		now:   time.Now,
	}
}

func parseAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if !d.IsPositive() {
		return decimal.Decimal{}, domain.ErrNegativeAmount
	}

	return d, nil
}

// Transfer validates the request and executes the atomic pair append.
// All preconditions are checked before anything is mutated, so a failed
// transfer leaves every account untouched.
func (s *Service) Transfer(ctx context.Context, fromUsername, toUsername, amount string) error {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Msg("transfer rejected")
		return err
	}

	if toUsername == fromUsername {
		l.Info().Str("username", fromUsername).Msg("transfer rejected: self transfer")
		return domain.ErrSelfTransfer
	}

	sender, err := s.repo.Find(fromUsername)
	if err != nil {
		return err
	}

	if _, err = s.repo.Find(toUsername); err != nil {
		l.Info().Str("to", toUsername).Msg("transfer rejected: unknown receiver")
		return err
	}

	if ledger.Balance(sender).LessThan(amountDecimal) {
		l.Info().Str("username", fromUsername).Msg("transfer rejected: insufficient balance")
		return domain.ErrInsufficientBalance
	}

	if err := s.repo.TransferPair(fromUsername, toUsername, amountDecimal, s.now()); err != nil {
		return err
	}

	l.Info().
		Str("from", fromUsername).
		Str("to", toUsername).
		Str("amount", amountDecimal.String()).
		Msg("transfer")

	return nil
}

// RequestLoan validates loan eligibility and, when granted, schedules the
// deposit to land after the configured approval delay. A rejected request
// schedules nothing.
//
// The scheduled effect targets the account captured at request time. If that
// account has left the store by the time the delay fires (closed meanwhile),
// the loan is dropped rather than resurrecting a removed account.
func (s *Service) RequestLoan(ctx context.Context, username, amount string) error {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := parseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Msg("loan rejected")
		return err
	}

	// Loans are granted in whole units.
	amountDecimal = amountDecimal.Floor()
	if !amountDecimal.IsPositive() {
		return domain.ErrNegativeAmount
	}

	account, err := s.repo.Find(username)
	if err != nil {
		return err
	}

	threshold := amountDecimal.Mul(loanEligibilityShare)
	if !ledger.HasDepositCovering(account, threshold) {
		l.Info().
			Str("username", username).
			Str("amount", amountDecimal.String()).
			Msg("loan rejected: no qualifying deposit")

		return domain.ErrLoanNotEligible
	}

	logger := l.With().Str("username", username).Str("amount", amountDecimal.String()).Logger()

	s.sched.After(s.delay, func() {
		if err := s.repo.Append(username, amountDecimal, s.now()); err != nil {
			logger.Info().Err(err).Msg("granted loan dropped")
			return
		}

		logger.Info().Msg("loan applied")

		if s.OnLoanApplied != nil {
			s.OnLoanApplied(username)
		}
	})

	logger.Info().Msg("loan granted")

	return nil
}
