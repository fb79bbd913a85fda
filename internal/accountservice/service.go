// Package accountservice manages the business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bankist/bankist/internal/domain"
)

// Repo provides the data access interface needed by the account service layer.
type Repo interface {
	Find(username string) (domain.Account, error)
	Remove(username string) error
}

// SessionInvalidator drops every session referencing an account.
type SessionInvalidator interface {
	InvalidateUsername(username string)
}

// Service facilitates account service layer logic.
type Service struct {
	repo     Repo
	sessions SessionInvalidator
}

// New returns an account service.
func New(repo Repo, sessions SessionInvalidator) *Service {
	return &Service{repo: repo, sessions: sessions}
}

// Get returns the account for the given username.
func (s *Service) Get(ctx context.Context, username string) (domain.Account, error) {
	return s.repo.Find(username)
}

// Close removes the account after an exact pin match and invalidates every
// session referencing it. Destructive and immediate; there is no soft delete.
func (s *Service) Close(ctx context.Context, username string, pin int) error {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.Find(username)
	if err != nil {
		return err
	}

	if account.Pin != pin {
		l.Info().Str("username", username).Msg("close rejected: wrong pin")
		return domain.ErrWrongPin
	}

	if err := s.repo.Remove(username); err != nil {
		return err
	}

	s.sessions.InvalidateUsername(username)

	l.Info().Str("username", username).Msg("account closed")

	return nil
}
