// Package accountstore manages the in-memory repository layer of accounts.
//
// The store is the only shared mutable resource in the system. It keeps
// accounts in insertion order and runs every mutation inside a single
// critical section, so the transfer double-append is atomic by construction.
package accountstore

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankist/bankist/internal/domain"
)

// DeriveUsername computes the account username from the owner display name:
// lowercase, split on whitespace, first rune of each word, concatenated.
func DeriveUsername(owner string) string {
	var sb strings.Builder

	for _, word := range strings.Fields(strings.ToLower(owner)) {
		sb.WriteRune([]rune(word)[0])
	}

	return sb.String()
}

// Store holds all accounts for the process lifetime.
type Store struct {
	mu       sync.Mutex
	accounts []*domain.Account
}

// New returns a store seeded with the given accounts, in order. Usernames
// are derived from each owner before any lookup can happen.
func New(accounts []domain.Account) *Store {
	s := &Store{accounts: make([]*domain.Account, 0, len(accounts))}

	for i := range accounts {
		acc := accounts[i]
		acc.Username = DeriveUsername(acc.Owner)
		s.accounts = append(s.accounts, &acc)
	}

	return s
}

// snapshot deep-copies an account so callers never alias internal slices.
func snapshot(a *domain.Account) domain.Account {
	cp := *a
	cp.Movements = make([]decimal.Decimal, len(a.Movements))
	copy(cp.Movements, a.Movements)
	cp.MovementDates = make([]time.Time, len(a.MovementDates))
	copy(cp.MovementDates, a.MovementDates)

	return cp
}

func (s *Store) find(username string) (*domain.Account, int) {
	for i, a := range s.accounts {
		if a.Username == username {
			return a, i
		}
	}

	return nil, -1
}

// Find returns a snapshot of the first account with the given username.
// A miss is a normal outcome signalled with domain.ErrAccountNotFound.
func (s *Store) Find(username string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, _ := s.find(username)
	if a == nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return snapshot(a), nil
}

// List returns snapshots of all accounts in insertion order.
func (s *Store) List() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, snapshot(a))
	}

	return out
}

// Len returns the number of accounts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.accounts)
}

// Append records one signed movement on the named account.
func (s *Store) Append(username string, amount decimal.Decimal, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, _ := s.find(username)
	if a == nil {
		return domain.ErrAccountNotFound
	}

	a.Append(amount, at)

	return nil
}

// TransferPair appends the withdrawal to the sender and the deposit to the
// receiver with the same timestamp, as one atomic pair. If either account is
// missing, nothing is mutated.
func (s *Store) TransferPair(from, to string, amount decimal.Decimal, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, _ := s.find(from)
	receiver, _ := s.find(to)

	if sender == nil || receiver == nil {
		return domain.ErrAccountNotFound
	}

	sender.Append(amount.Neg(), at)
	receiver.Append(amount, at)

	return nil
}

// Remove deletes the named account, preserving the order of the rest.
func (s *Store) Remove(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, i := s.find(username)
	if a == nil {
		return domain.ErrAccountNotFound
	}

	s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)

	return nil
}
