// Package sessionservice manages the business logic layer of sessions:
// login, the per-session logout countdown and session invalidation.
package sessionservice

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bankist/bankist/internal/domain"
	"github.com/bankist/bankist/pkg/configpkg"
	"github.com/bankist/bankist/pkg/schedpkg"
)

// Repo provides the data access interface needed by the session service layer.
type Repo interface {
	Find(username string) (domain.Account, error)
}

type entry struct {
	session   domain.Session
	countdown *Countdown
	cancel    schedpkg.CancelFunc
}

// Service facilitates session service layer logic. Sessions live only in its
// registry; an expired or logged-out session is gone entirely.
type Service struct {
	repo   Repo
	sched  schedpkg.Scheduler
	config configpkg.Config

	mu       sync.Mutex
	sessions map[uuid.UUID]*entry

	now func() time.Time
}

// New returns a session service with an empty registry.
func New(repo Repo, sched schedpkg.Scheduler, config configpkg.Config) *Service {
	return &Service{
		repo:     repo,
		sched:    sched,
		config:   config,
		sessions: make(map[uuid.UUID]*entry),
		now:      time.Now,
	}
}

func (s *Service) seconds() int {
	return int(s.config.SessionDuration / time.Second)
}

// Login authenticates the username/pin pair and, on success, registers a
// fresh session with a full countdown. A lookup miss and a pin mismatch are
// both normal rejections, not faults.
func (s *Service) Login(ctx context.Context, username string, pin int) (domain.Session, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.Find(username)
	if err != nil {
		l.Info().Str("username", username).Msg("login rejected: unknown username")
		return domain.Session{}, domain.Account{}, err
	}

	if account.Pin != pin {
		l.Info().Str("username", username).Msg("login rejected: wrong pin")
		return domain.Session{}, domain.Account{}, domain.ErrWrongPin
	}

	sess := domain.Session{
		ID:        uuid.New(),
		Username:  account.Username,
		CreatedAt: s.now(),
	}

	cd := NewCountdown(s.seconds())
	cd.Start()

	// Ticks fired before the registry insert below find no session and are
	// dropped, so scheduling first is safe.
	cancel := s.sched.Every(s.config.SessionTick, func() { s.tick(sess.ID) })

	s.mu.Lock()
	s.sessions[sess.ID] = &entry{session: sess, countdown: cd, cancel: cancel}
	s.mu.Unlock()

	l.Info().Str("username", username).Str("session_id", sess.ID.String()).Msg("login")

	return sess, account, nil
}

// tick advances one session's countdown and drops the session on expiry.
func (s *Service) tick(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return
	}

	e.countdown.Tick()

	if e.countdown.State() == Expired {
		delete(s.sessions, id)

		if e.cancel != nil {
			e.cancel()
		}
	}
}

// Get returns the session for the given token.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return e.session, nil
}

// Remaining returns the seconds left on the session's countdown.
func (s *Service) Remaining(ctx context.Context, id uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return 0, domain.ErrSessionNotFound
	}

	return e.countdown.Remaining(), nil
}

// Reset restarts the session's countdown at the full length. Every
// qualifying mutating action goes through here.
func (s *Service) Reset(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}

	e.countdown.Reset()

	return nil
}

// ResetByUsername restarts the countdown of every session of the given
// account. Used when a mutation is applied outside a request, such as a loan
// approval firing after its delay.
func (s *Service) ResetByUsername(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.sessions {
		if e.session.Username == username {
			e.countdown.Reset()
		}
	}
}

// Logout stops the countdown and removes the session.
func (s *Service) Logout(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}

	e.countdown.Stop()
	delete(s.sessions, id)

	if e.cancel != nil {
		e.cancel()
	}

	return nil
}

// InvalidateUsername drops every session referencing the given account.
// Called when the account is closed.
func (s *Service) InvalidateUsername(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.sessions {
		if e.session.Username == username {
			e.countdown.Stop()
			delete(s.sessions, id)

			if e.cancel != nil {
				e.cancel()
			}
		}
	}
}
