// Package session owns the authenticated user's token lifecycle: an
// explicit session object with controlled mutation and a subscription
// interface, instead of ad-hoc reads of shared storage.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/pkg/auth"
	"github.com/concealdc/webgate/pkg/metrics"
)

// refreshLeeway is how much remaining validity counts as "still good".
// A token expiring within the leeway is refreshed eagerly.
const refreshLeeway = 60 * time.Second

// State describes a session transition broadcast to subscribers.
type State string

const (
	StateLoggedIn  State = "logged_in"
	StateRefreshed State = "refreshed"
	StateLoggedOut State = "logged_out"
)

// Refresher is the slice of the upstream auth client the session needs.
type Refresher interface {
	RefreshToken(ctx context.Context, refreshToken string) (*model.TokenPair, error)
}

type Session struct {
	store   Store
	auth    Refresher
	metrics *metrics.Metrics
	now     func() time.Time

	mu     sync.Mutex
	nextID int
	subs   map[int]chan State
}

func New(store Store, auth Refresher, m *metrics.Metrics) *Session {
	return &Session{
		store:   store,
		auth:    auth,
		metrics: m,
		now:     time.Now,
		subs:    make(map[int]chan State),
	}
}

// EnsureValid is the gate in front of every authenticated call. It
// reports whether a usable access token is stored, refreshing it first
// when it expires within the leeway. Refreshes are serialized: concurrent
// callers block on the mutex and the loser finds the fresh pair already
// stored.
func (s *Session) EnsureValid(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair, err := s.store.Load()
	if err != nil || pair == nil || pair.AccessToken == "" || pair.RefreshToken == "" {
		return false
	}

	if exp, err := auth.Expiry(pair.AccessToken); err == nil && exp.After(s.now().Add(refreshLeeway)) {
		return true
	}

	fresh, err := s.auth.RefreshToken(ctx, pair.RefreshToken)
	if err != nil || fresh.AccessToken == "" {
		s.countRefresh("failure")
		s.store.Clear()
		s.broadcast(StateLoggedOut)
		return false
	}

	s.countRefresh("success")
	if err := s.store.Save(fresh); err != nil {
		s.store.Clear()
		s.broadcast(StateLoggedOut)
		return false
	}
	s.broadcast(StateRefreshed)
	return true
}

// AccessToken returns the stored access token, if any. Callers go through
// EnsureValid first.
func (s *Session) AccessToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair, err := s.store.Load()
	if err != nil || pair == nil || pair.AccessToken == "" {
		return "", false
	}
	return pair.AccessToken, true
}

// SetTokens installs a pair obtained from OTP verification.
func (s *Session) SetTokens(pair *model.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(pair); err != nil {
		return err
	}
	s.broadcast(StateLoggedIn)
	return nil
}

// Clear logs the session out.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return err
	}
	s.broadcast(StateLoggedOut)
	return nil
}

// Email returns the subject claim of the stored access token, the
// logged-in user's address.
func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair, err := s.store.Load()
	if err != nil || pair == nil {
		return ""
	}
	return auth.Subject(pair.AccessToken)
}

// Subscribe returns a channel of session transitions. Slow subscribers
// drop events rather than block the session.
func (s *Session) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan State, 8)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if ch, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *Session) broadcast(state State) {
	for _, ch := range s.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

func (s *Session) countRefresh(outcome string) {
	if s.metrics != nil {
		s.metrics.TokenRefreshes.WithLabelValues(outcome).Inc()
	}
}
