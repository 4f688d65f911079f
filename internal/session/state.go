package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/railtrace/railway-assets/internal/core/events"
)

// State is the single observable "current session" holder. Consumers read it
// through Current() or subscribe to session events on the bus; nothing else
// in the process holds session globals.
//
// Resolution attempts are fenced with monotonic tokens: Begin() hands out a
// token before any asynchronous work starts, and Set() discards completions
// whose token predates the latest Clear(). That makes the login/logout
// interleaving deterministic: a logout always beats any login that was
// already in flight when it ran.
type State struct {
	mu     sync.Mutex
	user   *User
	fence  uint64
	issued uint64

	bus    *events.EventBus
	logger *slog.Logger
}

func NewState(bus *events.EventBus, logger *slog.Logger) *State {
	return &State{
		bus:    bus,
		logger: logger,
	}
}

// Begin reserves a token for one resolution attempt. Call it before the
// attempt's first suspension point.
func (s *State) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Set installs user as the current session if the attempt identified by
// token has not been fenced off by a Clear. Reports whether it applied.
func (s *State) Set(ctx context.Context, token uint64, user *User, origin string) bool {
	s.mu.Lock()
	if token < s.fence {
		s.mu.Unlock()
		s.logger.Debug("stale session resolution discarded", "token", token, "fence", s.fence)
		return false
	}
	s.user = user
	s.mu.Unlock()

	if s.bus != nil && user != nil {
		s.bus.Publish(ctx, events.NewSessionChanged(user.ID, user.Email, user.Role.String(), origin))
	}
	return true
}

// Clear drops the current session and fences off every token issued so far,
// so in-flight resolutions cannot resurrect it.
func (s *State) Clear(ctx context.Context) {
	s.mu.Lock()
	hadUser := s.user != nil
	s.user = nil
	s.fence = s.issued + 1
	s.mu.Unlock()

	if s.bus != nil && hadUser {
		s.bus.Publish(ctx, events.NewSessionCleared())
	}
}

// Current returns the resolved user, or nil when no session is active. The
// returned value is a copy; mutations do not leak back.
func (s *State) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}
