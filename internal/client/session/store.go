// Package session holds who is logged in. A Store is created once at startup,
// rehydrated from the local database, and shared by the API client (as its
// token source), the router guard and the views.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcards/internal/client/api"
	"github.com/dmitrijs2005/gophcards/internal/client/models"
	sessionrepo "github.com/dmitrijs2005/gophcards/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophcards/internal/logging"
)

// ErrSessionInvalid means a stored token was rejected and has been discarded.
var ErrSessionInvalid = errors.New("stored session is no longer valid")

type State int

const (
	// StateAnonymous: no token, no user.
	StateAnonymous State = iota
	// StateUnverified: a stored token exists but could not be checked yet.
	StateUnverified
	// StateAuthenticated: token and user are known.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnverified:
		return "unverified"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Authenticator is the slice of the backend API the store needs.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type Store struct {
	auth Authenticator
	repo sessionrepo.Repository
	log  logging.Logger
	now  func() time.Time

	mu    sync.RWMutex
	token string
	user  *models.User
	state State

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

func NewStore(auth Authenticator, repo sessionrepo.Repository, log logging.Logger) *Store {
	return &Store{
		auth: auth,
		repo: repo,
		log:  log,
		now:  time.Now,
		subs: make(map[int]func(State)),
	}
}

// Login authenticates against the backend and, on success, persists the token
// and keeps the user in memory. Nothing is stored on failure.
func (s *Store) Login(ctx context.Context, username, password string) (*models.Session, error) {
	sess, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.log.Warn(ctx, "login failed", "username", username, "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	err = s.repo.Replace(ctx, map[string]string{
		sessionrepo.KeyToken:    sess.Token,
		sessionrepo.KeyUserID:   sess.User.ID,
		sessionrepo.KeyUsername: username,
	})
	if err != nil {
		s.log.Error(ctx, "failed to persist session", "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	user := sess.User
	s.set(sess.Token, &user, StateAuthenticated)
	s.log.Info(ctx, "logged in", "user_id", user.ID)

	return sess, nil
}

// Logout drops the stored token and the in-memory user. Calling it while
// logged out is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	err := s.forget(ctx)
	s.set("", nil, StateAnonymous)
	if err != nil {
		s.log.Error(ctx, "failed to clear stored token", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentUser reads the in-memory state only.
func (s *Store) CurrentUser() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateAuthenticated || s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

// Token is the bearer credential for API calls; it is also returned while
// the session is unverified.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LastUsername returns the username of the most recent successful login, if
// it is still stored.
func (s *Store) LastUsername(ctx context.Context) string {
	name, _, err := s.repo.Get(ctx, sessionrepo.KeyUsername)
	if err != nil {
		s.log.Warn(ctx, "failed to read last username", "error", err)
	}
	return name
}

// Subscribe registers fn to be called after every state change. The returned
// function removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) set(token string, user *models.User, state State) {
	s.mu.Lock()
	changed := s.state != state || s.token != token
	s.token = token
	s.user = user
	s.state = state
	s.mu.Unlock()

	if changed {
		s.notify(state)
	}
}

func (s *Store) notify(state State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

var _ api.TokenSource = (*Store)(nil)
