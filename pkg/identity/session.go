// Package identity keeps the signed-in user of a client and persists it.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"foodly/pkg/kv"

	"go.uber.org/zap"
)

// Key is where the identity record is stored.
const Key = "foodly_user"

var ErrNotSignedIn = errors.New("not signed in")

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token,omitempty"`
}

// Provider is the identity service behind Login and Signup.
type Provider interface {
	Login(ctx context.Context, email, password string) (User, error)
	Signup(ctx context.Context, name, email, password string) (User, error)
}

// Session holds at most one user. Logout runs the registered hooks after
// the record is removed.
type Session struct {
	mu       sync.Mutex
	store    kv.Store
	provider Provider
	log      *zap.Logger
	user     *User
	onLogout []func(ctx context.Context) error
}

// Open rehydrates the session. A missing or malformed record means nobody
// is signed in.
func Open(ctx context.Context, store kv.Store, provider Provider, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{store: store, provider: provider, log: log}

	raw, ok, err := store.Get(ctx, Key)
	switch {
	case err != nil:
		log.Warn("identity load failed", zap.Error(err))
	case ok:
		var u User
		if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
			log.Warn("identity record malformed, ignoring", zap.Error(err))
			break
		}
		s.user = &u
	}
	return s
}

// OnLogout registers fn to run on every Logout.
func (s *Session) OnLogout(fn func(ctx context.Context) error) {
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

func (s *Session) Current() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Session) SignedIn() bool {
	_, ok := s.Current()
	return ok
}

// Require returns the current user or ErrNotSignedIn.
func (s *Session) Require() (User, error) {
	u, ok := s.Current()
	if !ok {
		return User{}, ErrNotSignedIn
	}
	return u, nil
}

func (s *Session) Login(ctx context.Context, email, password string) (User, error) {
	u, err := s.provider.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	return u, s.remember(ctx, u)
}

func (s *Session) Signup(ctx context.Context, name, email, password string) (User, error) {
	u, err := s.provider.Signup(ctx, name, email, password)
	if err != nil {
		return User{}, err
	}
	return u, s.remember(ctx, u)
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	hooks := append([]func(context.Context) error(nil), s.onLogout...)
	s.mu.Unlock()

	errs := []error{}
	if err := s.store.Remove(ctx, Key); err != nil {
		errs = append(errs, err)
	}
	for _, fn := range hooks {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Session) remember(ctx context.Context, u User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("identity: encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	if err := s.store.Set(ctx, Key, string(b)); err != nil {
		return fmt.Errorf("identity: save: %w", err)
	}
	return nil
}
