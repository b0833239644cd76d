package auth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/viant/authstore/api"
	"github.com/viant/authstore/cookie"
	"github.com/viant/authstore/session"
)

// DefaultSignupPath is the backend signup endpoint.
const DefaultSignupPath = "/auth/signup"

// Store holds the current auth session and keeps it in sync with a cookie.
type Store struct {
	client     *api.Client
	cookies    cookie.Store
	cookie     *cookie.Config
	signupPath string
	tokenField string
	logger     *log.Logger

	mux     sync.RWMutex
	session *session.Session
	version uint64

	// deliveryMux serializes observer calls; delivered is the last version observers saw.
	deliveryMux sync.Mutex
	delivered   uint64
	observerMux sync.Mutex
	observers   map[int]func(*session.Session)
	observerSeq int
}

// New creates a store and reads the session from the cookie.
// A malformed cookie is logged and leaves the store without a session.
func New(ctx context.Context, options ...Option) (*Store, error) {
	ret := &Store{
		signupPath: DefaultSignupPath,
		tokenField: session.DefaultTokenField,
		logger:     log.New(io.Discard, "", 0),
		observers:  map[int]func(*session.Session){},
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.client == nil {
		return nil, fmt.Errorf("api client was nil")
	}
	if ret.cookies == nil {
		ret.cookies = cookie.NewMemoryStore()
	}
	if ret.cookie == nil {
		ret.cookie = &cookie.Config{}
	}
	ret.cookie.Init()
	if err := ret.Load(ctx); err != nil {
		if !errors.Is(err, session.ErrMalformed) {
			return nil, err
		}
		ret.logger.Printf("ignoring auth cookie %v: %v", ret.cookie.Name, err)
	}
	return ret, nil
}

// Session returns the current session or nil.
func (s *Store) Session() *session.Session {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.session
}

// Signup posts data to the signup endpoint; the response becomes the current session
// and is saved to the cookie. Backend failures are returned as *api.Error.
// A successful response with an empty or null body carries no session: state is left untouched
// and both return values are nil.
func (s *Store) Signup(ctx context.Context, data any) (*session.Session, error) {
	s.logger.Printf("signup: POST %v", s.client.URL(s.signupPath))
	resp, err := s.client.Post(ctx, s.signupPath, data)
	if err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}
	if isEmptyBody(resp.Body) {
		s.logger.Printf("signup: empty response body (status %v), session unchanged", resp.StatusCode)
		return nil, nil
	}
	aSession, err := session.New(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("signup failed: invalid response: %w", err)
	}
	s.mux.Lock()
	s.session = aSession
	err = s.save(ctx)
	version := s.nextVersion()
	s.mux.Unlock()
	s.deliver(version, aSession)
	return aSession, err
}

func isEmptyBody(body []byte) bool {
	body = bytes.TrimSpace(body)
	return len(body) == 0 || bytes.Equal(body, []byte("null"))
}

// Save writes the current session to the cookie; it does nothing without a session.
func (s *Store) Save(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.save(ctx)
}

func (s *Store) save(ctx context.Context) error {
	if s.session == nil {
		return nil
	}
	value, err := session.Encode(s.session)
	if err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}
	if err = s.cookies.Set(ctx, s.cookie.Cookie(value)); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}
	return nil
}

// Load reads the session from the cookie; a missing cookie keeps the current state.
func (s *Store) Load(ctx context.Context) error {
	s.mux.Lock()
	value, ok, err := s.cookies.Get(ctx, s.cookie.Name)
	if err != nil {
		s.mux.Unlock()
		return fmt.Errorf("failed to read auth data: %w", err)
	}
	if !ok || value == "" {
		s.mux.Unlock()
		return nil
	}
	aSession, err := session.Decode(value)
	if err != nil {
		s.mux.Unlock()
		return fmt.Errorf("failed to read auth data: %w", err)
	}
	s.session = aSession
	version := s.nextVersion()
	s.mux.Unlock()
	s.deliver(version, aSession)
	return nil
}

// Clear drops the session and deletes the cookie.
func (s *Store) Clear(ctx context.Context) error {
	s.mux.Lock()
	s.session = nil
	err := s.cookies.Delete(ctx, s.cookie.Name)
	version := s.nextVersion()
	s.mux.Unlock()
	s.deliver(version, nil)
	if err != nil {
		return fmt.Errorf("failed to clear auth data: %w", err)
	}
	return nil
}

// Observe registers fn to be called after every session change; nil means no session.
// Calls are made one at a time; a change already superseded by a delivered one is skipped,
// so the last call always reports the current session. fn may read the store but must not
// call Signup, Load or Clear synchronously.
func (s *Store) Observe(fn func(*session.Session)) (cancel func()) {
	s.observerMux.Lock()
	defer s.observerMux.Unlock()
	if s.observers == nil {
		s.observers = map[int]func(*session.Session){}
	}
	s.observerSeq++
	id := s.observerSeq
	s.observers[id] = fn
	return func() {
		s.observerMux.Lock()
		defer s.observerMux.Unlock()
		delete(s.observers, id)
	}
}

// nextVersion numbers a session change; mux must be held.
func (s *Store) nextVersion() uint64 {
	s.version++
	return s.version
}

// deliver notifies observers unless a later change has already been delivered.
func (s *Store) deliver(version uint64, aSession *session.Session) {
	s.deliveryMux.Lock()
	defer s.deliveryMux.Unlock()
	if version <= s.delivered {
		return
	}
	s.delivered = version
	s.notify(aSession)
}

func (s *Store) notify(aSession *session.Session) {
	s.observerMux.Lock()
	observers := make([]func(*session.Session), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.observerMux.Unlock()
	for _, fn := range observers {
		fn(aSession)
	}
}
