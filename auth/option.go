package auth

import (
	"log"

	"github.com/viant/authstore/api"
	"github.com/viant/authstore/cookie"
	"github.com/viant/authstore/session"
)

// Option represents a store option
type Option func(s *Store)

// WithClient sets the backend API client
func WithClient(client *api.Client) Option {
	return func(s *Store) {
		s.client = client
	}
}

// WithCookieStore sets the cookie store the session is persisted into
func WithCookieStore(store cookie.Store) Option {
	return func(s *Store) {
		s.cookies = store
	}
}

// WithCookieConfig sets the cookie name and attributes
func WithCookieConfig(cfg *cookie.Config) Option {
	return func(s *Store) {
		s.cookie = cfg
	}
}

// WithSignupPath overrides the signup endpoint path
func WithSignupPath(path string) Option {
	return func(s *Store) {
		s.signupPath = path
	}
}

// WithTokenField sets the payload field holding the session token
func WithTokenField(field string) Option {
	return func(s *Store) {
		s.tokenField = field
	}
}

// WithLogger sets logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithObserver registers an observer before the cookie is read
func WithObserver(fn func(*session.Session)) Option {
	return func(s *Store) {
		s.Observe(fn)
	}
}
