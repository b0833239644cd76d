package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/viant/authstore/session"
	"golang.org/x/oauth2"
)

var (
	// ErrNoSession is returned when a token is requested without a session.
	ErrNoSession = errors.New("no auth session")
	// ErrSessionExpired is returned when the session token carries a past expiry.
	ErrSessionExpired = errors.New("auth session expired")
)

// Token returns the session token as a bearer oauth2 token.
func (s *Store) Token() (*oauth2.Token, error) {
	aSession := s.Session()
	if aSession == nil {
		return nil, ErrNoSession
	}
	accessToken := aSession.Token(s.tokenField)
	if accessToken == "" {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, session.ErrNoToken)
	}
	if aSession.Expired(s.tokenField, time.Now()) {
		return nil, ErrSessionExpired
	}
	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		Expiry:      aSession.ExpiresAt(s.tokenField),
	}, nil
}

// TokenSource returns the store as an oauth2.TokenSource reading the current session.
func (s *Store) TokenSource() oauth2.TokenSource {
	return s
}

// HTTPClient returns a client authorizing every request with the current session token.
// The base transport is taken from an *http.Client stored under oauth2.HTTPClient in ctx.
func (s *Store) HTTPClient(ctx context.Context) *http.Client {
	base := http.DefaultTransport
	if client, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok && client != nil && client.Transport != nil {
		base = client.Transport
	}
	return &http.Client{Transport: &oauth2.Transport{Source: s, Base: base}}
}
