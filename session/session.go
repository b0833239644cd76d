package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenField is the payload field holding the session token.
const DefaultTokenField = "token"

var (
	// ErrMalformed is returned when a payload or cookie value cannot be decoded.
	ErrMalformed = errors.New("malformed session")
	// ErrNoToken is returned when the payload does not carry a token.
	ErrNoToken = errors.New("session has no token")
)

var fallbackTokenFields = []string{"access_token", "accessToken"}

// Session holds the backend payload of an authenticated user.
type Session struct {
	payload json.RawMessage
}

// New creates a session from a JSON payload. The payload is stored compacted.
func New(payload []byte) (*Session, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("%w: invalid JSON payload", ErrMalformed)
	}
	buf := &bytes.Buffer{}
	if err := json.Compact(buf, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &Session{payload: buf.Bytes()}, nil
}

// Payload returns a copy of the compact JSON payload.
func (s *Session) Payload() json.RawMessage {
	if s == nil {
		return nil
	}
	ret := make(json.RawMessage, len(s.payload))
	copy(ret, s.payload)
	return ret
}

// Decode unmarshals the payload into target.
func (s *Session) Decode(target any) error {
	if s == nil {
		return fmt.Errorf("%w: nil session", ErrMalformed)
	}
	return json.Unmarshal(s.payload, target)
}

// Token returns the top-level string field holding the session token.
// When field is empty DefaultTokenField is used; access_token and accessToken are tried last.
func (s *Session) Token(field string) string {
	if s == nil {
		return ""
	}
	if field == "" {
		field = DefaultTokenField
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(s.payload, &fields); err != nil {
		return ""
	}
	for _, candidate := range append([]string{field}, fallbackTokenFields...) {
		raw, ok := fields[candidate]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err == nil && value != "" {
			return value
		}
	}
	return ""
}

// Claims parses the session token as a JWT without verifying its signature.
// The client never holds the signing key, so claims are informational only.
func (s *Session) Claims(field string) (*jwt.RegisteredClaims, error) {
	token := s.Token(field)
	if token == "" {
		return nil, ErrNoToken
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	return claims, nil
}

// ExpiresAt returns the token expiry, or zero time if unknown.
func (s *Session) ExpiresAt(field string) time.Time {
	claims, err := s.Claims(field)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// Expired reports whether the token carries an expiry before now.
// Opaque tokens never expire on the client side.
func (s *Session) Expired(field string, now time.Time) bool {
	expiry := s.ExpiresAt(field)
	return !expiry.IsZero() && !now.Before(expiry)
}

// Equal reports whether both sessions hold the same payload.
func (s *Session) Equal(other *Session) bool {
	if s == nil || other == nil {
		return s == other
	}
	return bytes.Equal(s.payload, other.payload)
}

func (s *Session) String() string {
	if s == nil {
		return ""
	}
	return string(s.payload)
}
