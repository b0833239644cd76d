package session

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode returns the cookie value for s: base64 of the compact JSON payload.
func Encode(s *Session) (string, error) {
	if s == nil || len(s.payload) == 0 {
		return "", fmt.Errorf("%w: nothing to encode", ErrMalformed)
	}
	return base64.StdEncoding.EncodeToString(s.payload), nil
}

// Decode parses a cookie value produced by Encode.
func Decode(value string) (*Session, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: empty cookie value", ErrMalformed)
	}
	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		//some cookie writers strip padding
		if data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(value, "=")); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	return New(data)
}
