package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

const maxPlainMessage = 512

// Error represents a non-2xx backend response
type Error struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Body       []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v %v: %d %v", e.Method, e.URL, e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *Error with the given status code
func IsStatus(err error, statusCode int) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == statusCode
}

// AsError unwraps err into *Error
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func newError(method, URL string, statusCode int, body []byte) *Error {
	return &Error{
		Method:     method,
		URL:        URL,
		StatusCode: statusCode,
		Message:    errorMessage(statusCode, body),
		Body:       body,
	}
}

// errorMessage extracts the backend message: message, error or detail JSON fields,
// a short plain text body, or the status text.
func errorMessage(statusCode int, body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			if text := messageText(payload[key]); text != "" {
				return text
			}
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) <= maxPlainMessage && utf8.ValidString(text) && !json.Valid(body) {
		return text
	}
	return http.StatusText(statusCode)
}

func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var texts []string
	if err := json.Unmarshal(raw, &texts); err == nil {
		return strings.Join(texts, "; ")
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}
