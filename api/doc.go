// Package api implements the JSON HTTP client the auth store talks to the backend with.
//
// Requests carry a JSON body, an Accept header and a generated X-Request-Id. Any non-2xx
// response is returned as *Error holding the status code, the raw body and the backend's
// message, so callers can report what the server actually said.
package api
