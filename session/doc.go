// Package session defines the authenticated session payload held by the auth store
// and the cookie codec used to persist it.
//
// The payload is whatever the backend returned on signup. It is kept as raw JSON and
// only interpreted on demand, e.g. to extract the bearer token or its JWT claims.
// A persisted cookie value is the standard base64 encoding of the compact JSON payload.
package session
