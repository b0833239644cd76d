// Package auth holds the client side authentication state.
//
// A Store posts signup credentials to the backend, keeps the returned session in memory
// and mirrors it into a cookie as base64 encoded JSON. The session is rehydrated from the
// cookie when the store is created. Interested parties register with Observe to be told
// about session changes, and the store doubles as an oauth2.TokenSource so the session
// token can authorize further API calls.
//
// Example:
//
//	store, _ := auth.New(ctx, auth.WithClient(api.New("http://localhost:3000")))
//	aSession, err := store.Signup(ctx, map[string]string{"email": email, "password": password})
package auth
