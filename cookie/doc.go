// Package cookie provides the cookie slot the auth store persists sessions into.
//
// A Store reads and writes named cookies. Three backends are available:
//   - memory: process local slots, useful for tests and short lived tools
//   - jar: an http.CookieJar persisted to any afs URL (local file, mem, cloud storage);
//     the same jar can be attached to an HTTP client so cookies travel with requests
//   - redis: a shared slot keyed by cookie name
//
// Use New to build a Store from Config.
package cookie
