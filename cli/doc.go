// Package cli implements the authstore command line: sign up against a backend, inspect
// or clear the stored session, print its bearer token, or run a local mock backend.
package cli
