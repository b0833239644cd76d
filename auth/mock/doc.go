// Package mock provides an in-process signup backend for tests and local development.
package mock
