package api

import (
	"log"
	"net/http"
)

// Option represents a client option
type Option func(c *Client)

// WithHTTPClient sets the http client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithCookieJar attaches jar so cookies travel with requests
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// WithLogger sets logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
