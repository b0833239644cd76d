package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/viant/afs/url"
)

// RequestIDHeader carries a per request identifier.
const RequestIDHeader = "X-Request-Id"

// Response represents a successful backend response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the response body into target
func (r *Response) Decode(target any) error {
	return json.Unmarshal(r.Body, target)
}

// Client sends JSON requests to the backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
	jar        http.CookieJar
	headers    http.Header
	logger     *log.Logger
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL resolves path against the base URL
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return c.baseURL
	}
	return url.Join(c.baseURL, path)
}

// Post sends body as JSON to path
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Do sends a request with an optional JSON body
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	URL := c.URL(path)
	request, err := http.NewRequestWithContext(ctx, method, URL, reader)
	if err != nil {
		return nil, err
	}
	for key, values := range c.headers {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")
	requestID := uuid.New().String()
	request.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Printf("%v %v [%v]: %v", method, URL, requestID, err)
		return nil, fmt.Errorf("failed to send %v %v: %w", method, URL, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v %v response: %w", method, URL, err)
	}
	c.logger.Printf("%v %v [%v]: %v", method, URL, requestID, resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(method, URL, resp.StatusCode, data)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// New creates a client for baseURL
func New(baseURL string, options ...Option) *Client {
	ret := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: http.Header{},
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{}
	}
	if ret.jar != nil {
		client := *ret.httpClient
		client.Jar = ret.jar
		ret.httpClient = &client
	}
	return ret
}
