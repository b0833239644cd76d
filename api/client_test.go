package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Post(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/signup", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "web", r.Header.Get("X-Client"))
		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err)
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &received)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc"}`))
	}))
	defer server.Close()

	client := New(server.URL+"/", WithHeader("X-Client", "web"))
	resp, err := client.Post(context.Background(), "/auth/signup", map[string]string{"email": "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"token":"abc"}`, string(resp.Body))
	assert.Equal(t, "a@b.c", received["email"])

	var payload struct{ Token string }
	require.NoError(t, resp.Decode(&payload))
	assert.Equal(t, "abc", payload.Token)
}

func TestClient_URL(t *testing.T) {
	client := New("http://localhost:3000/api/")
	assert.Equal(t, "http://localhost:3000/api", client.BaseURL())
	assert.Equal(t, "http://localhost:3000/api/auth/signup", client.URL("/auth/signup"))
	assert.Equal(t, "http://localhost:3000/api/auth/signup", client.URL("auth/signup"))
	assert.Equal(t, "https://other/x", client.URL("https://other/x"))
	assert.Equal(t, "http://localhost:3000/api", client.URL(""))
}

func TestClient_Error(t *testing.T) {
	var testCases = []struct {
		description string
		status      int
		body        string
		expect      string
	}{
		{description: "message field", status: http.StatusConflict, body: `{"message":"user already exists"}`, expect: "user already exists"},
		{description: "message list", status: http.StatusBadRequest, body: `{"message":["email must be an email","password is too short"],"error":"Bad Request"}`, expect: "email must be an email; password is too short"},
		{description: "error field", status: http.StatusUnauthorized, body: `{"error":"invalid credentials"}`, expect: "invalid credentials"},
		{description: "nested error", status: http.StatusUnprocessableEntity, body: `{"error":{"message":"weak password"}}`, expect: "weak password"},
		{description: "detail field", status: http.StatusBadRequest, body: `{"detail":"bad input"}`, expect: "bad input"},
		{description: "plain text", status: http.StatusBadGateway, body: "upstream unavailable\n", expect: "upstream unavailable"},
		{description: "empty body", status: http.StatusInternalServerError, body: "", expect: "Internal Server Error"},
		{description: "unrelated json", status: http.StatusForbidden, body: `{"code":7}`, expect: "Forbidden"},
	}

	for _, testCase := range testCases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(testCase.status)
			_, _ = w.Write([]byte(testCase.body))
		}))
		_, err := New(server.URL).Post(context.Background(), "/auth/signup", map[string]string{})
		server.Close()

		require.Error(t, err, testCase.description)
		apiErr, ok := AsError(err)
		require.True(t, ok, testCase.description)
		assert.Equal(t, testCase.status, apiErr.StatusCode, testCase.description)
		assert.Equal(t, testCase.expect, apiErr.Message, testCase.description)
		assert.Equal(t, testCase.body, string(apiErr.Body), testCase.description)
		assert.True(t, IsStatus(err, testCase.status), testCase.description)
		assert.Contains(t, err.Error(), testCase.expect, testCase.description)
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	URL := server.URL
	server.Close()

	_, err := New(URL).Post(context.Background(), "/auth/signup", nil)
	require.Error(t, err)
	_, ok := AsError(err)
	assert.False(t, ok)
}

func TestClient_CookieJar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if aCookie, err := r.Cookie("auth"); err == nil {
			_, _ = w.Write([]byte(`{"cookie":"` + aCookie.Value + `"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "auth", Value: "v1", Path: "/"})
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	httpClient := &http.Client{}
	client := New(server.URL, WithHTTPClient(httpClient), WithCookieJar(jar))
	assert.Nil(t, httpClient.Jar)

	_, err = client.Post(context.Background(), "/", nil)
	require.NoError(t, err)
	resp, err := client.Post(context.Background(), "/", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"cookie":"v1"}`, string(resp.Body))
}
