package auth_test

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/authstore/api"
	"github.com/viant/authstore/auth"
	"github.com/viant/authstore/auth/mock"
	"github.com/viant/authstore/config"
	"github.com/viant/authstore/cookie"
	"github.com/viant/authstore/session"
)

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()
	server, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	defer server.Close()

	location := filepath.Join(t.TempDir(), "cookies.json")
	cfg := &config.Config{BaseURL: server.URL, Cookie: cookie.Config{Type: cookie.TypeJar, URL: location}}
	store, err := auth.NewFromConfig(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, store.Session())

	aSession, err := store.Signup(ctx, map[string]string{"email": "jan@example.com", "password": "secret"})
	require.NoError(t, err)
	token := aSession.Token("")
	require.NotEmpty(t, token)
	claims, err := server.Service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, server.Service.Users()[0].ID, claims.Subject)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "auth"`)

	restored, err := auth.NewFromConfig(ctx, &config.Config{BaseURL: server.URL, Cookie: cookie.Config{Type: cookie.TypeJar, URL: location}}, nil)
	require.NoError(t, err)
	require.NotNil(t, restored.Session())
	assert.True(t, aSession.Equal(restored.Session()))

	_, err = restored.Signup(ctx, map[string]string{"email": "jan@example.com", "password": "secret"})
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, 409))
	assert.Contains(t, err.Error(), "user already exists")
	assert.True(t, aSession.Equal(restored.Session()))
}

func TestNewFromConfig_Invalid(t *testing.T) {
	_, err := auth.NewFromConfig(context.Background(), &config.Config{}, nil)
	assert.Error(t, err)
}

func TestNewFromConfig_LoggerAndObserver(t *testing.T) {
	ctx := context.Background()
	server, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	defer server.Close()

	var output bytes.Buffer
	logger := log.New(&output, "", 0)
	var observed int
	cfg := &config.Config{BaseURL: server.URL}
	store, err := auth.NewFromConfig(ctx, cfg, logger, auth.WithObserver(func(*session.Session) { observed++ }))
	require.NoError(t, err)

	_, err = store.Signup(ctx, map[string]string{"email": "jan@example.com", "password": "secret"})
	require.NoError(t, err)
	assert.Equal(t, 1, observed)
	assert.Contains(t, output.String(), "signup: POST "+server.URL+"/auth/signup")
	assert.Contains(t, output.String(), "]: 200")
	assert.NotContains(t, output.String(), "secret")
}
