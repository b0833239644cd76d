package mock

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupService(t *testing.T) {
	server, err := NewHTTPTestServer(WithSigningKey([]byte("secret")))
	require.NoError(t, err)
	defer server.Close()

	var testCases = []struct {
		description string
		body        string
		expectCode  int
		expectToken bool
	}{
		{description: "created", body: `{"email":"Jan@Example.com","password":"p4ss"}`, expectCode: http.StatusOK, expectToken: true},
		{description: "duplicate", body: `{"email":"jan@example.com","password":"p4ss"}`, expectCode: http.StatusConflict},
		{description: "missing password", body: `{"email":"ola@example.com"}`, expectCode: http.StatusBadRequest},
		{description: "invalid body", body: `{`, expectCode: http.StatusBadRequest},
	}

	for _, testCase := range testCases {
		resp, err := http.Post(server.URL+"/auth/signup", "application/json", bytes.NewBufferString(testCase.body))
		require.NoError(t, err, testCase.description)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload), testCase.description)
		resp.Body.Close()
		assert.Equal(t, testCase.expectCode, resp.StatusCode, testCase.description)
		if !testCase.expectToken {
			assert.NotEmpty(t, payload["message"], testCase.description)
			continue
		}
		token, _ := payload["token"].(string)
		claims, err := server.Service.Verify(token)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, "authstore-mock", claims.Issuer)
		users := server.Service.Users()
		require.Len(t, users, 1)
		assert.Equal(t, users[0].ID, claims.Subject)
		assert.Equal(t, "jan@example.com", users[0].Email)
	}
}
