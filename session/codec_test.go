package session

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	aSession, err := New([]byte(`{"token": "abc"}`))
	require.NoError(t, err)
	value, err := Encode(aSession)
	require.NoError(t, err)
	assert.Equal(t, "eyJ0b2tlbiI6ImFiYyJ9", value)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(`{"token":"abc"}`)), value)

	_, err = Encode(nil)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecode(t *testing.T) {
	var testCases = []struct {
		description string
		value       string
		expect      string
		expectErr   bool
	}{
		{description: "padded", value: "eyJ0b2tlbiI6ImFiYyJ9", expect: `{"token":"abc"}`},
		{description: "unpadded", value: base64.RawStdEncoding.EncodeToString([]byte(`{"id":1}`)), expect: `{"id":1}`},
		{description: "empty", value: " ", expectErr: true},
		{description: "not base64", value: "%%%", expectErr: true},
		{description: "not json", value: base64.StdEncoding.EncodeToString([]byte("token=abc")), expectErr: true},
	}

	for _, testCase := range testCases {
		actual, err := Decode(testCase.value)
		if testCase.expectErr {
			assert.ErrorIs(t, err, ErrMalformed, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual.String(), testCase.description)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	original, err := New([]byte(`{"token":"abc","user":{"name":"Łukasz"}}`))
	require.NoError(t, err)
	value, err := Encode(original)
	require.NoError(t, err)
	decoded, err := Decode(value)
	require.NoError(t, err)
	assert.True(t, original.Equal(decoded))
}
