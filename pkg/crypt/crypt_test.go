package crypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	token, err := Encrypt("hello world")
	require.NoError(t, err)
	assert.NotEqual(t, "hello world", token)

	plain, err := Decrypt(token)
	require.NoError(t, err)
	assert.Equal(t, "hello world", plain)
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	a, err := Encrypt("same input")
	require.NoError(t, err)
	b, err := Encrypt("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptGarbage(t *testing.T) {
	_, err := Decrypt("not-a-token")
	assert.Error(t, err)
}

func TestDecryptTampered(t *testing.T) {
	token, err := Encrypt("payload")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = Decrypt(tampered)
	assert.Error(t, err)
}

func TestEncryptJSONRoundTrip(t *testing.T) {
	type claim struct {
		Email   string `json:"email"`
		Expires int64  `json:"expires"`
	}

	token, err := EncryptJSON(claim{Email: "a@b.com", Expires: 123})
	require.NoError(t, err)

	var out claim
	require.NoError(t, DecryptJSON(token, &out))
	assert.Equal(t, "a@b.com", out.Email)
	assert.Equal(t, int64(123), out.Expires)
}
