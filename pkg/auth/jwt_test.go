package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("64f0c0ffee0000000000aaaa", "a@b.com")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c0ffee0000000000aaaa", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestValidateTokenTamperedSignature(t *testing.T) {
	token, err := GenerateToken("id", "a@b.com")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)

	assert.True(t, CheckPassword(hash, "supersecret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
