package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("operator", "s3cret", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)
	assert.Equal(t, "infradash", claims.Issuer)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("operator", "s3cret", time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other")
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("operator", "s3cret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "s3cret")
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := GenerateToken("operator", "", time.Minute)
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = ValidateToken("anything", "")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
