package utils_test

import (
	"testing"
	"time"

	"github.com/finfam/family_finance_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestGenerateAndParseJWT(t *testing.T) {
	userID := uuid.NewString()

	tokenString, err := utils.GenerateJWT(userID, testSecret, time.Hour, "ffa-test")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := utils.ParseAndValidateJWT(tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "ffa-test", claims.Issuer)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	tokenString, err := utils.GenerateJWT(uuid.NewString(), testSecret, time.Hour, "ffa-test")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(tokenString, "a-different-secret-entirely")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	tokenString, err := utils.GenerateJWT(uuid.NewString(), testSecret, -time.Minute, "ffa-test")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(tokenString, testSecret)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.Nil(t, claims)
}
