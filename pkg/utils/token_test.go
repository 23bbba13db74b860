package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "plantops/pkg/errors"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateToken(t *testing.T) {
	profileID := uuid.New()

	token, expiresAt, err := GenerateToken(profileID, "op@plant.example", "operator", testSecret, 24)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, profileID, claims.ProfileID)
	assert.Equal(t, "op@plant.example", claims.Email)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, "plantops", claims.Issuer)
}

func TestGenerateTokenDefaultExpiry(t *testing.T) {
	_, expiresAt, err := GenerateToken(uuid.New(), "a@b.example", "viewer", testSecret, 0)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateToken(uuid.New(), "a@b.example", "admin", testSecret, 1)
	require.NoError(t, err)

	_, err = ValidateToken(token, "another-secret")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	claims := Claims{
		ProfileID: uuid.New(),
		Email:     "a@b.example",
		Role:      "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "plantops",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	assert.ErrorIs(t, err, appErrors.ErrTokenExpired)
}

func TestValidateTokenRejectsUnsignedAlgorithm(t *testing.T) {
	claims := Claims{
		ProfileID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(unsigned, testSecret)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}
