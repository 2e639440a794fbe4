package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := GenerateJWT(secret, "household", time.Hour)
	require.NoError(t, err)

	sub, err := ParseJWT(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "household", sub)

	_, err = ParseJWT([]byte("other"), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWTRejects(t *testing.T) {
	secret := []byte("s3cret")

	expired, err := GenerateJWT(secret, "household", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(secret, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = ParseJWT(secret, noSubject)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseJWT(secret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
