package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw7")
	require.NoError(t, err)
	assert.NotEqual(t, "pw7", hash)
	assert.True(t, h.Check(hash, "pw7"))
	assert.False(t, h.Check(hash, "pw8"))
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(99).cost)
	assert.Equal(t, 12, NewPasswordHasher(12).cost)
}

func TestPassphraseMatches(t *testing.T) {
	assert.True(t, PassphraseMatches("adminpass", "adminpass"))
	assert.False(t, PassphraseMatches("adminpass", "adminpass "))
	assert.False(t, PassphraseMatches("adminpass", "ADMINPASS"))
	assert.False(t, PassphraseMatches("", ""))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "s3cret", TokenExp: time.Hour, TokenIssuer: "classpoints"})

	token, expiresIn, err := svc.GenerateToken(12, "Student 12")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.StudentID)
	assert.Equal(t, "Student 12", claims.Name)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "s3cret", TokenExp: time.Minute, TokenIssuer: "classpoints"})
	issued := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, _, err := svc.GenerateToken(1, "Student 1")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, apperrors.ErrTokenExpired))
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	issuer := NewJWTService(JWTConfig{SecretKey: "one", TokenExp: time.Hour, TokenIssuer: "classpoints"})
	verifier := NewJWTService(JWTConfig{SecretKey: "two", TokenExp: time.Hour, TokenIssuer: "classpoints"})

	token, _, err := issuer.GenerateToken(1, "Student 1")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	tok, err = ExtractBearerToken("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	_, err = ExtractBearerToken("Basic xyz")
	assert.Error(t, err)
}
