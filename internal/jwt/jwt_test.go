package jwt

import (
	"errors"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testTable = "3c1a2d4e-0000-4000-8000-000000000001"

func newTestSigner(t *testing.T) *Signer {
	s, err := NewSigner("test-secret", "tienlen-test")
	assert.NoError(t, err)
	return s
}

func TestNewSigner(t *testing.T) {
	s, err := NewSigner("", "issuer")
	assert.Nil(t, s)
	assert.EqualError(t, err, "jwt secret cannot be empty")
}

func TestSignAndValidatePlayerID(t *testing.T) {
	s := newTestSigner(t)

	signed, err := s.Sign(testTable, "alice")
	assert.NoError(t, err)

	id, err := s.ValidPlayerID(signed, testTable)
	assert.NoError(t, err)
	assert.Equal(t, "alice", id)
}

func TestValidPlayerID_InvalidAudience(t *testing.T) {
	s := newTestSigner(t)

	signed, err := s.Sign(uuid.New().String(), "alice")
	assert.NoError(t, err)

	id, err := s.ValidPlayerID(signed, testTable)
	assert.True(t, errors.Is(err, ErrInvalidAudience))
	assert.Equal(t, "", id)
}

func TestValidPlayerID_InvalidIssuer(t *testing.T) {
	s := newTestSigner(t)
	other, err := NewSigner("test-secret", "someone-else")
	assert.NoError(t, err)

	signed, err := other.Sign(testTable, "alice")
	assert.NoError(t, err)

	id, err := s.ValidPlayerID(signed, testTable)
	assert.True(t, errors.Is(err, ErrInvalidIssuer))
	assert.Equal(t, "", id)
}

func TestValidPlayerID_WrongSecret(t *testing.T) {
	s := newTestSigner(t)
	other, err := NewSigner("another-secret", "tienlen-test")
	assert.NoError(t, err)

	signed, err := other.Sign(testTable, "alice")
	assert.NoError(t, err)

	id, err := s.ValidPlayerID(signed, testTable)
	assert.True(t, errors.Is(err, jwtgo.ErrTokenSignatureInvalid))
	assert.Equal(t, "", id)
}

func TestValidPlayerID_Expired(t *testing.T) {
	s := newTestSigner(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{testTable},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now().Add(time.Hour * -2)),
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(time.Hour * -1)),
		Issuer:    "tienlen-test",
		Subject:   "alice",
	})

	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	id, err := s.ValidPlayerID(signed, testTable)
	assert.True(t, errors.Is(err, jwtgo.ErrTokenExpired))
	assert.Equal(t, "", id)
}

func TestValidPlayerID_WrongAlgorithm(t *testing.T) {
	s := newTestSigner(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodNone, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{testTable},
		Issuer:   "tienlen-test",
		Subject:  "alice",
	})

	signed, err := token.SignedString(jwtgo.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	id, err := s.ValidPlayerID(signed, testTable)
	assert.Error(t, err)
	assert.Equal(t, "", id)
}
