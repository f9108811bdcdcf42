package jwt

import (
	"errors"
	"fmt"
	"tienlen-server/internal/config"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// seatTokenTTL is how long a seat token stays valid
const seatTokenTTL = time.Hour * 24

// ErrInvalidAudience happens when a seat token was issued for a different table
var ErrInvalidAudience = errors.New("invalid audience")

// ErrInvalidIssuer happens when a seat token was not issued by this server
var ErrInvalidIssuer = errors.New("invalid issuer")

// Signer signs and validates seat tokens
// A seat token binds a player ID (subject) to a table UUID (audience)
type Signer struct {
	secret []byte
	issuer string
}

// NewSigner returns a signer for the secret and issuer
func NewSigner(secret, issuer string) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}

	return &Signer{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// NewSignerFromConfig returns a signer from the JWT configuration
func NewSignerFromConfig() (*Signer, error) {
	cfg := config.Instance().JWT
	return NewSigner(cfg.Secret, cfg.Issuer)
}

// Sign will sign a seat token for the player at the table
func (s *Signer) Sign(tableUUID, playerID string) (string, error) {
	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{tableUUID},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(now),
		ExpiresAt: jwtgo.NewNumericDate(now.Add(seatTokenTTL)),
		Issuer:    s.issuer,
		Subject:   playerID,
	})

	return token.SignedString(s.secret)
}

// ValidPlayerID validates a seat token for the table and returns the player ID
func (s *Signer) ValidPlayerID(signedString, tableUUID string) (string, error) {
	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return s.secret, nil
	})

	if err != nil {
		return "", err
	}

	if !token.Valid {
		logrus.Warn("token claims were not valid. did not expect to reach this code")
		return "", errors.New("claims were not valid")
	}

	claims, ok := token.Claims.(*jwtgo.RegisteredClaims)
	if !ok {
		return "", fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	if !containsAudience(claims.Audience, tableUUID) {
		return "", ErrInvalidAudience
	}

	if claims.Issuer != s.issuer {
		return "", ErrInvalidIssuer
	}

	if claims.Subject == "" {
		return "", errors.New("missing subject")
	}

	return claims.Subject, nil
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
