package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/clock"
)

const issuer = "luggage-storage"

var (
	ErrInvalidToken = errors.New("invalid pickup token")
	ErrExpiredToken = errors.New("pickup token expired")
	ErrWrongSubject = errors.New("pickup token issued for another reservation")
)

// PickupClaims bind a token to one reservation and its owner.
type PickupClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed pickup tokens handed to customers at
// reservation time and presented at check-out.
type Manager struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
	parser *jwt.Parser
}

func NewManager(secret string, ttl time.Duration, clk clock.Clock) (*Manager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("pickup token secret must be at least 32 bytes, got %d", len(secret))
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Issue signs a token for reservationNumber valid until validUntil plus the
// configured ttl.
func (m *Manager) Issue(reservationNumber, userID string, validUntil time.Time) (string, error) {
	now := m.clock.Now()
	claims := PickupClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   reservationNumber,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(validUntil.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign pickup token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, expiry and subject of raw.
func (m *Manager) Verify(raw, reservationNumber string) (*PickupClaims, error) {
	claims := &PickupClaims{}
	tok, err := m.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != issuer {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(m.clock.Now(), true) {
		return nil, ErrExpiredToken
	}
	if claims.Subject != reservationNumber {
		return nil, ErrWrongSubject
	}
	return claims, nil
}
