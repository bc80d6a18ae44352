// Package token issues and verifies the JWT pair used by the API.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"kurscrm_backend/platform/config"
)

type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(cfg config.AuthServiceConfig) *Manager {
	return &Manager{
		accessSecret:  []byte(cfg.GetJWTAccessSecret()),
		refreshSecret: []byte(cfg.GetJWTRefreshSecret()),
		accessTTL:     cfg.GetAccessTokenTTL(),
		refreshTTL:    cfg.GetRefreshTokenTTL(),
	}
}

// Pair is a freshly issued access/refresh token pair. RefreshHash is what
// gets stored server side; the raw refresh token is only handed to the
// client.
type Pair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshHash      string
	RefreshExpiresAt time.Time
}

func (m *Manager) Issue(userID uuid.UUID, roles []string) (Pair, error) {
	now := time.Now()
	accessExpiry := now.Add(m.accessTTL)
	refreshExpiry := now.Add(m.refreshTTL)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"roles": roles,
		"type":  "access",
		"iat":   now.Unix(),
		"exp":   accessExpiry.Unix(),
	})
	accessToken, err := access.SignedString(m.accessSecret)
	if err != nil {
		return Pair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"type": "refresh",
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  refreshExpiry.Unix(),
	})
	refreshToken, err := refresh.SignedString(m.refreshSecret)
	if err != nil {
		return Pair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return Pair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     refreshToken,
		RefreshHash:      Hash(refreshToken),
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

// VerifyRefresh checks the refresh token's signature and claims and returns
// the subject. Server-side revocation is the repository's concern.
func (m *Manager) VerifyRefresh(rawToken string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.refreshSecret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("invalid refresh token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid refresh token claims")
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return uuid.Nil, fmt.Errorf("not a refresh token")
	}

	subject, _ := claims["sub"].(string)
	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid refresh token subject")
	}
	return userID, nil
}

// Hash returns the hex SHA-256 of a refresh token for storage and lookup.
func Hash(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
