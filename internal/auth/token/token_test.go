package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type testConfig struct{}

func (testConfig) GetJWTAccessSecret() string       { return "access-secret-for-tests" }
func (testConfig) GetJWTRefreshSecret() string      { return "refresh-secret-for-tests" }
func (testConfig) GetAccessTokenTTL() time.Duration { return 15 * time.Minute }
func (testConfig) GetRefreshTokenTTL() time.Duration { return 24 * time.Hour }

func TestIssueAndVerifyRefresh(t *testing.T) {
	manager := NewManager(testConfig{})
	userID := uuid.New()

	pair, err := manager.Issue(userID, []string{"staff"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token in pair")
	}
	if pair.RefreshHash != Hash(pair.RefreshToken) {
		t.Error("pair hash does not match the refresh token")
	}

	got, err := manager.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyRefresh: %v", err)
	}
	if got != userID {
		t.Errorf("subject = %s, want %s", got, userID)
	}
}

func TestVerifyRefreshRejectsAccessToken(t *testing.T) {
	manager := NewManager(testConfig{})

	pair, err := manager.Issue(uuid.New(), nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := manager.VerifyRefresh(pair.AccessToken); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestVerifyRefreshRejectsWrongSecret(t *testing.T) {
	manager := NewManager(testConfig{})

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.NewString(),
		"type": "refresh",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := forged.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := manager.VerifyRefresh(raw); err == nil {
		t.Error("token signed with wrong secret accepted")
	}
}

func TestAccessTokenClaims(t *testing.T) {
	manager := NewManager(testConfig{})
	userID := uuid.New()

	pair, err := manager.Issue(userID, []string{"admin"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parsed, err := jwt.Parse(pair.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("access-secret-for-tests"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse access token: %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	if claims["type"] != "access" {
		t.Errorf("type claim = %v, want access", claims["type"])
	}
	if claims["sub"] != userID.String() {
		t.Errorf("sub claim = %v, want %s", claims["sub"], userID)
	}
}
