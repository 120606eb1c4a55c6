package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 15 * time.Minute,
		Issuer:         "lab-tracker",
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "professor", "prof@lab.edu")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", claims.UserID)
	}
	if claims.Role != "professor" {
		t.Errorf("期望 Role=professor，实际=%s", claims.Role)
	}
	if claims.Email != "prof@lab.edu" {
		t.Errorf("期望 Email=prof@lab.edu，实际=%s", claims.Email)
	}
	if claims.Issuer != "lab-tracker" {
		t.Errorf("期望 Issuer=lab-tracker，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	ttl := claims.RemainingTTL()
	if ttl <= 14*time.Minute || ttl > 15*time.Minute {
		t.Errorf("剩余有效期期望约15分钟，实际=%v", ttl)
	}
}

func TestGenerateAccessToken_UniqueJTI(t *testing.T) {
	m := newTestManager()

	t1, _ := m.GenerateAccessToken("user-1", "student", "a@lab.edu")
	t2, _ := m.GenerateAccessToken("user-1", "student", "a@lab.edu")
	c1, _ := m.ParseToken(t1)
	c2, _ := m.ParseToken(t2)

	if c1.ID == c2.ID {
		t.Error("同一用户两次签发的 JTI 不应相同")
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("invalid.token.string")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "different-secret-key",
		AccessTokenTTL: 15 * time.Minute,
		Issuer:         "lab-tracker",
	})

	token, _ := m1.GenerateAccessToken("user-1", "admin", "admin@lab.edu")
	_, err := m2.ParseToken(token)
	if err == nil {
		t.Error("不同密钥签名的 token 不应通过验证")
	}
}

func TestParseToken_WrongIssuer(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 15 * time.Minute,
		Issuer:         "other-service",
	})

	token, _ := m1.GenerateAccessToken("user-1", "admin", "admin@lab.edu")
	if _, err := m2.ParseToken(token); err == nil {
		t.Error("签发方不一致的 token 不应通过验证")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 1 * time.Millisecond,
	})

	token, _ := m.GenerateAccessToken("user-1", "admin", "admin@lab.edu")
	time.Sleep(10 * time.Millisecond)

	_, err := m.ParseToken(token)
	if err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestRemainingTTL_Expired(t *testing.T) {
	c := &Claims{}
	if c.RemainingTTL() != 0 {
		t.Error("无过期时间的声明剩余有效期应为 0")
	}
}
