package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/config"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/jwt"
)

// ── 测试辅助 ──

type mockBlacklist struct {
	tokens map[string]time.Duration
	err    error
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.tokens[jti] = ttl
	return nil
}

func newTestJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: time.Hour,
		Issuer:         "lab-tracker",
	})
}

func setupTestAuthService() (AuthService, *mockRepos, *mockBlacklist) {
	repo, m := newMockRepository()
	bl := &mockBlacklist{tokens: make(map[string]time.Duration)}
	svc := NewAuthService(repo, newTestJWTManager(), bl, zap.NewNop())
	return svc, m, bl
}

func createUserWithPassword(m *mockRepos, email, password, role string, active bool) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		Name:         "测试用户",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
	_ = m.user.Create(context.Background(), u)
	return u
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, m, _ := setupTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "  张三 ",
		Email:    "Zhang.San@Lab.EDU",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if resp.Token == "" {
		t.Error("期望返回 Token")
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("期望有效期 3600 秒，实际: %d", resp.ExpiresIn)
	}
	if resp.User.Email != "zhang.san@lab.edu" {
		t.Errorf("邮箱应归一化为小写，实际: %s", resp.User.Email)
	}
	if resp.User.Name != "张三" {
		t.Errorf("姓名应去除首尾空白，实际: %q", resp.User.Name)
	}
	if resp.User.Role != model.RoleStudent {
		t.Errorf("默认角色应为 student，实际: %s", resp.User.Role)
	}
	if !resp.User.IsActive {
		t.Error("新注册用户应为启用状态")
	}

	stored := m.user.users[resp.User.ID]
	if stored.PasswordHash == "secret123" {
		t.Error("密码不应明文存储")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")) != nil {
		t.Error("存储的哈希应能校验原密码")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, m, _ := setupTestAuthService()
	createUserWithPassword(m, "dup@lab.edu", "secret123", model.RoleStudent, true)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "李四",
		Email:    "DUP@lab.edu",
		Password: "secret123",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}
}

func TestAuthService_Register_Professor(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "王教授",
		Email:    "wang@lab.edu",
		Password: "secret123",
		Role:     model.RoleProfessor,
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if resp.User.Role != model.RoleProfessor {
		t.Errorf("期望角色 professor，实际: %s", resp.User.Role)
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, m, _ := setupTestAuthService()
	u := createUserWithPassword(m, "login@lab.edu", "secret123", model.RoleStudent, true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "Login@Lab.edu",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.User.ID != u.ID {
		t.Errorf("期望用户 %s，实际: %s", u.ID, resp.User.ID)
	}
	if m.user.users[u.ID].LastLogin == nil {
		t.Error("登录后应记录最后登录时间")
	}

	claims, err := newTestJWTManager().ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("Token 解析失败: %v", err)
	}
	if claims.UserID != u.ID || claims.Role != model.RoleStudent {
		t.Errorf("Token 声明不符: %+v", claims)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, m, _ := setupTestAuthService()
	createUserWithPassword(m, "login@lab.edu", "secret123", model.RoleStudent, true)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"邮箱不存在", "nobody@lab.edu", "secret123"},
		{"密码错误", "login@lab.edu", "wrong-password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
			}
		})
	}
}

func TestAuthService_Login_Inactive(t *testing.T) {
	svc, m, _ := setupTestAuthService()
	createUserWithPassword(m, "off@lab.edu", "secret123", model.RoleStudent, false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "off@lab.edu", Password: "secret123"})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("期望 ErrUserInactive，实际: %v", err)
	}
}

// ── Profile 测试 ──

func TestAuthService_Me_NotFound(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.Me(context.Background(), "missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, m, _ := setupTestAuthService()
	u := createUserWithPassword(m, "p@lab.edu", "secret123", model.RoleStudent, true)

	dept := "计算机学院"
	user, err := svc.UpdateProfile(context.Background(), u.ID, &dto.UpdateProfileRequest{Department: &dept})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if user.Department != dept {
		t.Errorf("期望院系 %s，实际: %s", dept, user.Department)
	}
	if user.Name != "测试用户" {
		t.Error("未提供的字段不应被修改")
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, m, _ := setupTestAuthService()
	u := createUserWithPassword(m, "pw@lab.edu", "secret123", model.RoleStudent, true)

	err := svc.ChangePassword(context.Background(), u.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpass456",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("期望 ErrWrongPassword，实际: %v", err)
	}

	err = svc.ChangePassword(context.Background(), u.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newpass456",
	})
	if err != nil {
		t.Fatalf("修改密码失败: %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "pw@lab.edu", Password: "newpass456"}); err != nil {
		t.Errorf("新密码应可登录: %v", err)
	}
}

// ── Logout 测试 ──

func TestAuthService_Logout(t *testing.T) {
	svc, _, bl := setupTestAuthService()

	if err := svc.Logout(context.Background(), "jti-1", 10*time.Minute); err != nil {
		t.Fatalf("注销失败: %v", err)
	}
	if bl.tokens["jti-1"] != 10*time.Minute {
		t.Errorf("黑名单 TTL 不符: %v", bl.tokens["jti-1"])
	}

	// 已过期的 Token 无需加入黑名单
	if err := svc.Logout(context.Background(), "jti-2", 0); err != nil {
		t.Fatalf("注销失败: %v", err)
	}
	if _, ok := bl.tokens["jti-2"]; ok {
		t.Error("TTL 为 0 时不应写入黑名单")
	}
}

func TestAuthService_Logout_NoBlacklist(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewAuthService(repo, newTestJWTManager(), nil, zap.NewNop())

	if err := svc.Logout(context.Background(), "jti-1", time.Minute); err != nil {
		t.Errorf("未启用黑名单时注销应直接成功，实际: %v", err)
	}
}

func TestAuthService_Logout_BlacklistError(t *testing.T) {
	svc, _, bl := setupTestAuthService()
	bl.err = errors.New("redis down")

	if err := svc.Logout(context.Background(), "jti-1", time.Minute); err == nil {
		t.Error("黑名单写入失败应返回错误")
	}
}
