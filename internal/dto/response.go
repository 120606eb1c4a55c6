package dto

import "github.com/mahbubchula/B-deshi-research-lab-tracker/internal/model"

// ── 认证模块响应 ──

// AuthResponse 注册 / 登录响应
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn"` // Token 有效期（秒）
	User      *model.User `json:"user"`
}

// ── 通知模块响应 ──

// UnreadCountResponse 未读通知数
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// DeleteUserResponse 级联删除结果
type DeleteUserResponse struct {
	Goals         int64 `json:"goals"`
	Papers        int64 `json:"papers"`
	Tasks         int64 `json:"tasks"`
	Activities    int64 `json:"activities"`
	Notifications int64 `json:"notifications"`
	PersonalTodos int64 `json:"personalTodos"`
}
