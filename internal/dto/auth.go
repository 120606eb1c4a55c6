package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求；自助注册只允许 student / professor
type RegisterRequest struct {
	Name       string `json:"name"       binding:"required,min=2,max=100"`
	Email      string `json:"email"      binding:"required,email"`
	Password   string `json:"password"   binding:"required,min=6,max=72"`
	Role       string `json:"role"       binding:"omitempty,oneof=student professor"`
	Department string `json:"department" binding:"omitempty,max=100"`
	LabGroup   string `json:"labGroup"   binding:"omitempty,max=100"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest 修改个人资料
type UpdateProfileRequest struct {
	Name       *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	LabGroup   *string `json:"labGroup"   binding:"omitempty,max=100"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"     binding:"required,min=6,max=72"`
}
