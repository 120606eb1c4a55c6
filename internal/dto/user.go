package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	Role       string `form:"role"       binding:"omitempty,oneof=student professor admin"`
	Department string `form:"department" binding:"omitempty,max=100"`
	LabGroup   string `form:"labGroup"   binding:"omitempty,max=100"`
	Search     string `form:"search"     binding:"omitempty,max=100"`
}

// UpdateUserRequest 导师修改用户信息
type UpdateUserRequest struct {
	Name         *string `json:"name"         binding:"omitempty,min=2,max=100"`
	Department   *string `json:"department"   binding:"omitempty,max=100"`
	LabGroup     *string `json:"labGroup"     binding:"omitempty,max=100"`
	Role         *string `json:"role"         binding:"omitempty,oneof=student professor admin"`
	SupervisorID *string `json:"supervisorId" binding:"omitempty,uuid"`
	IsActive     *bool   `json:"isActive"`
}

// AssignSupervisorRequest 指定导师
type AssignSupervisorRequest struct {
	SupervisorID string `json:"supervisorId" binding:"required,uuid"`
}

// SupervisorActivityRequest 导师查看动态的查询参数
type SupervisorActivityRequest struct {
	Type   string `form:"type"   binding:"omitempty,oneof=goal paper task meeting publication other"`
	UserID string `form:"userId" binding:"omitempty,uuid"`
	Limit  int    `form:"limit"  binding:"omitempty,min=1,max=500"`
}

// ResetPasswordResponse 重置密码响应，临时密码只返回一次
type ResetPasswordResponse struct {
	TempPassword string `json:"tempPassword"`
}

// ImportUserResponse 批量导入结果
type ImportUserResponse struct {
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
	Errors  []ImportUserError `json:"errors"`
	Created []ImportedUser    `json:"created"`
}

// ImportUserError 导入失败的行
type ImportUserError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportedUser 导入成功的账号及其初始密码
type ImportedUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TempPassword string `json:"tempPassword"`
}
