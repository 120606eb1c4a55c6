package dto

// ── 目标模块 DTO ──

// GoalListRequest 目标列表查询参数
type GoalListRequest struct {
	Type      string `form:"type"      binding:"omitempty,oneof=daily weekly monthly"`
	Status    string `form:"status"    binding:"omitempty,oneof=not-started in-progress completed cancelled"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// CreateGoalRequest 创建目标
type CreateGoalRequest struct {
	Title       string  `json:"title"       binding:"required,max=200"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	Type        string  `json:"type"        binding:"required,oneof=daily weekly monthly"`
	Priority    string  `json:"priority"    binding:"omitempty,oneof=low medium high urgent"`
	Status      string  `json:"status"      binding:"omitempty,oneof=not-started in-progress completed cancelled"`
	Progress    *int    `json:"progress"    binding:"omitempty,min=0,max=100"`
	StartDate   *Date   `json:"startDate"`
	EndDate     *Date   `json:"endDate"`
	AssignedTo  *string `json:"assignedTo"  binding:"omitempty,uuid"`
}

// UpdateGoalRequest 更新目标（仅覆盖提供的字段）
type UpdateGoalRequest struct {
	Title       *string      `json:"title"       binding:"omitempty,max=200"`
	Description *string      `json:"description" binding:"omitempty,max=2000"`
	Type        *string      `json:"type"        binding:"omitempty,oneof=daily weekly monthly"`
	Priority    *string      `json:"priority"    binding:"omitempty,oneof=low medium high urgent"`
	Status      *string      `json:"status"      binding:"omitempty,oneof=not-started in-progress completed cancelled"`
	Progress    *int         `json:"progress"    binding:"omitempty,min=0,max=100"`
	StartDate   OptionalDate `json:"startDate"`
	EndDate     OptionalDate `json:"endDate"`
	AssignedTo  *string      `json:"assignedTo"  binding:"omitempty,uuid"`
}

// GoalTypeStats 按类型聚合的目标统计
type GoalTypeStats struct {
	Type        string  `json:"type"`
	Total       int64   `json:"total"`
	Completed   int64   `json:"completed"`
	InProgress  int64   `json:"inProgress"`
	AvgProgress float64 `json:"avgProgress"`
}
