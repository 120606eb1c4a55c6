package dto

// ── 个人待办 DTO ──

// TodoListRequest 个人待办查询参数
type TodoListRequest struct {
	Type     string `form:"type"     binding:"omitempty,oneof=daily weekly monthly yearly"`
	Status   string `form:"status"   binding:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

// CreateTodoRequest 创建个人待办
type CreateTodoRequest struct {
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Type        string `json:"type"        binding:"required,oneof=daily weekly monthly yearly"`
	Status      string `json:"status"      binding:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority    string `json:"priority"    binding:"omitempty,oneof=low medium high urgent"`
	DueDate     *Date  `json:"dueDate"`
	Notes       string `json:"notes"       binding:"omitempty,max=5000"`
}

// UpdateTodoRequest 更新个人待办
type UpdateTodoRequest struct {
	Title       *string      `json:"title"       binding:"omitempty,max=200"`
	Description *string      `json:"description" binding:"omitempty,max=2000"`
	Type        *string      `json:"type"        binding:"omitempty,oneof=daily weekly monthly yearly"`
	Status      *string      `json:"status"      binding:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority    *string      `json:"priority"    binding:"omitempty,oneof=low medium high urgent"`
	DueDate     OptionalDate `json:"dueDate"`
	Notes       *string      `json:"notes"       binding:"omitempty,max=5000"`
}

// TodoStats 个人待办统计
type TodoStats struct {
	Total      int             `json:"total"`
	ByType     TodoTypeCounts  `json:"byType"`
	ByStatus   TodoStatusCount `json:"byStatus"`
	ByPriority PriorityCounts  `json:"byPriority"`
}

// TodoTypeCounts 按类型计数
type TodoTypeCounts struct {
	Daily   int `json:"daily"`
	Weekly  int `json:"weekly"`
	Monthly int `json:"monthly"`
	Yearly  int `json:"yearly"`
}

// TodoStatusCount 按状态计数
type TodoStatusCount struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

// PriorityCounts 按优先级计数
type PriorityCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
	Urgent int `json:"urgent"`
}
