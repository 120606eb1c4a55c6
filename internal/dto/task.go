package dto

// ── 任务模块 DTO ──

// TaskListRequest 任务列表查询参数
type TaskListRequest struct {
	Status   string `form:"status"   binding:"omitempty,oneof=pending in-progress review completed cancelled"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

// AttachmentInput 附件
type AttachmentInput struct {
	Name string `json:"name" binding:"required,max=200"`
	URL  string `json:"url"  binding:"required,url"`
}

// CreateTaskRequest 创建任务；assignedTo 为空时指派给自己
type CreateTaskRequest struct {
	Title          string            `json:"title"          binding:"required,max=200"`
	Description    string            `json:"description"    binding:"omitempty,max=5000"`
	AssignedTo     string            `json:"assignedTo"     binding:"omitempty,uuid"`
	Status         string            `json:"status"         binding:"omitempty,oneof=pending in-progress review completed cancelled"`
	Priority       string            `json:"priority"       binding:"omitempty,oneof=low medium high urgent"`
	DueDate        *Date             `json:"dueDate"        binding:"required"`
	EstimatedHours *float64          `json:"estimatedHours" binding:"omitempty,min=0"`
	RelatedPaper   *string           `json:"relatedPaper"   binding:"omitempty,uuid"`
	Attachments    []AttachmentInput `json:"attachments"    binding:"omitempty,dive"`
	Tags           []string          `json:"tags"           binding:"omitempty,max=20,dive,max=50"`
}

// UpdateTaskRequest 更新任务（仅覆盖提供的字段）
type UpdateTaskRequest struct {
	Title          *string            `json:"title"          binding:"omitempty,max=200"`
	Description    *string            `json:"description"    binding:"omitempty,max=5000"`
	AssignedTo     *string            `json:"assignedTo"     binding:"omitempty,uuid"`
	Status         *string            `json:"status"         binding:"omitempty,oneof=pending in-progress review completed cancelled"`
	Priority       *string            `json:"priority"       binding:"omitempty,oneof=low medium high urgent"`
	DueDate        *Date              `json:"dueDate"`
	EstimatedHours *float64           `json:"estimatedHours" binding:"omitempty,min=0"`
	ActualHours    *float64           `json:"actualHours"    binding:"omitempty,min=0"`
	RelatedPaper   *string            `json:"relatedPaper"   binding:"omitempty,uuid"`
	Attachments    *[]AttachmentInput `json:"attachments"`
	Tags           *[]string          `json:"tags"`
}
