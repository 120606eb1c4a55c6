package dto

// ActivityListRequest 本人动态查询参数
type ActivityListRequest struct {
	Type  string `form:"type"  binding:"omitempty,oneof=goal paper task meeting publication other"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=500"`
}
