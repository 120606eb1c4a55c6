package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/service"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

// GoalHandler 目标模块 HTTP 处理器
type GoalHandler struct {
	goalSvc service.GoalService
}

// NewGoalHandler 创建 GoalHandler
func NewGoalHandler(goalSvc service.GoalService) *GoalHandler {
	return &GoalHandler{goalSvc: goalSvc}
}

// List 目标列表（全体可见）
// GET /api/goals?type=&status=&startDate=&endDate=
func (h *GoalHandler) List(c *gin.Context) {
	var req dto.GoalListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	goals, err := h.goalSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, goals, len(goals))
}

// Stats 当前用户按类型的目标统计
// GET /api/goals/stats
func (h *GoalHandler) Stats(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	stats, err := h.goalSvc.Stats(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, stats)
}

// Get 目标详情
// GET /api/goals/:id
func (h *GoalHandler) Get(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	goal, err := h.goalSvc.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, goal)
}

// Create 创建目标
// POST /api/goals
func (h *GoalHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	goal, err := h.goalSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, goal)
}

// Update 修改目标
// PUT /api/goals/:id
func (h *GoalHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	goal, err := h.goalSvc.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, goal)
}

// Delete 删除目标
// DELETE /api/goals/:id
func (h *GoalHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	if err := h.goalSvc.Delete(c.Request.Context(), actor, id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Empty(c, "目标已删除")
}
