package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/service"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

// ActivityHandler 动态模块 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// List 本人动态
// GET /api/activities?type=&limit=
func (h *ActivityHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.ActivityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	activities, err := h.activitySvc.ListMine(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, activities, len(activities))
}

// Get 动态详情
// GET /api/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	activity, err := h.activitySvc.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, activity)
}

// Delete 删除单条动态
// DELETE /api/activities/:id
func (h *ActivityHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	if err := h.activitySvc.Delete(c.Request.Context(), actor, id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Empty(c, "动态已删除")
}

// Clear 清空本人动态
// DELETE /api/activities
func (h *ActivityHandler) Clear(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	n, err := h.activitySvc.Clear(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKMessage(c, gin.H{"deleted": n}, fmt.Sprintf("已清空 %d 条动态", n))
}
