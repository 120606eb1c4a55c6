package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/service"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

// DashboardHandler 看板 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Shared 协作看板：全体成员的数据
// GET /api/dashboard
func (h *DashboardHandler) Shared(c *gin.Context) {
	dash, err := h.dashboardSvc.Shared(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, dash)
}

// Personal 个人看板：只含当前用户的数据
// GET /api/dashboard/personal
func (h *DashboardHandler) Personal(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	dash, err := h.dashboardSvc.Personal(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, dash)
}
