package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/service"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器，只操作当前用户自己的通知
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List 最近的通知
// GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	list, err := h.notificationSvc.List(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// UnreadCount 未读数
// GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	n, err := h.notificationSvc.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, dto.UnreadCountResponse{Unread: n})
}

// MarkRead 标记单条已读
// PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	n, err := h.notificationSvc.MarkRead(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, n)
}

// MarkAllRead 全部标记已读
// PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	n, err := h.notificationSvc.MarkAllRead(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKMessage(c, gin.H{"updated": n}, "全部通知已标记为已读")
}

// Delete 删除通知
// DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.Delete(c.Request.Context(), actor, id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Empty(c, "通知已删除")
}
