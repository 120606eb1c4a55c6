package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/service"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc     service.TaskService
	calendarSvc service.CalendarService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService, calendarSvc service.CalendarService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc, calendarSvc: calendarSvc}
}

// List 任务列表
// GET /api/tasks?status=&priority=
func (h *TaskHandler) List(c *gin.Context) {
	var req dto.TaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	tasks, err := h.taskSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, tasks, len(tasks))
}

// Calendar 当前用户被指派任务的 iCalendar 订阅
// GET /api/tasks/calendar
func (h *TaskHandler) Calendar(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	feed, err := h.calendarSvc.TaskFeed(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="tasks.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// Get 任务详情
// GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, task)
}

// Create 创建任务，指派给他人时通知被指派人
// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, task)
}

// Update 修改任务
// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, task)
}

// Delete 删除任务
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), actor, id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Empty(c, "任务已删除")
}

// AddComment 添加评论
// POST /api/tasks/:id/comments
func (h *TaskHandler) AddComment(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	task, err := h.taskSvc.AddComment(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, task)
}
