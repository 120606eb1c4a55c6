package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/service"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

// PersonalTodoHandler 个人待办 HTTP 处理器（教授与管理员）
type PersonalTodoHandler struct {
	todoSvc service.PersonalTodoService
}

// NewPersonalTodoHandler 创建 PersonalTodoHandler
func NewPersonalTodoHandler(todoSvc service.PersonalTodoService) *PersonalTodoHandler {
	return &PersonalTodoHandler{todoSvc: todoSvc}
}

// List 待办列表，按截止日期升序
// GET /api/personal-todos?type=&status=&priority=
func (h *PersonalTodoHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.TodoListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	todos, err := h.todoSvc.List(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, todos, len(todos))
}

// Stats 待办统计
// GET /api/personal-todos/stats
func (h *PersonalTodoHandler) Stats(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	stats, err := h.todoSvc.Stats(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, stats)
}

// Get 待办详情
// GET /api/personal-todos/:id
func (h *PersonalTodoHandler) Get(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	todo, err := h.todoSvc.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, todo)
}

// Create 创建待办
// POST /api/personal-todos
func (h *PersonalTodoHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	todo, err := h.todoSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, todo)
}

// Update 修改待办
// PUT /api/personal-todos/:id
func (h *PersonalTodoHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	todo, err := h.todoSvc.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, todo)
}

// Delete 删除待办
// DELETE /api/personal-todos/:id
func (h *PersonalTodoHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	if err := h.todoSvc.Delete(c.Request.Context(), actor, id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Empty(c, "待办已删除")
}
