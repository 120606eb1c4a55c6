package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/service"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UserHandler 用户管理模块 HTTP 处理器（教授与管理员）
type UserHandler struct {
	userSvc     service.UserService
	activitySvc service.ActivityService
	exportSvc   service.ExportService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService, activitySvc service.ActivityService, exportSvc service.ExportService) *UserHandler {
	return &UserHandler{userSvc: userSvc, activitySvc: activitySvc, exportSvc: exportSvc}
}

// ────────────────────── 用户管理 ──────────────────────

// List 用户列表
// GET /api/users?role=&department=&labGroup=&search=
func (h *UserHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	users, err := h.userSvc.List(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, users, len(users))
}

// Get 用户详情及其统计
// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	detail, err := h.userSvc.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, detail)
}

// Update 修改用户
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, user)
}

// Delete 删除用户及其全部关联数据
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	user, result, err := h.userSvc.Delete(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKMessage(c, result, fmt.Sprintf("用户 %s 及其关联数据已删除", user.Name))
}

// AssignSupervisor 指定导师（仅管理员）
// PUT /api/users/:id/assign-supervisor
func (h *UserHandler) AssignSupervisor(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	var req dto.AssignSupervisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	user, err := h.userSvc.AssignSupervisor(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKMessage(c, user, "导师指定成功")
}

// ResetPassword 重置密码，临时密码只在本次响应中返回
// POST /api/users/:id/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	result, err := h.userSvc.ResetPassword(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Import 通过 Excel 批量创建账号
// POST /api/users/import (multipart, 字段 file)
func (h *UserHandler) Import(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "请上传 Excel 文件（字段名 file）")
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		response.BadRequest(c, 20104, "仅支持 .xlsx 文件")
		return
	}

	f, err := fh.Open()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer f.Close()

	rows, err := h.userSvc.ParseImportFile(f)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result, err := h.userSvc.ImportUsers(c.Request.Context(), actor, rows)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKMessage(c, result, fmt.Sprintf("成功导入 %d 个账号，失败 %d 行", result.Success, result.Failed))
}

// ────────────────────── 单个用户的数据 ──────────────────────

// Goals 指定用户负责的目标
// GET /api/users/:id/goals
func (h *UserHandler) Goals(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	goals, err := h.userSvc.Goals(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, goals, len(goals))
}

// Papers 指定用户参与的论文
// GET /api/users/:id/papers
func (h *UserHandler) Papers(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	papers, err := h.userSvc.Papers(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, papers, len(papers))
}

// Tasks 指定用户被指派的任务
// GET /api/users/:id/tasks
func (h *UserHandler) Tasks(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	tasks, err := h.userSvc.Tasks(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, tasks, len(tasks))
}

// ────────────────────── 导师视图 ──────────────────────

// SupervisorDashboard 导师看板
// GET /api/users/supervisor/dashboard
func (h *UserHandler) SupervisorDashboard(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	dash, err := h.userSvc.SupervisorDashboard(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, dash)
}

// SupervisorActivities 全体成员动态（路由层已限定教授与管理员）
// GET /api/users/supervisor/activities?type=&userId=&limit=
func (h *UserHandler) SupervisorActivities(c *gin.Context) {
	var req dto.SupervisorActivityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	activities, err := h.activitySvc.ListAll(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, activities, len(activities))
}

// SupervisorExport 导出导师看板为 Excel
// GET /api/users/supervisor/export
func (h *UserHandler) SupervisorExport(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.SupervisorReport(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
