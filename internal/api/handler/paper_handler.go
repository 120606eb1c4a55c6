package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/dto"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/internal/service"
	"github.com/mahbubchula/B-deshi-research-lab-tracker/pkg/response"
)

// PaperHandler 论文模块 HTTP 处理器
type PaperHandler struct {
	paperSvc service.PaperService
}

// NewPaperHandler 创建 PaperHandler
func NewPaperHandler(paperSvc service.PaperService) *PaperHandler {
	return &PaperHandler{paperSvc: paperSvc}
}

// List 论文列表
// GET /api/papers?status=
func (h *PaperHandler) List(c *gin.Context) {
	var req dto.PaperListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	papers, err := h.paperSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKList(c, papers, len(papers))
}

// Get 论文详情
// GET /api/papers/:id
func (h *PaperHandler) Get(c *gin.Context) {
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	paper, err := h.paperSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, paper)
}

// Create 创建论文，未指定作者时创建者为第一作者
// POST /api/papers
func (h *PaperHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	paper, err := h.paperSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, paper)
}

// Update 修改论文
// PUT /api/papers/:id
func (h *PaperHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	var req dto.UpdatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	paper, err := h.paperSvc.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, paper)
}

// Delete 删除论文
// DELETE /api/papers/:id
func (h *PaperHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustGetPathID(c)
	if !ok {
		return
	}

	if err := h.paperSvc.Delete(c.Request.Context(), actor, id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Empty(c, "论文已删除")
}

// AddComment 添加评论
// POST /api/papers/:id/comments
func (h *PaperHandler) AddComment(c *gin.Context) {
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

	paper, err := h.paperSvc.AddComment(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, paper)
}
