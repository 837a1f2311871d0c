package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/service"
	pkgerrors "github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/errors"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/response"
)

// GradeHandler 成绩模块 HTTP 处理器
type GradeHandler struct {
	gradeSvc service.GradeService
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc}
}

// GetReportCard 获取学生成绩单（全学科）
// GET /api/v1/enrollments/:id/grades
func (h *GradeHandler) GetReportCard(c *gin.Context) {
	enrollmentID := c.Param("id")
	if enrollmentID == "" {
		response.BadRequest(c, 10001, "注册ID不能为空")
		return
	}

	card, err := h.gradeSvc.GetReportCard(c.Request.Context(), enrollmentID)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, card)
}

// UpsertBimesterGrade 录入/更新某双月期成绩（分数置 null 表示清除）
// PUT /api/v1/enrollments/:id/grades
func (h *GradeHandler) UpsertBimesterGrade(c *gin.Context) {
	enrollmentID := c.Param("id")
	if enrollmentID == "" {
		response.BadRequest(c, 10001, "注册ID不能为空")
		return
	}

	var req dto.UpsertBimesterGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grades, err := h.gradeSvc.UpsertBimester(c.Request.Context(), enrollmentID, &req, OperatorID(c))
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grades)
}

// SignOffBimester 双月期成绩签核（教师/协调员确认）
// PUT /api/v1/enrollments/:id/grades/sign-off
func (h *GradeHandler) SignOffBimester(c *gin.Context) {
	enrollmentID := c.Param("id")
	if enrollmentID == "" {
		response.BadRequest(c, 10001, "注册ID不能为空")
		return
	}

	var req dto.SignOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grades, err := h.gradeSvc.SignOff(c.Request.Context(), enrollmentID, &req, OperatorID(c))
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grades)
}

// SetFinalMakeup 录入年度最终补考分数
// PUT /api/v1/enrollments/:id/grades/final-makeup
func (h *GradeHandler) SetFinalMakeup(c *gin.Context) {
	enrollmentID := c.Param("id")
	if enrollmentID == "" {
		response.BadRequest(c, 10001, "注册ID不能为空")
		return
	}

	var req dto.FinalMakeupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grades, err := h.gradeSvc.SetFinalMakeup(c.Request.Context(), enrollmentID, &req, OperatorID(c))
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grades)
}

// handleGradeError 统一处理成绩模块业务错误
func (h *GradeHandler) handleGradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 16001, "注册记录不存在")
	case errors.Is(err, service.ErrGradeNotFound):
		response.NotFound(c, 16002, "成绩记录不存在")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 16003, "成绩已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
