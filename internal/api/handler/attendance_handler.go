package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/service"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/response"
)

// AttendanceHandler 课时与缺勤核对模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// GetTaughtHours 查询某班级某学科在评分期内的授课小时数
// GET /api/v1/classes/:id/taught-hours?subject=xxx&period_id=xxx
func (h *AttendanceHandler) GetTaughtHours(c *gin.Context) {
	classID := c.Param("id")
	if classID == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	var req dto.TaughtHoursRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attendanceSvc.SubjectTaughtHours(c.Request.Context(), classID, req.Subject, req.PeriodID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetDiscrepancies 缺勤小时数与授课小时数的核对报告
// GET /api/v1/classes/:id/attendance-discrepancies?bimester=1
func (h *AttendanceHandler) GetDiscrepancies(c *gin.Context) {
	classID := c.Param("id")
	if classID == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	bimester, err := strconv.Atoi(c.Query("bimester"))
	if err != nil {
		response.BadRequest(c, 10001, "bimester 应为 1-4 的整数")
		return
	}

	report, err := h.attendanceSvc.Discrepancies(c.Request.Context(), classID, bimester)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, report)
}

// handleAttendanceError 统一处理课时核对模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 15006, "班级不存在")
	case errors.Is(err, service.ErrPeriodNotFound):
		response.NotFound(c, 15201, "评分期不存在")
	case errors.Is(err, service.ErrBimesterInvalid):
		response.BadRequest(c, 15202, "bimester 应为 1-4 的整数")
	case errors.Is(err, service.ErrPeriodMismatched):
		response.BadRequest(c, 15203, "评分期不属于该班级所在学年")
	default:
		response.InternalError(c)
	}
}
