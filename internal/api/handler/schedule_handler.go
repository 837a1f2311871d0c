package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/service"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/response"
)

// ScheduleHandler 课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// GetSchedule 获取班级周课表
// GET /api/v1/classes/:id/schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	classID := c.Param("id")
	if classID == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	schedule, err := h.scheduleSvc.GetByClass(c.Request.Context(), classID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// ReplaceSchedule 整体替换班级周课表
// PUT /api/v1/classes/:id/schedule
func (h *ScheduleHandler) ReplaceSchedule(c *gin.Context) {
	classID := c.Param("id")
	if classID == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	var req dto.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	schedule, err := h.scheduleSvc.Replace(c.Request.Context(), classID, &req, OperatorID(c))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// handleScheduleError 统一处理课表模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 15006, "班级不存在")
	case errors.Is(err, service.ErrScheduleDayDuplicate):
		response.BadRequest(c, 15101, "同一星期在课表中出现多次")
	case errors.Is(err, service.ErrSlotTimeInvalid):
		response.BadRequest(c, 15102, "时段时间无效：格式应为 HH:MM 且结束晚于开始")
	default:
		response.InternalError(c)
	}
}
