package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/service"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/response"
)

// CalendarHandler 校历模块 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// ListCalendarEvents 获取校历事件列表
// GET /api/v1/calendar-events?school_year_id=xxx（缺省为当前学年）
func (h *CalendarHandler) ListCalendarEvents(c *gin.Context) {
	events, err := h.calendarSvc.List(c.Request.Context(), c.Query("school_year_id"))
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, gin.H{"list": events})
}

// GetCalendarEvent 获取校历事件详情
// GET /api/v1/calendar-events/:id
func (h *CalendarHandler) GetCalendarEvent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "事件ID不能为空")
		return
	}

	event, err := h.calendarSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, event)
}

// CreateCalendarEvent 创建校历事件
// POST /api/v1/calendar-events
func (h *CalendarHandler) CreateCalendarEvent(c *gin.Context) {
	var req dto.CreateCalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	event, err := h.calendarSvc.Create(c.Request.Context(), &req, OperatorID(c))
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.Created(c, event)
}

// UpdateCalendarEvent 更新校历事件
// PUT /api/v1/calendar-events/:id
func (h *CalendarHandler) UpdateCalendarEvent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "事件ID不能为空")
		return
	}

	var req dto.UpdateCalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	event, err := h.calendarSvc.Update(c.Request.Context(), id, &req, OperatorID(c))
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, event)
}

// DeleteCalendarEvent 删除校历事件（软删除）
// DELETE /api/v1/calendar-events/:id
func (h *CalendarHandler) DeleteCalendarEvent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "事件ID不能为空")
		return
	}

	if err := h.calendarSvc.Delete(c.Request.Context(), id, OperatorID(c)); err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, nil)
}

// ImportHolidaysICS 从 ICS 文件或 URL 批量导入假日
// POST /api/v1/calendar-events/import-ics
// 优先读取 multipart 字段 file；无文件时读取 JSON 体中的 url。
func (h *CalendarHandler) ImportHolidaysICS(c *gin.Context) {
	kind := c.PostForm("kind")

	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			response.BadRequest(c, 10001, "无法读取上传文件")
			return
		}
		defer src.Close()

		result, err := h.calendarSvc.ImportHolidaysICS(c.Request.Context(), src, kind, OperatorID(c))
		if err != nil {
			h.handleCalendarError(c, err)
			return
		}
		response.Created(c, result)
		return
	}

	var req dto.ImportHolidaysICSRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		response.BadRequest(c, 10001, "需要上传 ICS 文件或提供 url")
		return
	}

	src, err := service.FetchICSContent(req.URL)
	if err != nil {
		response.BadRequest(c, 15007, "ICS 下载失败")
		return
	}
	defer src.Close()

	result, err := h.calendarSvc.ImportHolidaysICS(c.Request.Context(), src, req.Kind, OperatorID(c))
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.Created(c, result)
}

// CheckSchoolDay 判定某日对某班级是否为上课日
// GET /api/v1/school-days/check?date=2026-04-21&class_id=xxx
func (h *CalendarHandler) CheckSchoolDay(c *gin.Context) {
	date := c.Query("date")
	classID := c.Query("class_id")
	if date == "" || classID == "" {
		response.BadRequest(c, 10001, "date 与 class_id 不能为空")
		return
	}

	result, err := h.calendarSvc.CheckSchoolDay(c.Request.Context(), date, classID)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, result)
}

// handleCalendarError 统一处理校历模块业务错误
func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCalendarEventNotFound):
		response.NotFound(c, 15001, "校历事件不存在")
	case errors.Is(err, service.ErrEventDateInvalid):
		response.BadRequest(c, 15002, "事件日期无效")
	case errors.Is(err, service.ErrEventKindInvalid):
		response.BadRequest(c, 15003, "无效的事件类型")
	case errors.Is(err, service.ErrSubstituteDayMissing):
		response.BadRequest(c, 15004, "补课/调课事件必须指定 substitute_day_of_week")
	case errors.Is(err, service.ErrICSEmpty):
		response.BadRequest(c, 15005, "ICS 内容中没有可导入的事件")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 15006, "班级不存在")
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 10001, "日期格式应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrSchoolYearNotFound):
		response.NotFound(c, 14001, "学年不存在")
	default:
		response.InternalError(c)
	}
}
