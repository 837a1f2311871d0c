package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/service"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/response"
)

// SchoolYearHandler 学年模块 HTTP 处理器
type SchoolYearHandler struct {
	schoolYearSvc service.SchoolYearService
}

// NewSchoolYearHandler 创建 SchoolYearHandler
func NewSchoolYearHandler(schoolYearSvc service.SchoolYearService) *SchoolYearHandler {
	return &SchoolYearHandler{schoolYearSvc: schoolYearSvc}
}

// ListSchoolYears 获取学年列表
// GET /api/v1/school-years
func (h *SchoolYearHandler) ListSchoolYears(c *gin.Context) {
	years, err := h.schoolYearSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": years})
}

// GetSchoolYear 获取学年详情
// GET /api/v1/school-years/:id
func (h *SchoolYearHandler) GetSchoolYear(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学年ID不能为空")
		return
	}

	year, err := h.schoolYearSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSchoolYearError(c, err)
		return
	}

	response.OK(c, year)
}

// GetCurrentSchoolYear 获取当前激活学年
// GET /api/v1/school-years/current
func (h *SchoolYearHandler) GetCurrentSchoolYear(c *gin.Context) {
	year, err := h.schoolYearSvc.GetCurrent(c.Request.Context())
	if err != nil {
		h.handleSchoolYearError(c, err)
		return
	}

	response.OK(c, year)
}

// CreateSchoolYear 创建学年及其四个评分期
// POST /api/v1/school-years
func (h *SchoolYearHandler) CreateSchoolYear(c *gin.Context) {
	var req dto.CreateSchoolYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	year, err := h.schoolYearSvc.Create(c.Request.Context(), &req, OperatorID(c))
	if err != nil {
		h.handleSchoolYearError(c, err)
		return
	}

	response.Created(c, year)
}

// ActivateSchoolYear 激活学年（设为当前学年）
// PUT /api/v1/school-years/:id/activate
func (h *SchoolYearHandler) ActivateSchoolYear(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学年ID不能为空")
		return
	}

	if err := h.schoolYearSvc.Activate(c.Request.Context(), id, OperatorID(c)); err != nil {
		h.handleSchoolYearError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListSchoolUnits 获取校区列表
// GET /api/v1/school-units
func (h *SchoolYearHandler) ListSchoolUnits(c *gin.Context) {
	units, err := h.schoolYearSvc.ListUnits(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": units})
}

// handleSchoolYearError 统一处理学年模块业务错误
func (h *SchoolYearHandler) handleSchoolYearError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSchoolYearNotFound):
		response.NotFound(c, 14001, "学年不存在")
	case errors.Is(err, service.ErrSchoolYearDateInvalid):
		response.BadRequest(c, 14002, "学年日期无效")
	case errors.Is(err, service.ErrPeriodsInvalid):
		response.BadRequest(c, 14003, "评分期配置无效：需为 1-4 各一期、日期递增且互不重叠")
	default:
		response.InternalError(c)
	}
}
