package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/service"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportReportCard 导出学生成绩单 Excel
// GET /api/v1/exports/report-card/:enrollmentID
func (h *ExportHandler) ExportReportCard(c *gin.Context) {
	enrollmentID := c.Param("enrollmentID")
	if enrollmentID == "" {
		response.BadRequest(c, 10001, "注册ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportReportCard(c.Request.Context(), enrollmentID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXLSX(c, filename, buf.Bytes())
}

// ExportDiscrepancies 导出缺勤核对报告 Excel
// GET /api/v1/exports/discrepancies/:classID?bimester=1
func (h *ExportHandler) ExportDiscrepancies(c *gin.Context) {
	classID := c.Param("classID")
	if classID == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	bimester, err := strconv.Atoi(c.Query("bimester"))
	if err != nil {
		response.BadRequest(c, 10001, "bimester 应为 1-4 的整数")
		return
	}

	buf, filename, err := h.exportSvc.ExportDiscrepancies(c.Request.Context(), classID, bimester)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXLSX(c, filename, buf.Bytes())
}

// writeXLSX 设置下载响应头并写出 Excel 内容
func writeXLSX(c *gin.Context, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoGrades):
		response.NotFound(c, 16101, "该注册暂无成绩记录")
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 16001, "注册记录不存在")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 15006, "班级不存在")
	case errors.Is(err, service.ErrBimesterInvalid):
		response.BadRequest(c, 15202, "bimester 应为 1-4 的整数")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
