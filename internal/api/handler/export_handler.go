package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/akiblasco/SchedulerUBC/internal/dto"
	"github.com/akiblasco/SchedulerUBC/internal/service"
	"github.com/akiblasco/SchedulerUBC/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

var exportContentTypes = map[string]string{
	service.ExportFormatCSV:  "text/csv; charset=utf-8",
	service.ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	service.ExportFormatICS:  "text/calendar; charset=utf-8",
}

// ExportSchedule 导出排期表
// GET /api/v1/export/schedule?format=csv|xlsx|ics
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeExportFormat, "format 仅支持 csv、xlsx、ics")
		return
	}
	format := req.Format
	if format == "" {
		format = service.ExportFormatCSV
	}

	buf, filename, err := h.exportSvc.Export(c.Request.Context(), format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	contentType := exportContentTypes[format]
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportFormat):
		response.BadRequest(c, codeExportFormat, "format 仅支持 csv、xlsx、ics")
	default:
		response.InternalError(c)
	}
}
