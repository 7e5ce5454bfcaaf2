package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/akiblasco/SchedulerUBC/internal/service"
	"github.com/akiblasco/SchedulerUBC/pkg/response"
)

// ScheduleHandler 排期表 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// GetSchedule 获取按日期分组的排期表
// GET /api/v1/schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.scheduleSvc.GetSchedule(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, schedule)
}
