package service

import (
	"time"

	"github.com/akiblasco/SchedulerUBC/internal/dto"
	"github.com/akiblasco/SchedulerUBC/internal/model"
	"github.com/akiblasco/SchedulerUBC/internal/scheduler"
)

// ── model ↔ scheduler ──

func toSchedulerCourse(c *model.Course) scheduler.Course {
	out := scheduler.Course{
		ID:           c.CourseID,
		Code:         c.Code,
		Name:         c.Name,
		StudentCount: c.StudentCount,
		Duration:     c.Duration,
		Constraints:  []string(c.Constraints),
	}
	if c.PreferredTime != nil {
		out.PreferredTime = *c.PreferredTime
	}
	return out
}

func toSchedulerCourses(courses []model.Course) []scheduler.Course {
	out := make([]scheduler.Course, 0, len(courses))
	for i := range courses {
		out = append(out, toSchedulerCourse(&courses[i]))
	}
	return out
}

func toSchedulerRooms(rooms []model.Room) []scheduler.Room {
	out := make([]scheduler.Room, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, scheduler.Room{
			ID:           r.RoomID,
			Name:         r.Name,
			Capacity:     r.Capacity,
			Features:     []string(r.Features),
			Availability: r.IsAvailable,
		})
	}
	return out
}

func toSchedulerSlots(slots []model.ExamSlot) []scheduler.ExamSlot {
	out := make([]scheduler.ExamSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, scheduler.ExamSlot{
			CourseID:  s.CourseID,
			RoomID:    s.RoomID,
			Date:      s.ExamDate,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return out
}

func toConflictModel(c scheduler.Conflict, callerID string) model.Conflict {
	m := model.Conflict{
		Kind:         string(c.Kind),
		CourseCode:   c.CourseCode,
		StudentCount: c.StudentCount,
		HorizonDays:  c.HorizonDays,
		Message:      c.Message(),
	}
	if c.CourseID != "" {
		id := c.CourseID
		m.CourseID = &id
	}
	if c.RoomID != "" {
		id := c.RoomID
		m.RoomID = &id
	}
	if callerID != "" {
		m.CreatedBy = &callerID
	}
	return m
}

// ── model → dto ──

func toCourseResponse(c *model.Course, slot *model.ExamSlot) dto.CourseResponse {
	resp := dto.CourseResponse{
		ID:           c.CourseID,
		Code:         c.Code,
		Name:         c.Name,
		StudentCount: c.StudentCount,
		Duration:     c.Duration,
		Constraints:  []string(c.Constraints),
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
	if resp.Constraints == nil {
		resp.Constraints = []string{}
	}
	if c.PreferredTime != nil {
		resp.PreferredTime = *c.PreferredTime
	}
	if slot != nil {
		s := toSlotResponse(slot)
		resp.Slot = &s
	}
	return resp
}

func toSlotResponse(s *model.ExamSlot) dto.ExamSlotResponse {
	resp := dto.ExamSlotResponse{
		CourseID:  s.CourseID,
		RoomID:    s.RoomID,
		Date:      s.ExamDate,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
	if s.Room != nil {
		resp.RoomName = s.Room.Name
	}
	return resp
}

func toRoomResponse(r *model.Room) dto.RoomResponse {
	features := []string(r.Features)
	if features == nil {
		features = []string{}
	}
	return dto.RoomResponse{
		ID:          r.RoomID,
		Name:        r.Name,
		Capacity:    r.Capacity,
		Features:    features,
		IsAvailable: r.IsAvailable,
		Version:     r.Version,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
}

func toConflictResponse(c *model.Conflict, index int) dto.ConflictResponse {
	resp := dto.ConflictResponse{
		Index:        index,
		Kind:         c.Kind,
		CourseCode:   c.CourseCode,
		StudentCount: c.StudentCount,
		HorizonDays:  c.HorizonDays,
		Message:      c.Message,
	}
	if c.CourseID != nil {
		resp.CourseID = *c.CourseID
	}
	if c.RoomID != nil {
		resp.RoomID = *c.RoomID
	}
	if !c.CreatedAt.IsZero() {
		resp.CreatedAt = c.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
