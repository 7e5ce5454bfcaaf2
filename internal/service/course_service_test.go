package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/akiblasco/SchedulerUBC/internal/dto"
	"github.com/akiblasco/SchedulerUBC/internal/scheduler"
)

func setupTestCourseService() (CourseService, *mockRepos) {
	repo, mocks := newMockRepository()
	mocks.seedRooms()
	svc := NewCourseService(repo, newTestScheduler(), newTestLocker(), zap.NewNop())
	return svc, mocks
}

func courseReq(code, name string, students int) *dto.CourseRequest {
	return &dto.CourseRequest{
		Code:         strPtr(code),
		Name:         strPtr(name),
		StudentCount: intPtr(students),
	}
}

// ── Validate ──

func TestCourseValidate_CollectsAllErrors(t *testing.T) {
	svc, _ := setupTestCourseService()

	result := svc.Validate(&dto.CourseRequest{
		Code:         strPtr("cpsc110"),
		StudentCount: intPtr(-3),
		Duration:     intPtr(400),
	})

	if result.Valid {
		t.Fatal("期望校验失败")
	}
	want := []string{
		scheduler.ErrMsgCodeFormat,
		scheduler.ErrMsgNameRequired,
		scheduler.ErrMsgStudentsPositive,
		scheduler.ErrMsgDurationOutOfRange,
	}
	if len(result.Errors) != len(want) {
		t.Fatalf("期望 %d 条错误，实际 %v", len(want), result.Errors)
	}
	for i := range want {
		if result.Errors[i] != want[i] {
			t.Errorf("errors[%d] 期望 %q，实际 %q", i, want[i], result.Errors[i])
		}
	}
}

func TestCourseValidate_Valid(t *testing.T) {
	svc, _ := setupTestCourseService()

	result := svc.Validate(courseReq("MATH 200A", "Calculus", 80))
	if !result.Valid || len(result.Errors) != 0 {
		t.Errorf("期望校验通过，实际 %v", result.Errors)
	}
}

// ── Create ──

func TestCourseCreate_Scheduled(t *testing.T) {
	svc, mocks := setupTestCourseService()

	resp, err := svc.Create(context.Background(), courseReq("CPSC 110", "Computation, Programs, and Programming", 300), "admin-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if !resp.Scheduled || resp.Slot == nil {
		t.Fatalf("期望已排期，实际 %+v", resp)
	}
	if resp.Slot.RoomID != "lsc2" || resp.Slot.RoomName != "Life Sciences Centre 2" {
		t.Errorf("期望分配到 lsc2，实际 %s(%s)", resp.Slot.RoomID, resp.Slot.RoomName)
	}
	if resp.Slot.Date != "2024-04-15" || resp.Slot.StartTime != "09:00" || resp.Slot.EndTime != "11:30" {
		t.Errorf("时段不符: %+v", resp.Slot)
	}
	if resp.Course.Duration != scheduler.DefaultExamDuration {
		t.Errorf("未提供时长时应使用默认 %d，实际 %d", scheduler.DefaultExamDuration, resp.Course.Duration)
	}
	if len(mocks.courses.courses) != 1 || len(mocks.slots.slots) != 1 {
		t.Errorf("期望写入 1 门课程和 1 个时段，实际 %d/%d", len(mocks.courses.courses), len(mocks.slots.slots))
	}
	if len(mocks.conflicts.conflicts) != 0 {
		t.Errorf("不应产生冲突，实际 %d", len(mocks.conflicts.conflicts))
	}
}

func TestCourseCreate_FillsDailyTemplate(t *testing.T) {
	svc, _ := setupTestCourseService()
	ctx := context.Background()

	want := []struct{ date, start string }{
		{"2024-04-15", "09:00"},
		{"2024-04-15", "12:00"},
		{"2024-04-15", "14:30"},
		{"2024-04-16", "09:00"},
	}
	for i, w := range want {
		resp, err := svc.Create(ctx, courseReq("CPSC 110", "Intro", 100), "")
		if err != nil {
			t.Fatalf("第 %d 门课程创建失败: %v", i+1, err)
		}
		if resp.Slot == nil || resp.Slot.Date != w.date || resp.Slot.StartTime != w.start {
			t.Errorf("第 %d 门课程期望 %s %s，实际 %+v", i+1, w.date, w.start, resp.Slot)
		}
	}
}

func TestCourseCreate_NoRoom(t *testing.T) {
	svc, mocks := setupTestCourseService()

	resp, err := svc.Create(context.Background(), courseReq("BIOL 112", "Biology", 500), "")
	if err != nil {
		t.Fatalf("排期失败不应返回错误: %v", err)
	}
	if resp.Scheduled || resp.Conflict == nil {
		t.Fatalf("期望记录冲突，实际 %+v", resp)
	}
	if resp.Conflict.Kind != string(scheduler.ConflictRoomExhausted) {
		t.Errorf("期望 room_exhausted，实际 %s", resp.Conflict.Kind)
	}
	if resp.Conflict.Message != "No suitable room found for BIOL 112 (500 students)" {
		t.Errorf("冲突文案不符: %s", resp.Conflict.Message)
	}
	if resp.Conflict.Index != 0 {
		t.Errorf("首条冲突下标应为 0，实际 %d", resp.Conflict.Index)
	}
	if len(mocks.courses.courses) != 1 {
		t.Error("排期失败时课程仍应保存")
	}
	if len(mocks.slots.slots) != 0 {
		t.Error("排期失败时不应生成时段")
	}
}

func TestCourseCreate_SlotExhausted(t *testing.T) {
	svc, mocks := setupTestCourseService()
	ctx := context.Background()

	// 只保留一个考场，填满 14 天 × 3 个时段
	mocks.rooms.rooms = mocks.rooms.rooms[:1]
	for i := 0; i < scheduler.SearchHorizonDays*3; i++ {
		if _, err := svc.Create(ctx, courseReq("CPSC 110", "Intro", 10), ""); err != nil {
			t.Fatalf("填充第 %d 门课程失败: %v", i+1, err)
		}
	}

	resp, err := svc.Create(ctx, courseReq("CPSC 121", "Models", 10), "")
	if err != nil {
		t.Fatalf("Create 不应返回错误: %v", err)
	}
	if resp.Conflict == nil || resp.Conflict.Kind != string(scheduler.ConflictSlotExhausted) {
		t.Fatalf("期望 slot_exhausted，实际 %+v", resp.Conflict)
	}
	if resp.Conflict.Message != "No available time slot found for CPSC 121 in the next 14 days" {
		t.Errorf("冲突文案不符: %s", resp.Conflict.Message)
	}
	if resp.Conflict.RoomID != "lsc2" {
		t.Errorf("冲突应记录已选考场，实际 %q", resp.Conflict.RoomID)
	}
}

func TestCourseCreate_ValidationError(t *testing.T) {
	svc, mocks := setupTestCourseService()

	_, err := svc.Create(context.Background(), &dto.CourseRequest{Code: strPtr("CPSC 110")}, "")

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}
	if !errors.Is(err, ErrCourseInvalid) {
		t.Error("ValidationError 应可匹配 ErrCourseInvalid")
	}
	if len(verr.Errors) != 2 {
		t.Errorf("期望 2 条错误（名称、人数），实际 %v", verr.Errors)
	}
	if len(mocks.courses.courses) != 0 {
		t.Error("校验失败时不应写库")
	}
}

func TestCourseCreate_CustomDuration(t *testing.T) {
	svc, _ := setupTestCourseService()

	req := courseReq("PHYS 101", "Energy", 50)
	req.Duration = intPtr(360)
	resp, err := svc.Create(context.Background(), req, "")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Slot == nil || resp.Slot.StartTime != "09:00" || resp.Slot.EndTime != "15:00" {
		t.Errorf("360 分钟考试期望 09:00-15:00，实际 %+v", resp.Slot)
	}
}

// ── GetByID / List ──

func TestCourseGetByID(t *testing.T) {
	svc, _ := setupTestCourseService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, courseReq("CPSC 110", "Intro", 100), "")

	got, err := svc.GetByID(ctx, created.Course.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if got.Slot == nil || got.Slot.RoomName != "Life Sciences Centre 2" {
		t.Errorf("期望携带时段与考场名，实际 %+v", got.Slot)
	}

	if _, err := svc.GetByID(ctx, "missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestCourseList_KeepsOrderAndUnscheduled(t *testing.T) {
	svc, _ := setupTestCourseService()
	ctx := context.Background()

	_, _ = svc.Create(ctx, courseReq("CPSC 110", "Intro", 100), "")
	_, _ = svc.Create(ctx, courseReq("BIOL 112", "Biology", 999), "")

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 门课程，实际 %d", len(list))
	}
	if list[0].Code != "CPSC 110" || list[0].Slot == nil {
		t.Errorf("第一门课程应已排期: %+v", list[0])
	}
	if list[1].Code != "BIOL 112" || list[1].Slot != nil {
		t.Errorf("第二门课程应未排期: %+v", list[1])
	}
}

// ── Delete ──

func TestCourseDelete_RemovesSlotAndFreesIt(t *testing.T) {
	svc, mocks := setupTestCourseService()
	ctx := context.Background()

	first, _ := svc.Create(ctx, courseReq("CPSC 110", "Intro", 100), "")
	if err := svc.Delete(ctx, first.Course.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(mocks.courses.courses) != 0 || len(mocks.slots.slots) != 0 {
		t.Errorf("删除后应无课程与时段，实际 %d/%d", len(mocks.courses.courses), len(mocks.slots.slots))
	}

	// 释放的时段可被下一门课程复用
	second, _ := svc.Create(ctx, courseReq("CPSC 121", "Models", 100), "")
	if second.Slot == nil || second.Slot.StartTime != "09:00" || second.Slot.Date != "2024-04-15" {
		t.Errorf("期望复用 2024-04-15 09:00，实际 %+v", second.Slot)
	}
}

func TestCourseDelete_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}
