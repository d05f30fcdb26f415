package repository

import (
	"context"

	"gorm.io/gorm"

	"shipops_dev_v1/internal/model"
)

// ==================== BoxConfig 接口定义 ====================

// BoxConfigRepository 箱型配置仓储接口
type BoxConfigRepository interface {
	Create(ctx context.Context, box *model.BoxConfig) error
	GetByID(ctx context.Context, id int64) (*model.BoxConfig, error)
	Update(ctx context.Context, box *model.BoxConfig) error
	Delete(ctx context.Context, id int64) error

	GetAll(ctx context.Context) ([]model.BoxConfig, error)
	GetActive(ctx context.Context) ([]model.BoxConfig, error)

	// Reorder 按给定顺序整体重写 sort_order（事务内完成，失败则整体回滚）
	Reorder(ctx context.Context, boxIDs []int64) error
}

type boxConfigRepo struct {
	db *gorm.DB
}

// NewBoxConfigRepository 创建箱型配置仓储
func NewBoxConfigRepository(db *gorm.DB) BoxConfigRepository {
	return &boxConfigRepo{db: db}
}

func (r *boxConfigRepo) Create(ctx context.Context, box *model.BoxConfig) error {
	return r.db.WithContext(ctx).Create(box).Error
}

func (r *boxConfigRepo) GetByID(ctx context.Context, id int64) (*model.BoxConfig, error) {
	var box model.BoxConfig
	err := r.db.WithContext(ctx).First(&box, id).Error
	if err != nil {
		return nil, err
	}
	return &box, nil
}

func (r *boxConfigRepo) Update(ctx context.Context, box *model.BoxConfig) error {
	return r.db.WithContext(ctx).Save(box).Error
}

func (r *boxConfigRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.BoxConfig{}, id).Error
}

func (r *boxConfigRepo) GetAll(ctx context.Context) ([]model.BoxConfig, error) {
	var list []model.BoxConfig
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *boxConfigRepo) GetActive(ctx context.Context) ([]model.BoxConfig, error) {
	var list []model.BoxConfig
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *boxConfigRepo) Reorder(ctx context.Context, boxIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range boxIDs {
			err := tx.Model(&model.BoxConfig{}).
				Where("id = ?", id).
				Update("sort_order", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ==================== BoxFitFeedback 接口定义 ====================

// BoxFitFeedbackRepository 装箱反馈仓储接口
type BoxFitFeedbackRepository interface {
	Upsert(ctx context.Context, feedback *model.BoxFitFeedback) error
	GetAll(ctx context.Context) ([]model.BoxFitFeedback, error)
	DeleteByBoxID(ctx context.Context, boxID int64) error
}

type boxFitFeedbackRepo struct {
	db *gorm.DB
}

// NewBoxFitFeedbackRepository 创建装箱反馈仓储
func NewBoxFitFeedbackRepository(db *gorm.DB) BoxFitFeedbackRepository {
	return &boxFitFeedbackRepo{db: db}
}

// Upsert 同一 (箱型, 组合) 只保留最新一条反馈
func (r *boxFitFeedbackRepo) Upsert(ctx context.Context, feedback *model.BoxFitFeedback) error {
	var existing model.BoxFitFeedback
	err := r.db.WithContext(ctx).
		Where("box_id = ? AND combination_key = ?", feedback.BoxID, feedback.CombinationKey).
		First(&existing).Error
	if err == nil {
		existing.Status = feedback.Status
		existing.Note = feedback.Note
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *boxFitFeedbackRepo) GetAll(ctx context.Context) ([]model.BoxFitFeedback, error) {
	var list []model.BoxFitFeedback
	err := r.db.WithContext(ctx).Find(&list).Error
	return list, err
}

func (r *boxFitFeedbackRepo) DeleteByBoxID(ctx context.Context, boxID int64) error {
	return r.db.WithContext(ctx).
		Where("box_id = ?", boxID).
		Delete(&model.BoxFitFeedback{}).Error
}
