package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shipops_dev_v1/internal/model"
)

// SettingRepository 设置仓储接口
type SettingRepository interface {
	GetByKey(ctx context.Context, key string) (*model.Setting, error)
	GetAll(ctx context.Context) ([]model.Setting, error)
	Upsert(ctx context.Context, key string, value datatypes.JSON) error
	Delete(ctx context.Context, key string) error
}

type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepository 创建设置仓储
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) GetByKey(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepo) GetAll(ctx context.Context) ([]model.Setting, error) {
	var list []model.Setting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&list).Error
	return list, err
}

// Upsert 按 key 写入，存在则覆盖 value
func (r *settingRepo) Upsert(ctx context.Context, key string, value datatypes.JSON) error {
	setting := model.Setting{
		Key:   key,
		Value: value,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}

func (r *settingRepo) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.Setting{}).Error
}
