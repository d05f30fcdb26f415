package repository

import (
	"context"

	"gorm.io/gorm"

	"shipops_dev_v1/internal/model"
)

// ==================== DirectConnection 接口定义 ====================

// DirectConnectionRepository 直连凭证仓储接口
type DirectConnectionRepository interface {
	// 基础 CRUD
	Create(ctx context.Context, conn *model.DirectConnection) error
	GetByConnectionID(ctx context.Context, connectionID string) (*model.DirectConnection, error)
	Update(ctx context.Context, conn *model.DirectConnection) error
	UpdateFields(ctx context.Context, connectionID string, fields map[string]interface{}) error
	Delete(ctx context.Context, connectionID string) error

	// 查询
	GetAll(ctx context.Context) ([]model.DirectConnection, error)
	GetByNetwork(ctx context.Context, network string) ([]model.DirectConnection, error)
	GetAllGroupedByNetwork(ctx context.Context) (map[string][]model.DirectConnection, error)
}

// ==================== DirectConnection 实现 ====================

type directConnectionRepo struct {
	db *gorm.DB
}

// NewDirectConnectionRepository 创建直连凭证仓储
func NewDirectConnectionRepository(db *gorm.DB) DirectConnectionRepository {
	return &directConnectionRepo{db: db}
}

func (r *directConnectionRepo) Create(ctx context.Context, conn *model.DirectConnection) error {
	return r.db.WithContext(ctx).Create(conn).Error
}

func (r *directConnectionRepo) GetByConnectionID(ctx context.Context, connectionID string) (*model.DirectConnection, error) {
	var conn model.DirectConnection
	err := r.db.WithContext(ctx).
		Where("connection_id = ?", connectionID).
		First(&conn).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *directConnectionRepo) Update(ctx context.Context, conn *model.DirectConnection) error {
	return r.db.WithContext(ctx).Save(conn).Error
}

func (r *directConnectionRepo) UpdateFields(ctx context.Context, connectionID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.DirectConnection{}).
		Where("connection_id = ?", connectionID).
		Updates(fields).Error
}

func (r *directConnectionRepo) Delete(ctx context.Context, connectionID string) error {
	return r.db.WithContext(ctx).
		Where("connection_id = ?", connectionID).
		Delete(&model.DirectConnection{}).Error
}

func (r *directConnectionRepo) GetAll(ctx context.Context) ([]model.DirectConnection, error) {
	var list []model.DirectConnection
	err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *directConnectionRepo) GetByNetwork(ctx context.Context, network string) ([]model.DirectConnection, error) {
	var list []model.DirectConnection
	err := r.db.WithContext(ctx).
		Where("network = ?", network).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *directConnectionRepo) GetAllGroupedByNetwork(ctx context.Context) (map[string][]model.DirectConnection, error) {
	list, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]model.DirectConnection)
	for _, conn := range list {
		grouped[conn.Network] = append(grouped[conn.Network], conn)
	}
	return grouped, nil
}
