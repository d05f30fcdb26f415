package repository

import (
	"context"

	"gorm.io/gorm"

	"shipops_dev_v1/internal/model"
)

// PickCartRepository 拣货车仓储接口
type PickCartRepository interface {
	Create(ctx context.Context, cart *model.PickCart) error
	GetByID(ctx context.Context, id int64) (*model.PickCart, error)
	GetByIDWithCells(ctx context.Context, id int64) (*model.PickCart, error)
	Update(ctx context.Context, cart *model.PickCart) error
	Delete(ctx context.Context, id int64) error

	GetAllWithCells(ctx context.Context) ([]model.PickCart, error)

	// ReplaceCells 整体重写某拣货车的格口列表（事务内完成）
	ReplaceCells(ctx context.Context, cartID int64, cells []model.PickCell) error

	// Reorder 按给定顺序整体重写 sort_order
	Reorder(ctx context.Context, cartIDs []int64) error
}

type pickCartRepo struct {
	db *gorm.DB
}

// NewPickCartRepository 创建拣货车仓储
func NewPickCartRepository(db *gorm.DB) PickCartRepository {
	return &pickCartRepo{db: db}
}

func (r *pickCartRepo) Create(ctx context.Context, cart *model.PickCart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *pickCartRepo) GetByID(ctx context.Context, id int64) (*model.PickCart, error) {
	var cart model.PickCart
	err := r.db.WithContext(ctx).First(&cart, id).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *pickCartRepo) GetByIDWithCells(ctx context.Context, id int64) (*model.PickCart, error) {
	var cart model.PickCart
	err := r.db.WithContext(ctx).
		Preload("Cells", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&cart, id).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *pickCartRepo) Update(ctx context.Context, cart *model.PickCart) error {
	return r.db.WithContext(ctx).Save(cart).Error
}

func (r *pickCartRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&model.PickCell{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PickCart{}, id).Error
	})
}

func (r *pickCartRepo) GetAllWithCells(ctx context.Context) ([]model.PickCart, error) {
	var list []model.PickCart
	err := r.db.WithContext(ctx).
		Preload("Cells", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Order("sort_order ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *pickCartRepo) ReplaceCells(ctx context.Context, cartID int64, cells []model.PickCell) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.PickCell{}).Error; err != nil {
			return err
		}
		for i := range cells {
			cells[i].CartID = cartID
			cells[i].SortOrder = i
		}
		if len(cells) == 0 {
			return nil
		}
		return tx.Create(&cells).Error
	})
}

func (r *pickCartRepo) Reorder(ctx context.Context, cartIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range cartIDs {
			err := tx.Model(&model.PickCart{}).
				Where("id = ?", id).
				Update("sort_order", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
