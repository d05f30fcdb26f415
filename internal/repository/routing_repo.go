package repository

import (
	"context"

	"gorm.io/gorm"

	"shipops_dev_v1/internal/model"
)

// ==================== RateShopper ====================

// RateShopperRepository 比价策略仓储接口
type RateShopperRepository interface {
	Create(ctx context.Context, shopper *model.RateShopper) error
	GetByID(ctx context.Context, id int64) (*model.RateShopper, error)
	Update(ctx context.Context, shopper *model.RateShopper) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]model.RateShopper, error)
}

type rateShopperRepo struct {
	db *gorm.DB
}

// NewRateShopperRepository 创建比价策略仓储
func NewRateShopperRepository(db *gorm.DB) RateShopperRepository {
	return &rateShopperRepo{db: db}
}

func (r *rateShopperRepo) Create(ctx context.Context, shopper *model.RateShopper) error {
	return r.db.WithContext(ctx).Create(shopper).Error
}

func (r *rateShopperRepo) GetByID(ctx context.Context, id int64) (*model.RateShopper, error) {
	var shopper model.RateShopper
	err := r.db.WithContext(ctx).First(&shopper, id).Error
	if err != nil {
		return nil, err
	}
	return &shopper, nil
}

func (r *rateShopperRepo) Update(ctx context.Context, shopper *model.RateShopper) error {
	return r.db.WithContext(ctx).Save(shopper).Error
}

func (r *rateShopperRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.RateShopper{}, id).Error
}

func (r *rateShopperRepo) GetAll(ctx context.Context) ([]model.RateShopper, error) {
	var list []model.RateShopper
	err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&list).Error
	return list, err
}

// ==================== WeightRule ====================

// WeightRuleRepository 重量规则仓储接口
type WeightRuleRepository interface {
	Create(ctx context.Context, rule *model.WeightRule) error
	GetByID(ctx context.Context, id int64) (*model.WeightRule, error)
	Update(ctx context.Context, rule *model.WeightRule) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]model.WeightRule, error)
	GetEnabled(ctx context.Context) ([]model.WeightRule, error)
}

type weightRuleRepo struct {
	db *gorm.DB
}

// NewWeightRuleRepository 创建重量规则仓储
func NewWeightRuleRepository(db *gorm.DB) WeightRuleRepository {
	return &weightRuleRepo{db: db}
}

func (r *weightRuleRepo) Create(ctx context.Context, rule *model.WeightRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *weightRuleRepo) GetByID(ctx context.Context, id int64) (*model.WeightRule, error) {
	var rule model.WeightRule
	err := r.db.WithContext(ctx).First(&rule, id).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *weightRuleRepo) Update(ctx context.Context, rule *model.WeightRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *weightRuleRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.WeightRule{}, id).Error
}

func (r *weightRuleRepo) GetAll(ctx context.Context) ([]model.WeightRule, error) {
	var list []model.WeightRule
	err := r.db.WithContext(ctx).Order("priority DESC, id ASC").Find(&list).Error
	return list, err
}

func (r *weightRuleRepo) GetEnabled(ctx context.Context) ([]model.WeightRule, error) {
	var list []model.WeightRule
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("priority DESC, id ASC").
		Find(&list).Error
	return list, err
}

// ==================== ShippingMethodMapping ====================

// MethodMappingRepository 运输方式映射仓储接口
type MethodMappingRepository interface {
	Create(ctx context.Context, mapping *model.ShippingMethodMapping) error
	GetByID(ctx context.Context, id int64) (*model.ShippingMethodMapping, error)
	GetByStoreMethod(ctx context.Context, storeMethod string) (*model.ShippingMethodMapping, error)
	Update(ctx context.Context, mapping *model.ShippingMethodMapping) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]model.ShippingMethodMapping, error)
}

type methodMappingRepo struct {
	db *gorm.DB
}

// NewMethodMappingRepository 创建运输方式映射仓储
func NewMethodMappingRepository(db *gorm.DB) MethodMappingRepository {
	return &methodMappingRepo{db: db}
}

func (r *methodMappingRepo) Create(ctx context.Context, mapping *model.ShippingMethodMapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

func (r *methodMappingRepo) GetByID(ctx context.Context, id int64) (*model.ShippingMethodMapping, error) {
	var mapping model.ShippingMethodMapping
	err := r.db.WithContext(ctx).First(&mapping, id).Error
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (r *methodMappingRepo) GetByStoreMethod(ctx context.Context, storeMethod string) (*model.ShippingMethodMapping, error) {
	var mapping model.ShippingMethodMapping
	err := r.db.WithContext(ctx).
		Where("store_method = ?", storeMethod).
		First(&mapping).Error
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (r *methodMappingRepo) Update(ctx context.Context, mapping *model.ShippingMethodMapping) error {
	return r.db.WithContext(ctx).Save(mapping).Error
}

func (r *methodMappingRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ShippingMethodMapping{}, id).Error
}

func (r *methodMappingRepo) GetAll(ctx context.Context) ([]model.ShippingMethodMapping, error) {
	var list []model.ShippingMethodMapping
	err := r.db.WithContext(ctx).Order("store_method ASC").Find(&list).Error
	return list, err
}
