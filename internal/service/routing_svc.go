package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
)

// RoutingService 路由规则服务
// 比价策略 / 重量规则 / 运输方式映射三类规则的 CRUD，
// 外加重量规则的命中解析（供下游出单链路调用）
type RoutingService struct {
	shopperRepo repository.RateShopperRepository
	ruleRepo    repository.WeightRuleRepository
	mappingRepo repository.MethodMappingRepository
}

// NewRoutingService 创建路由规则服务
func NewRoutingService(
	shopperRepo repository.RateShopperRepository,
	ruleRepo repository.WeightRuleRepository,
	mappingRepo repository.MethodMappingRepository,
) *RoutingService {
	return &RoutingService{
		shopperRepo: shopperRepo,
		ruleRepo:    ruleRepo,
		mappingRepo: mappingRepo,
	}
}

// ==================== RateShopper ====================

// ListRateShoppers 获取全部比价策略
func (s *RoutingService) ListRateShoppers(ctx context.Context) ([]dto.RateShopperResp, error) {
	list, err := s.shopperRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RateShopperResp, 0, len(list))
	for i := range list {
		resp = append(resp, convertRateShopperToResp(&list[i]))
	}
	return resp, nil
}

// CreateRateShopper 创建比价策略
func (s *RoutingService) CreateRateShopper(ctx context.Context, req *dto.RateShopperReq) (*dto.RateShopperResp, error) {
	shopper := &model.RateShopper{
		Name:          req.Name,
		Enabled:       true,
		ServiceKeys:   req.ServiceKeys,
		MarkupPercent: req.MarkupPercent,
	}
	if req.Enabled != nil {
		shopper.Enabled = *req.Enabled
	}
	if err := s.shopperRepo.Create(ctx, shopper); err != nil {
		return nil, fmt.Errorf("创建比价策略失败: %w", err)
	}
	resp := convertRateShopperToResp(shopper)
	return &resp, nil
}

// UpdateRateShopper 更新比价策略
func (s *RoutingService) UpdateRateShopper(ctx context.Context, id int64, req *dto.RateShopperReq) (*dto.RateShopperResp, error) {
	shopper, err := s.shopperRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("比价策略不存在")
		}
		return nil, err
	}

	shopper.Name = req.Name
	shopper.ServiceKeys = req.ServiceKeys
	shopper.MarkupPercent = req.MarkupPercent
	if req.Enabled != nil {
		shopper.Enabled = *req.Enabled
	}
	if err := s.shopperRepo.Update(ctx, shopper); err != nil {
		return nil, fmt.Errorf("更新比价策略失败: %w", err)
	}
	resp := convertRateShopperToResp(shopper)
	return &resp, nil
}

// DeleteRateShopper 删除比价策略
func (s *RoutingService) DeleteRateShopper(ctx context.Context, id int64) error {
	if err := s.shopperRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除比价策略失败: %w", err)
	}
	return nil
}

// ==================== WeightRule ====================

// ListWeightRules 获取全部重量规则
func (s *RoutingService) ListWeightRules(ctx context.Context) ([]dto.WeightRuleResp, error) {
	list, err := s.ruleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.WeightRuleResp, 0, len(list))
	for i := range list {
		resp = append(resp, convertWeightRuleToResp(&list[i]))
	}
	return resp, nil
}

// CreateWeightRule 创建重量规则
func (s *RoutingService) CreateWeightRule(ctx context.Context, req *dto.WeightRuleReq) (*dto.WeightRuleResp, error) {
	if err := validateWeightRange(req.MinWeightLb, req.MaxWeightLb); err != nil {
		return nil, err
	}
	rule := &model.WeightRule{
		Name:        req.Name,
		MinWeightLb: req.MinWeightLb,
		MaxWeightLb: req.MaxWeightLb,
		CarrierCode: req.CarrierCode,
		ServiceCode: req.ServiceCode,
		Priority:    req.Priority,
		Enabled:     true,
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("创建重量规则失败: %w", err)
	}
	resp := convertWeightRuleToResp(rule)
	return &resp, nil
}

// UpdateWeightRule 更新重量规则
func (s *RoutingService) UpdateWeightRule(ctx context.Context, id int64, req *dto.WeightRuleReq) (*dto.WeightRuleResp, error) {
	if err := validateWeightRange(req.MinWeightLb, req.MaxWeightLb); err != nil {
		return nil, err
	}
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("重量规则不存在")
		}
		return nil, err
	}

	rule.Name = req.Name
	rule.MinWeightLb = req.MinWeightLb
	rule.MaxWeightLb = req.MaxWeightLb
	rule.CarrierCode = req.CarrierCode
	rule.ServiceCode = req.ServiceCode
	rule.Priority = req.Priority
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("更新重量规则失败: %w", err)
	}
	resp := convertWeightRuleToResp(rule)
	return &resp, nil
}

// DeleteWeightRule 删除重量规则
func (s *RoutingService) DeleteWeightRule(ctx context.Context, id int64) error {
	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除重量规则失败: %w", err)
	}
	return nil
}

// ResolveWeightRule 按订单重量解析命中的规则
// 区间为 [min, max)，max 为 0 表示不设上限；多条命中时取优先级最高的
func (s *RoutingService) ResolveWeightRule(ctx context.Context, weightLb float64) (*dto.WeightRuleResp, error) {
	rules, err := s.ruleRepo.GetEnabled(ctx)
	if err != nil {
		return nil, err
	}

	// GetEnabled 已按 priority DESC 排序，第一条命中即是结果
	for i := range rules {
		rule := rules[i]
		if weightLb < rule.MinWeightLb {
			continue
		}
		if rule.MaxWeightLb > 0 && weightLb >= rule.MaxWeightLb {
			continue
		}
		resp := convertWeightRuleToResp(&rule)
		return &resp, nil
	}
	return nil, nil
}

func validateWeightRange(min, max float64) error {
	if min < 0 {
		return errors.New("min_weight_lb 不能为负")
	}
	if max > 0 && max <= min {
		return errors.New("max_weight_lb 必须大于 min_weight_lb")
	}
	return nil
}

// ==================== ShippingMethodMapping ====================

// ListMethodMappings 获取全部运输方式映射
func (s *RoutingService) ListMethodMappings(ctx context.Context) ([]dto.MethodMappingResp, error) {
	list, err := s.mappingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MethodMappingResp, 0, len(list))
	for i := range list {
		resp = append(resp, convertMethodMappingToResp(&list[i]))
	}
	return resp, nil
}

// CreateMethodMapping 创建运输方式映射
func (s *RoutingService) CreateMethodMapping(ctx context.Context, req *dto.MethodMappingReq) (*dto.MethodMappingResp, error) {
	mapping := &model.ShippingMethodMapping{
		StoreMethod: req.StoreMethod,
		CarrierCode: req.CarrierCode,
		ServiceCode: req.ServiceCode,
		Enabled:     true,
	}
	if req.Enabled != nil {
		mapping.Enabled = *req.Enabled
	}
	if err := s.mappingRepo.Create(ctx, mapping); err != nil {
		return nil, fmt.Errorf("创建运输方式映射失败: %w", err)
	}
	resp := convertMethodMappingToResp(mapping)
	return &resp, nil
}

// UpdateMethodMapping 更新运输方式映射
func (s *RoutingService) UpdateMethodMapping(ctx context.Context, id int64, req *dto.MethodMappingReq) (*dto.MethodMappingResp, error) {
	mapping, err := s.mappingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("运输方式映射不存在")
		}
		return nil, err
	}

	mapping.StoreMethod = req.StoreMethod
	mapping.CarrierCode = req.CarrierCode
	mapping.ServiceCode = req.ServiceCode
	if req.Enabled != nil {
		mapping.Enabled = *req.Enabled
	}
	if err := s.mappingRepo.Update(ctx, mapping); err != nil {
		return nil, fmt.Errorf("更新运输方式映射失败: %w", err)
	}
	resp := convertMethodMappingToResp(mapping)
	return &resp, nil
}

// DeleteMethodMapping 删除运输方式映射
func (s *RoutingService) DeleteMethodMapping(ctx context.Context, id int64) error {
	if err := s.mappingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除运输方式映射失败: %w", err)
	}
	return nil
}

// ==================== 转换方法 ====================

func convertRateShopperToResp(shopper *model.RateShopper) dto.RateShopperResp {
	return dto.RateShopperResp{
		ID:            shopper.ID,
		Name:          shopper.Name,
		Enabled:       shopper.Enabled,
		ServiceKeys:   shopper.ServiceKeys,
		MarkupPercent: shopper.MarkupPercent,
		SortOrder:     shopper.SortOrder,
	}
}

func convertWeightRuleToResp(rule *model.WeightRule) dto.WeightRuleResp {
	return dto.WeightRuleResp{
		ID:          rule.ID,
		Name:        rule.Name,
		MinWeightLb: rule.MinWeightLb,
		MaxWeightLb: rule.MaxWeightLb,
		CarrierCode: rule.CarrierCode,
		ServiceCode: rule.ServiceCode,
		Priority:    rule.Priority,
		Enabled:     rule.Enabled,
	}
}

func convertMethodMappingToResp(mapping *model.ShippingMethodMapping) dto.MethodMappingResp {
	return dto.MethodMappingResp{
		ID:          mapping.ID,
		StoreMethod: mapping.StoreMethod,
		CarrierCode: mapping.CarrierCode,
		ServiceCode: mapping.ServiceCode,
		Enabled:     mapping.Enabled,
	}
}
