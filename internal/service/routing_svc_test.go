package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
)

// ==================== 测试辅助 ====================

// 重量规则和方式映射不含数组字段，可直接用业务模型迁移
func setupRoutingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.WeightRule{}, &model.ShippingMethodMapping{})
	return db
}

func newRoutingTestService(db *gorm.DB) *RoutingService {
	return NewRoutingService(
		nil, // 比价策略用例不走数据库
		repository.NewWeightRuleRepository(db),
		repository.NewMethodMappingRepository(db),
	)
}

// ==================== 重量规则 ====================

func TestRoutingService_WeightRuleCRUD(t *testing.T) {
	db := setupRoutingTestDB(t)
	svc := newRoutingTestService(db)
	ctx := context.Background()

	created, err := svc.CreateWeightRule(ctx, &dto.WeightRuleReq{
		Name:        "轻包裹走 Ground Advantage",
		MinWeightLb: 0,
		MaxWeightLb: 1,
		CarrierCode: "stamps_com",
		ServiceCode: "usps_ground_advantage",
		Priority:    10,
	})
	if err != nil {
		t.Fatalf("创建重量规则失败: %v", err)
	}
	if !created.Enabled {
		t.Error("规则默认应启用")
	}

	// 非法区间被拒绝
	if _, err := svc.CreateWeightRule(ctx, &dto.WeightRuleReq{
		Name: "bad", MinWeightLb: 5, MaxWeightLb: 3,
		CarrierCode: "ups", ServiceCode: "ups_ground",
	}); err == nil {
		t.Error("max < min 的区间应报错")
	}

	disabled := false
	updated, err := svc.UpdateWeightRule(ctx, created.ID, &dto.WeightRuleReq{
		Name:        created.Name,
		MinWeightLb: 0,
		MaxWeightLb: 2,
		CarrierCode: created.CarrierCode,
		ServiceCode: created.ServiceCode,
		Priority:    created.Priority,
		Enabled:     &disabled,
	})
	if err != nil {
		t.Fatalf("更新重量规则失败: %v", err)
	}
	if updated.MaxWeightLb != 2 || updated.Enabled {
		t.Errorf("更新结果错误: %+v", updated)
	}

	if err := svc.DeleteWeightRule(ctx, created.ID); err != nil {
		t.Fatalf("删除重量规则失败: %v", err)
	}
	rules, _ := svc.ListWeightRules(ctx)
	if len(rules) != 0 {
		t.Errorf("删除后应无规则, got %d", len(rules))
	}
}

func TestRoutingService_CreateDisabledStaysDisabled(t *testing.T) {
	db := setupRoutingTestDB(t)
	svc := newRoutingTestService(db)
	ctx := context.Background()

	// 显式停用创建后落库仍是停用，不能被数据库默认值翻成启用
	off := false
	created, err := svc.CreateWeightRule(ctx, &dto.WeightRuleReq{
		Name: "停用规则", MinWeightLb: 0, MaxWeightLb: 1,
		CarrierCode: "ups", ServiceCode: "ups_ground",
		Enabled: &off,
	})
	if err != nil {
		t.Fatalf("创建停用规则失败: %v", err)
	}
	if created.Enabled {
		t.Error("创建返回值应为停用")
	}

	// 重新读库确认持久化状态
	rules, err := svc.ListWeightRules(ctx)
	if err != nil {
		t.Fatalf("查询规则失败: %v", err)
	}
	if len(rules) != 1 || rules[0].Enabled {
		t.Errorf("停用规则落库后被翻转: %+v", rules)
	}

	// 停用规则不参与重量解析
	rule, err := svc.ResolveWeightRule(ctx, 0.5)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if rule != nil {
		t.Errorf("停用规则不应命中: %+v", rule)
	}

	if _, err := svc.CreateMethodMapping(ctx, &dto.MethodMappingReq{
		StoreMethod: "Economy", CarrierCode: "ups", ServiceCode: "ups_ground",
		Enabled: &off,
	}); err != nil {
		t.Fatalf("创建停用映射失败: %v", err)
	}
	mappings, _ := svc.ListMethodMappings(ctx)
	if len(mappings) != 1 || mappings[0].Enabled {
		t.Errorf("停用映射落库后被翻转: %+v", mappings)
	}
}

func TestRoutingService_ResolveWeightRule(t *testing.T) {
	db := setupRoutingTestDB(t)
	svc := newRoutingTestService(db)
	ctx := context.Background()

	mustCreate := func(name string, min, max float64, priority int, enabled bool) {
		t.Helper()
		e := enabled
		_, err := svc.CreateWeightRule(ctx, &dto.WeightRuleReq{
			Name: name, MinWeightLb: min, MaxWeightLb: max,
			CarrierCode: "ups", ServiceCode: "ups_ground",
			Priority: priority, Enabled: &e,
		})
		if err != nil {
			t.Fatalf("创建规则 %s 失败: %v", name, err)
		}
	}

	mustCreate("0-1lb", 0, 1, 10, true)
	mustCreate("1-5lb", 1, 5, 10, true)
	mustCreate("1-5lb 高优先", 1, 5, 20, true)
	mustCreate("1-5lb 已停用", 1, 5, 99, false)
	mustCreate("5lb 以上", 5, 0, 5, true) // max=0 不设上限

	// 多条命中取最高优先级，停用规则不参与
	rule, err := svc.ResolveWeightRule(ctx, 2.5)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if rule == nil || rule.Name != "1-5lb 高优先" {
		t.Errorf("应命中最高优先级规则: %+v", rule)
	}

	// 区间 [min, max)：边界值归上一档
	rule, _ = svc.ResolveWeightRule(ctx, 1)
	if rule == nil || rule.Name != "1-5lb 高优先" {
		t.Errorf("重量 1 应落入 [1,5): %+v", rule)
	}

	// 无上限规则
	rule, _ = svc.ResolveWeightRule(ctx, 42)
	if rule == nil || rule.Name != "5lb 以上" {
		t.Errorf("超重包裹应命中无上限规则: %+v", rule)
	}

	// 未命中返回 nil 而不是错误
	db.Exec("DELETE FROM weight_rules")
	rule, err = svc.ResolveWeightRule(ctx, 2.5)
	if err != nil {
		t.Fatalf("空规则表解析失败: %v", err)
	}
	if rule != nil {
		t.Errorf("无规则时应返回 nil: %+v", rule)
	}
}

// ==================== 运输方式映射 ====================

func TestRoutingService_MethodMappingCRUD(t *testing.T) {
	db := setupRoutingTestDB(t)
	svc := newRoutingTestService(db)
	ctx := context.Background()

	created, err := svc.CreateMethodMapping(ctx, &dto.MethodMappingReq{
		StoreMethod: "Standard Shipping",
		CarrierCode: "stamps_com",
		ServiceCode: "usps_ground_advantage",
	})
	if err != nil {
		t.Fatalf("创建映射失败: %v", err)
	}

	// store_method 唯一
	if _, err := svc.CreateMethodMapping(ctx, &dto.MethodMappingReq{
		StoreMethod: "Standard Shipping",
		CarrierCode: "ups",
		ServiceCode: "ups_ground",
	}); err == nil {
		t.Error("重复 store_method 应报错")
	}

	updated, err := svc.UpdateMethodMapping(ctx, created.ID, &dto.MethodMappingReq{
		StoreMethod: "Standard Shipping",
		CarrierCode: "ups",
		ServiceCode: "ups_ground",
	})
	if err != nil {
		t.Fatalf("更新映射失败: %v", err)
	}
	if updated.CarrierCode != "ups" {
		t.Errorf("更新结果错误: %+v", updated)
	}

	list, _ := svc.ListMethodMappings(ctx)
	if len(list) != 1 {
		t.Fatalf("映射数量错误: got %d", len(list))
	}

	if err := svc.DeleteMethodMapping(ctx, created.ID); err != nil {
		t.Fatalf("删除映射失败: %v", err)
	}
}
