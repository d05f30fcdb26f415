package service

import (
	"context"
	"encoding/json"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
)

// ==================== 测试辅助 ====================

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.Setting{})
	return db
}

// ==================== 单元测试 ====================

func TestSettingsService_UpsertAndGetAll(t *testing.T) {
	db := setupSettingsTestDB(t)
	svc := NewSettingsService(repository.NewSettingRepository(db))
	ctx := context.Background()

	if err := svc.Upsert(ctx, "pack_station", json.RawMessage(`{"printer":"zebra"}`)); err != nil {
		t.Fatalf("写入设置失败: %v", err)
	}

	// 非法 JSON 被拒绝
	if err := svc.Upsert(ctx, "bad", json.RawMessage(`{broken`)); err == nil {
		t.Error("非法 JSON 应报错")
	}

	// 同键覆盖
	if err := svc.Upsert(ctx, "pack_station", json.RawMessage(`{"printer":"rollo"}`)); err != nil {
		t.Fatalf("覆盖设置失败: %v", err)
	}

	resp, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("查询设置失败: %v", err)
	}
	if len(resp.Settings) != 1 {
		t.Fatalf("同键设置应只留一条, got %d", len(resp.Settings))
	}

	var value map[string]string
	if err := json.Unmarshal(resp.Settings[0].Value, &value); err != nil {
		t.Fatalf("解析设置值失败: %v", err)
	}
	if value["printer"] != "rollo" {
		t.Errorf("应保留最新值: got %s", value["printer"])
	}
}

func TestSettingsService_SelectedServicesRoundTrip(t *testing.T) {
	db := setupSettingsTestDB(t)
	svc := NewSettingsService(repository.NewSettingRepository(db))
	ctx := context.Background()

	// 键不存在时返回空列表而不是错误
	services, err := svc.GetSelectedServices(ctx)
	if err != nil {
		t.Fatalf("读取空设置失败: %v", err)
	}
	if len(services) != 0 {
		t.Errorf("空设置应返回空列表, got %d", len(services))
	}

	saved := []dto.SelectedService{
		{
			CarrierID:          "dc-1",
			CarrierCode:        "ups-direct",
			CarrierName:        "我的 UPS 直连 (UPS)",
			ServiceCode:        "03",
			ServiceName:        "UPS Ground",
			DirectConnectionID: "dc-1",
			DirectCode:         "03",
			Fallback: &dto.FallbackRef{
				CarrierID:   "se-1",
				CarrierCode: "ups",
				ServiceCode: "ups_ground",
			},
		},
		{
			CarrierID:   "se-2",
			CarrierCode: "stamps_com",
			CarrierName: "ShipEngine USPS",
			ServiceCode: "usps_priority_mail",
			ServiceName: "USPS Priority Mail",
		},
	}
	if err := svc.SaveSelectedServices(ctx, saved); err != nil {
		t.Fatalf("保存已选服务失败: %v", err)
	}

	loaded, err := svc.GetSelectedServices(ctx)
	if err != nil {
		t.Fatalf("读取已选服务失败: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("已选服务数量错误: got %d", len(loaded))
	}
	if loaded[0].DirectConnectionID != "dc-1" || loaded[0].Fallback == nil {
		t.Errorf("直连路径字段丢失: %+v", loaded[0])
	}
	if loaded[0].Fallback.ServiceCode != "ups_ground" {
		t.Errorf("回退信息丢失: %+v", loaded[0].Fallback)
	}
	if loaded[1].DirectConnectionID != "" || loaded[1].Fallback != nil {
		t.Errorf("聚合商条目不应带直连字段: %+v", loaded[1])
	}
}
