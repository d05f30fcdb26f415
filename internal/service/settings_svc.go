package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
)

// SettingsService 设置服务
// 通用键值读写之外，为 selected_services 提供类型化访问器，
// 避免调用方直接摸原始 JSON blob
type SettingsService struct {
	settingRepo repository.SettingRepository
}

// NewSettingsService 创建设置服务
func NewSettingsService(settingRepo repository.SettingRepository) *SettingsService {
	return &SettingsService{settingRepo: settingRepo}
}

// ==================== 通用键值 ====================

// GetAll 获取全部设置
func (s *SettingsService) GetAll(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.SettingsResponse{
		Settings: make([]dto.SettingItem, 0, len(settings)),
	}
	for _, setting := range settings {
		resp.Settings = append(resp.Settings, dto.SettingItem{
			Key:   setting.Key,
			Value: json.RawMessage(setting.Value),
		})
	}
	return resp, nil
}

// Upsert 写入任意设置键
func (s *SettingsService) Upsert(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return errors.New("设置值不是合法 JSON")
	}
	if err := s.settingRepo.Upsert(ctx, key, datatypes.JSON(value)); err != nil {
		return fmt.Errorf("写入设置失败: %w", err)
	}
	return nil
}

// ==================== selected_services 类型化访问器 ====================

// GetSelectedServices 读取已选服务列表，设置键不存在时返回空列表
func (s *SettingsService) GetSelectedServices(ctx context.Context) ([]dto.SelectedService, error) {
	setting, err := s.settingRepo.GetByKey(ctx, model.SettingKeySelectedServices)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.SelectedService{}, nil
		}
		return nil, err
	}

	var value dto.SelectedServicesValue
	if err := json.Unmarshal(setting.Value, &value); err != nil {
		return nil, fmt.Errorf("解析 selected_services 失败: %w", err)
	}
	if value.Services == nil {
		value.Services = []dto.SelectedService{}
	}
	return value.Services, nil
}

// SaveSelectedServices 整体覆盖已选服务列表
// 只由承运商设置页的显式用户操作触发，冻结选择时刻的路由快照
func (s *SettingsService) SaveSelectedServices(ctx context.Context, services []dto.SelectedService) error {
	data, err := json.Marshal(dto.SelectedServicesValue{Services: services})
	if err != nil {
		return fmt.Errorf("序列化 selected_services 失败: %w", err)
	}
	if err := s.settingRepo.Upsert(ctx, model.SettingKeySelectedServices, datatypes.JSON(data)); err != nil {
		return fmt.Errorf("保存 selected_services 失败: %w", err)
	}
	return nil
}
