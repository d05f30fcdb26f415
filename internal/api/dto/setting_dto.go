package dto

import "encoding/json"

// SettingItem 单条设置
type SettingItem struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// SettingsResponse 设置列表响应
type SettingsResponse struct {
	Settings []SettingItem `json:"settings"`
}

// UpsertSettingReq 写入设置请求
type UpsertSettingReq struct {
	Key   string          `json:"key" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

// SaveSelectedServicesReq 保存已选服务请求
type SaveSelectedServicesReq struct {
	Services []SelectedService `json:"services" binding:"required"`
}

// ==================== 产品 ====================

// ProductReq 产品请求
type ProductReq struct {
	SKU        string   `json:"sku" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	Category   string   `json:"category,omitempty"`
	VolumeCuIn float64  `json:"volume_cu_in" binding:"required,gt=0"`
	WeightLb   float64  `json:"weight_lb,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Active     *bool    `json:"active,omitempty"`
}

// ProductResp 产品响应
type ProductResp struct {
	ID         int64    `json:"id"`
	SKU        string   `json:"sku"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	VolumeCuIn float64  `json:"volume_cu_in"`
	WeightLb   float64  `json:"weight_lb"`
	Tags       []string `json:"tags,omitempty"`
	Active     bool     `json:"active"`
}
