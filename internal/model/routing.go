package model

import "github.com/lib/pq"

// ==================== 路由规则模型 ====================

// RateShopper 比价策略
// 在候选服务集合内按实时报价选最便宜的一个（比价执行在下单链路，此处仅配置）
type RateShopper struct {
	BaseModel

	Name string `gorm:"size:100;not null;comment:策略名称"`

	// 缺省启用由服务层在创建时填充；列上不挂数据库默认值，
	// 否则显式创建的停用记录会被默认值翻转成启用
	Enabled bool `gorm:"comment:是否启用"`

	// 参与比价的候选服务（统一服务标识键）
	ServiceKeys pq.StringArray `gorm:"type:text[];comment:候选服务标识列表"`

	// 报价上浮百分比（0 表示按原价）
	MarkupPercent float64 `gorm:"default:0;comment:报价上浮百分比"`

	SortOrder int `gorm:"default:0;index;comment:排序位置"`
}

func (RateShopper) TableName() string {
	return "rate_shoppers"
}

// WeightRule 重量路由规则
// 订单重量落入 [MinWeightLb, MaxWeightLb) 区间时路由到指定服务
type WeightRule struct {
	BaseModel

	Name        string  `gorm:"size:100;not null;comment:规则名称"`
	MinWeightLb float64 `gorm:"comment:最小重量(lb) 含"`
	MaxWeightLb float64 `gorm:"comment:最大重量(lb) 不含，0 表示不设上限"`

	// 命中后的目标服务
	CarrierCode string `gorm:"size:50;not null;comment:承运商代码"`
	ServiceCode string `gorm:"size:50;not null;comment:服务代码"`

	Priority int  `gorm:"default:0;index;comment:优先级 数值大者优先"`
	Enabled  bool `gorm:"comment:是否启用"`
}

func (WeightRule) TableName() string {
	return "weight_rules"
}

// ShippingMethodMapping 店面运输方式映射
// 将店面下单时选择的运输方式名称映射到具体承运商服务
type ShippingMethodMapping struct {
	BaseModel

	StoreMethod string `gorm:"size:100;uniqueIndex;not null;comment:店面运输方式名称"`
	CarrierCode string `gorm:"size:50;not null;comment:承运商代码"`
	ServiceCode string `gorm:"size:50;not null;comment:服务代码"`
	Enabled     bool   `gorm:"comment:是否启用"`
}

func (ShippingMethodMapping) TableName() string {
	return "shipping_method_mappings"
}
