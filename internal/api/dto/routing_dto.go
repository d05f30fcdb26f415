package dto

// ==================== RateShopper ====================

// RateShopperReq 比价策略请求
type RateShopperReq struct {
	Name          string   `json:"name" binding:"required"`
	Enabled       *bool    `json:"enabled,omitempty"`
	ServiceKeys   []string `json:"service_keys" binding:"required"`
	MarkupPercent float64  `json:"markup_percent,omitempty"`
}

// RateShopperResp 比价策略响应
type RateShopperResp struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Enabled       bool     `json:"enabled"`
	ServiceKeys   []string `json:"service_keys"`
	MarkupPercent float64  `json:"markup_percent"`
	SortOrder     int      `json:"sort_order"`
}

// ==================== WeightRule ====================

// WeightRuleReq 重量规则请求
type WeightRuleReq struct {
	Name        string  `json:"name" binding:"required"`
	MinWeightLb float64 `json:"min_weight_lb"`
	MaxWeightLb float64 `json:"max_weight_lb"` // 0 表示不设上限
	CarrierCode string  `json:"carrier_code" binding:"required"`
	ServiceCode string  `json:"service_code" binding:"required"`
	Priority    int     `json:"priority"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

// WeightRuleResp 重量规则响应
type WeightRuleResp struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	MinWeightLb float64 `json:"min_weight_lb"`
	MaxWeightLb float64 `json:"max_weight_lb"`
	CarrierCode string  `json:"carrier_code"`
	ServiceCode string  `json:"service_code"`
	Priority    int     `json:"priority"`
	Enabled     bool    `json:"enabled"`
}

// ==================== ShippingMethodMapping ====================

// MethodMappingReq 运输方式映射请求
type MethodMappingReq struct {
	StoreMethod string `json:"store_method" binding:"required"`
	CarrierCode string `json:"carrier_code" binding:"required"`
	ServiceCode string `json:"service_code" binding:"required"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

// MethodMappingResp 运输方式映射响应
type MethodMappingResp struct {
	ID          int64  `json:"id"`
	StoreMethod string `json:"store_method"`
	CarrierCode string `json:"carrier_code"`
	ServiceCode string `json:"service_code"`
	Enabled     bool   `json:"enabled"`
}
