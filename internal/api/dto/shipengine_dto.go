package dto

// ==================== 通用结构 ====================

// Address 地址（ShipEngine 通用）
type Address struct {
	Name         string `json:"name,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city_locality"`
	StateCode    string `json:"state_province,omitempty"`
	PostalCode   string `json:"postal_code"`
	CountryCode  string `json:"country_code"`
	Phone        string `json:"phone,omitempty"`
}

// Package 包裹
type Package struct {
	WeightLb float64 `json:"weight_lb"`
	LengthIn float64 `json:"length_in,omitempty"`
	WidthIn  float64 `json:"width_in,omitempty"`
	HeightIn float64 `json:"height_in,omitempty"`
}

// ==================== Carrier 承运商账户 ====================

// ShipEngineService 聚合商上报的服务（ShipEngine API）
type ShipEngineService struct {
	CarrierID     string `json:"carrier_id"`
	ServiceCode   string `json:"service_code"`
	Name          string `json:"name"`
	Domestic      bool   `json:"domestic"`
	International bool   `json:"international"`
}

// ShipEngineCarrier 聚合商上报的承运商账户（ShipEngine API）
type ShipEngineCarrier struct {
	CarrierID     string `json:"carrier_id"`
	CarrierCode   string `json:"carrier_code"`
	AccountNumber string `json:"account_number"`
	FriendlyName  string `json:"friendly_name"`
	Nickname      string `json:"nickname"`

	// 钱包/代管标记
	FundingSourceID      string `json:"funding_source_id,omitempty"`
	RequiresFundedAmount bool   `json:"requires_funded_amount"`
	Primary              bool   `json:"primary"`

	Services []ShipEngineService `json:"services"`
}

// ListCarriersResponse 承运商列表响应（ShipEngine API）
type ListCarriersResponse struct {
	Carriers []ShipEngineCarrier `json:"carriers"`
}

// ConnectCarrierRequest 连接聚合商承运商请求
type ConnectCarrierRequest struct {
	CarrierName string            `json:"carrier_name" binding:"required"` // ups, fedex...
	Credentials map[string]string `json:"credentials" binding:"required"`
	Nickname    string            `json:"nickname,omitempty"`
}

// ConnectCarrierResponse 连接响应（ShipEngine API）
type ConnectCarrierResponse struct {
	CarrierID string `json:"carrier_id"`
}

// ==================== Rate 报价 ====================

// ShipEngineRateRequest 报价请求（ShipEngine API）
type ShipEngineRateRequest struct {
	CarrierIDs []string  `json:"carrier_ids"`
	ShipFrom   *Address  `json:"ship_from"`
	ShipTo     *Address  `json:"ship_to"`
	Packages   []Package `json:"packages"`
}

// ShipEngineRate 单条报价（ShipEngine API）
type ShipEngineRate struct {
	RateID       string  `json:"rate_id"`
	CarrierID    string  `json:"carrier_id"`
	CarrierCode  string  `json:"carrier_code"`
	ServiceCode  string  `json:"service_code"`
	ServiceName  string  `json:"service_type"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	DeliveryDays int     `json:"delivery_days"`
}

// ShipEngineRateResponse 报价响应（ShipEngine API）
type ShipEngineRateResponse struct {
	Rates []ShipEngineRate `json:"rates"`
}
