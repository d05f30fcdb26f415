package dto

// 服务可达路径
const (
	PathDirect     = "direct"     // 直连 API
	PathAggregator = "aggregator" // 聚合商（ShipEngine）
)

// ==================== 统一账户视图 ====================

// DirectPath 统一服务的直连路径字段
type DirectPath struct {
	Code         string `json:"code"`          // 承运商原生服务代码，如 UPS 的 "03"
	ConnectionID string `json:"connection_id"` // 所属直连连接
}

// AggregatorPath 统一服务的聚合商路径字段
type AggregatorPath struct {
	ServiceCode string `json:"service_code"`
	CarrierID   string `json:"carrier_id"`
	CarrierCode string `json:"carrier_code"`
	CarrierName string `json:"carrier_name"`
}

// UnifiedService 统一服务
// 同一逻辑服务（如 UPS Ground）在两条路径下归并为一条，Key 为规范化标识。
// 路径集合与子记录保持一致：Paths 含 direct 当且仅当 Direct 非空，
// 含 aggregator 当且仅当 Aggregator 非空
type UnifiedService struct {
	Key           string   `json:"key"` // 如 "ups:ground"
	Name          string   `json:"name"`
	Domestic      bool     `json:"domestic"`
	International bool     `json:"international"`
	Paths         []string `json:"paths"`

	Direct     *DirectPath     `json:"direct,omitempty"`
	Aggregator *AggregatorPath `json:"aggregator,omitempty"`
}

// DirectConnectionResp 直连连接响应（不回传 Secret）
type DirectConnectionResp struct {
	ConnectionID        string   `json:"connection_id"`
	Network             string   `json:"network"`
	Nickname            string   `json:"nickname"`
	ClientID            string   `json:"client_id"`
	AccountNumber       string   `json:"account_number"`
	Sandbox             bool     `json:"sandbox"`
	Status              string   `json:"status"`
	StatusMessage       string   `json:"status_message,omitempty"`
	EnabledServiceCodes []string `json:"enabled_service_codes,omitempty"` // 旧版字段，仅展示
}

// UnifiedAccount 统一账户
// 每个真实承运商账户一行（network + 账号分桶），无论由哪一侧上报。
// 普通账户最多各持一个 Direct / ShipEngine 引用；
// marketplace 账户聚合多个钱包代管承运商，无直连引用
type UnifiedAccount struct {
	ID            string `json:"id"` // 分桶键，如 "ups:0V2R99"
	Network       string `json:"network"`
	AccountNumber string `json:"account_number,omitempty"`
	Nickname      string `json:"nickname"`
	IsMarketplace bool   `json:"is_marketplace"`

	Direct             *DirectConnectionResp `json:"direct,omitempty"`
	ShipEngine         *ShipEngineCarrier    `json:"shipengine,omitempty"`
	ShipEngineCarriers []ShipEngineCarrier   `json:"shipengine_carriers,omitempty"` // 仅 marketplace 账户

	Services []UnifiedService `json:"services"`
}

// UnifiedAccountsResponse 统一账户列表响应
type UnifiedAccountsResponse struct {
	Accounts []UnifiedAccount `json:"accounts"`
}

// ==================== 已选服务（持久化） ====================

// FallbackRef 聚合商回退标识
// 首选直连路径时保留，供下游路由在直连失败后改走聚合商
type FallbackRef struct {
	CarrierID   string `json:"carrier_id"`
	CarrierCode string `json:"carrier_code"`
	ServiceCode string `json:"service_code"`
}

// SelectedService 已选服务（落库在 selected_services 设置键下）
// 反规范化：冻结选择时刻的路由信息，下游无需重跑归并即可出单
type SelectedService struct {
	CarrierID   string `json:"carrier_id"`
	CarrierCode string `json:"carrier_code"`
	CarrierName string `json:"carrier_name"`
	ServiceCode string `json:"service_code"`
	ServiceName string `json:"service_name"`

	// 直连路径字段（首选直连时填充）
	DirectConnectionID string `json:"direct_connection_id,omitempty"`
	DirectCode         string `json:"direct_code,omitempty"`

	Fallback *FallbackRef `json:"fallback,omitempty"`
}

// SelectedServicesValue selected_services 设置值的 JSON 结构
type SelectedServicesValue struct {
	Services []SelectedService `json:"services"`
}
