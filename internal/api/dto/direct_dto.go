package dto

// 直连操作类型（POST /api/carriers/direct 的 action 字段）
const (
	DirectActionAdd             = "add"
	DirectActionSave            = "save"
	DirectActionDelete          = "delete"
	DirectActionTest            = "test"
	DirectActionTestLabel       = "test-label"
	DirectActionValidateAddress = "validate-address"
	DirectActionGetRate         = "get-rate"
	DirectActionRateShop        = "rate-shop"
)

// DirectActionRequest 直连操作请求
// add/save 携带凭证字段；test 系列携带测试参数
type DirectActionRequest struct {
	Carrier string `json:"carrier" binding:"required"` // ups, fedex
	Action  string `json:"action" binding:"required"`

	ConnectionID string `json:"connection_id,omitempty"` // save/delete/test 必填

	// 凭证字段（add/save）
	Nickname            string   `json:"nickname,omitempty"`
	ClientID            string   `json:"client_id,omitempty"`
	ClientSecret        string   `json:"client_secret,omitempty"`
	AccountNumber       string   `json:"account_number,omitempty"`
	Sandbox             bool     `json:"sandbox,omitempty"`
	EnabledServiceCodes []string `json:"enabled_service_codes,omitempty"` // 旧版字段

	// 测试参数（validate-address / get-rate / test-label / rate-shop）
	ServiceCode string   `json:"service_code,omitempty"`
	ShipFrom    *Address `json:"ship_from,omitempty"`
	ShipTo      *Address `json:"ship_to,omitempty"`
	Package     *Package `json:"package,omitempty"`
}

// TestResult 测试类操作的统一结果
// 成功与失败都走 200 返回，由前端统一渲染（不抛 HTTP 错误）
type TestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`

	// 可选负载：报价列表 / 标签地址
	Rates    []ShipEngineRate `json:"rates,omitempty"`
	LabelURL string           `json:"label_url,omitempty"`
}

// DirectConnectionsResponse 直连连接列表响应（按网络分组）
type DirectConnectionsResponse struct {
	Connections map[string][]DirectConnectionResp `json:"connections"`
}
