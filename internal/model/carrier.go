package model

import (
	"time"

	"github.com/lib/pq"
)

// ==================== 承运商网络常量 ====================

// 承运商网络标识（统一账户分桶的第一维度）
const (
	NetworkUPS   = "ups"
	NetworkFedEx = "fedex"
	NetworkUSPS  = "usps"
	NetworkDHL   = "dhl"
	NetworkOther = "other" // 无法识别的承运商代码归入此桶
)

// 直连连接状态
const (
	ConnectionStatusUntested  = "untested"  // 未测试
	ConnectionStatusConnected = "connected" // 测试通过
	ConnectionStatusError     = "error"     // 测试失败
)

// ==================== DirectConnection 直连凭证 ====================

// DirectConnection 承运商直连 API 凭证
// 用户自行填写的 Client ID/Secret，绕过聚合商直接调用承运商官方 API
type DirectConnection struct {
	BaseModel

	// 对外暴露的连接标识（dc-xxxx），避免泄露自增主键
	ConnectionID string `gorm:"size:64;uniqueIndex;not null;comment:连接唯一标识"`

	Network  string `gorm:"size:20;index;not null;comment:承运商网络 ups/fedex"`
	Nickname string `gorm:"size:100;comment:显示昵称"`

	// API 凭证
	ClientID      string `gorm:"size:255;not null;comment:OAuth Client ID"`
	ClientSecret  string `gorm:"size:255;not null;comment:OAuth Client Secret"`
	AccountNumber string `gorm:"size:50;comment:承运商账号"`
	Sandbox       bool   `gorm:"default:false;comment:是否沙箱环境"`

	// 连接状态
	Status        string     `gorm:"size:20;default:untested;comment:connected/error/untested"`
	StatusMessage string     `gorm:"size:500;comment:最近一次测试返回信息"`
	LastTestedAt  *time.Time `gorm:"comment:最近测试时间"`

	// 旧版按连接启用的服务列表（已被应用级 selected_services 取代，仅保留存储）
	EnabledServiceCodes pq.StringArray `gorm:"type:text[]"`
}

func (DirectConnection) TableName() string {
	return "direct_connections"
}
