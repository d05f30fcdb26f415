package model

import "gorm.io/datatypes"

// 预定义设置键
const (
	SettingKeySelectedServices = "selected_services" // 应用级已启用服务列表
)

// Setting 通用键值设置
// value 为 JSON blob，selected_services 等结构化设置通过 service 层的
// 类型化访问器读写，不直接操作原始 JSON
type Setting struct {
	BaseModel

	Key   string         `gorm:"size:100;uniqueIndex;not null;comment:设置键"`
	Value datatypes.JSON `gorm:"type:jsonb;comment:设置值"`
}

func (Setting) TableName() string {
	return "settings"
}
