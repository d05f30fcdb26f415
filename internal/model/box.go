package model

// 装箱反馈状态
const (
	BoxFitFeedbackConfirmed = "confirmed" // 人工确认能装下
	BoxFitFeedbackRejected  = "rejected"  // 人工确认装不下
)

// BoxConfig 包装箱配置
type BoxConfig struct {
	BaseModel

	Name string `gorm:"size:100;not null;comment:箱型名称"`

	// 尺寸（英寸）
	LengthIn float64 `gorm:"comment:长(in)"`
	WidthIn  float64 `gorm:"comment:宽(in)"`
	HeightIn float64 `gorm:"comment:高(in)"`

	// 容积（立方英寸），录入时按尺寸计算后落库
	VolumeCuIn float64 `gorm:"comment:容积(立方英寸)"`

	// 装填效率（0-1），可用容积 = 容积 × 效率
	PackingEfficiency float64 `gorm:"default:0.8;comment:装填效率系数"`

	// 仅限单杯：组合杯数不等于 1 时不可用
	SingleCupOnly bool `gorm:"default:false;comment:仅限单杯"`

	MaxWeightLb float64 `gorm:"comment:最大承重(lb)"`
	SortOrder   int     `gorm:"default:0;index;comment:拖拽排序位置"`
	Active      bool    `gorm:"comment:是否启用"`
}

func (BoxConfig) TableName() string {
	return "box_configs"
}

// BoxFitFeedback 装箱矩阵人工反馈
// 对某个 (组合, 箱型) 的计算结果做人工覆盖，展示时优先于容积计算
type BoxFitFeedback struct {
	BaseModel

	BoxID          int64  `gorm:"index;not null;comment:关联箱型ID"`
	CombinationKey string `gorm:"size:500;index;not null;comment:组合规范化键"`
	Status         string `gorm:"size:20;not null;comment:confirmed/rejected"`
	Note           string `gorm:"size:500;comment:备注"`
}

func (BoxFitFeedback) TableName() string {
	return "box_fit_feedbacks"
}
