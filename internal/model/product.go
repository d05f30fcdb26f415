package model

import "github.com/lib/pq"

// 产品类目（杯数统计只计 tumbler/bottle）
const (
	CategoryTumbler   = "tumbler"
	CategoryBottle    = "bottle"
	CategoryAccessory = "accessory"
	CategoryOther     = "other"
)

// Product 可售产品（装箱矩阵的枚举输入）
type Product struct {
	BaseModel

	SKU      string `gorm:"size:50;uniqueIndex;not null;comment:SKU"`
	Name     string `gorm:"size:255;not null;comment:产品名称"`
	Category string `gorm:"size:20;index;default:other;comment:tumbler/bottle/accessory/other"`

	// 单件体积（立方英寸）与重量
	VolumeCuIn float64 `gorm:"comment:单件体积(立方英寸)"`
	WeightLb   float64 `gorm:"comment:单件重量(lb)"`

	Tags pq.StringArray `gorm:"type:text[]"`

	// 缺省值由服务层在创建时填充，列上不挂数据库默认值
	Active bool `gorm:"comment:是否参与装箱枚举"`
}

func (Product) TableName() string {
	return "products"
}
