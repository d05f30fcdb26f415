package model

// PickCart 仓库拣货车
type PickCart struct {
	BaseModel

	Name      string `gorm:"size:100;not null;comment:拣货车名称"`
	Location  string `gorm:"size:100;comment:所在区域"`
	SortOrder int    `gorm:"default:0;index;comment:拖拽排序位置"`
	Active    bool   `gorm:"comment:是否启用"`

	// 关联格口（一对多）
	Cells []PickCell `gorm:"foreignKey:CartID"`
}

func (PickCart) TableName() string {
	return "pick_carts"
}

// PickCell 拣货车格口
type PickCell struct {
	BaseModel

	CartID int64     `gorm:"index;not null;comment:关联拣货车ID"`
	Cart   *PickCart `gorm:"foreignKey:CartID"`

	Label     string `gorm:"size:50;not null;comment:格口编号"`
	Capacity  int    `gorm:"default:1;comment:可容纳订单数"`
	SortOrder int    `gorm:"default:0;index;comment:格口顺序"`
}

func (PickCell) TableName() string {
	return "pick_cells"
}
