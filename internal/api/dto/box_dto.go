package dto

// ==================== 箱型配置 ====================

// BoxConfigReq 创建/更新箱型请求
type BoxConfigReq struct {
	ID                int64   `json:"id,omitempty"`
	Name              string  `json:"name" binding:"required"`
	LengthIn          float64 `json:"length_in" binding:"required,gt=0"`
	WidthIn           float64 `json:"width_in" binding:"required,gt=0"`
	HeightIn          float64 `json:"height_in" binding:"required,gt=0"`
	PackingEfficiency float64 `json:"packing_efficiency,omitempty"` // 缺省 0.8
	SingleCupOnly     bool    `json:"single_cup_only"`
	MaxWeightLb       float64 `json:"max_weight_lb,omitempty"`
	Active            *bool   `json:"active,omitempty"`
}

// BoxConfigResp 箱型响应
type BoxConfigResp struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	LengthIn          float64 `json:"length_in"`
	WidthIn           float64 `json:"width_in"`
	HeightIn          float64 `json:"height_in"`
	VolumeCuIn        float64 `json:"volume_cu_in"`
	UsableVolumeCuIn  float64 `json:"usable_volume_cu_in"`
	PackingEfficiency float64 `json:"packing_efficiency"`
	SingleCupOnly     bool    `json:"single_cup_only"`
	MaxWeightLb       float64 `json:"max_weight_lb"`
	SortOrder         int     `json:"sort_order"`
	Active            bool    `json:"active"`
}

// BoxReorderReq 拖拽排序请求：按新顺序给出全部箱型 ID
type BoxReorderReq struct {
	BoxIDs []int64 `json:"box_ids" binding:"required"`
}

// BoxFitFeedbackReq 装箱反馈请求
type BoxFitFeedbackReq struct {
	BoxID          int64  `json:"box_id" binding:"required"`
	CombinationKey string `json:"combination_key" binding:"required"`
	Status         string `json:"status" binding:"required"` // confirmed / rejected
	Note           string `json:"note,omitempty"`
}

// ==================== 装箱矩阵 ====================

// ComboItem 组合中的一项产品
type ComboItem struct {
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
}

// BoxFitCell 矩阵单元：某组合对某箱型的判定
type BoxFitCell struct {
	BoxID  int64  `json:"box_id"`
	Status string `json:"status"` // fits / too_big / cup_limit / confirmed / rejected
}

// BoxFitRow 矩阵一行：一个组合及其对全部箱型的判定
type BoxFitRow struct {
	Key        string       `json:"key"`
	Items      []ComboItem  `json:"items"`
	TotalUnits int          `json:"total_units"`
	VolumeCuIn float64      `json:"volume_cu_in"`
	CupCount   int          `json:"cup_count"`
	Cells      []BoxFitCell `json:"cells"`
}

// BoxFitMatrixResponse 装箱矩阵响应（分页）
type BoxFitMatrixResponse struct {
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Boxes    []BoxConfigResp `json:"boxes"`
	Rows     []BoxFitRow     `json:"rows"`
}
