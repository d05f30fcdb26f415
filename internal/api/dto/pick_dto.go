package dto

// PickCellReq 格口请求
type PickCellReq struct {
	ID       int64  `json:"id,omitempty"`
	Label    string `json:"label" binding:"required"`
	Capacity int    `json:"capacity,omitempty"`
}

// PickCartReq 拣货车请求
type PickCartReq struct {
	Name     string        `json:"name" binding:"required"`
	Location string        `json:"location,omitempty"`
	Active   *bool         `json:"active,omitempty"`
	Cells    []PickCellReq `json:"cells,omitempty"`
}

// PickCellResp 格口响应
type PickCellResp struct {
	ID        int64  `json:"id"`
	Label     string `json:"label"`
	Capacity  int    `json:"capacity"`
	SortOrder int    `json:"sort_order"`
}

// PickCartResp 拣货车响应
type PickCartResp struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Location  string         `json:"location"`
	SortOrder int            `json:"sort_order"`
	Active    bool           `json:"active"`
	Cells     []PickCellResp `json:"cells"`
}

// PickCartReorderReq 拖拽排序请求
type PickCartReorderReq struct {
	CartIDs []int64 `json:"cart_ids" binding:"required"`
}
