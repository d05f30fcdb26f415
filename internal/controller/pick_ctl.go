package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/service"
)

// PickCartController 拣货车接口
type PickCartController struct {
	pickSvc *service.PickCartService
}

func NewPickCartController(pickSvc *service.PickCartService) *PickCartController {
	return &PickCartController{pickSvc: pickSvc}
}

// GetCarts 获取拣货车列表
// @Summary 获取拣货车列表
// @Description 按 sort_order 返回全部拣货车及其格口
// @Tags PickCart (拣货车)
// @Produce json
// @Success 200 {array} dto.PickCartResp "拣货车列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/pick-carts [get]
func (c *PickCartController) GetCarts(ctx *gin.Context) {
	resp, err := c.pickSvc.ListCarts(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateCart 创建拣货车
// @Summary 创建拣货车
// @Tags PickCart (拣货车)
// @Accept json
// @Produce json
// @Param request body dto.PickCartReq true "拣货车参数"
// @Success 201 {object} dto.PickCartResp "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "创建失败"
// @Router /api/pick-carts [post]
func (c *PickCartController) CreateCart(ctx *gin.Context) {
	var req dto.PickCartReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.pickSvc.CreateCart(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// UpdateCart 更新拣货车
// @Summary 更新拣货车
// @Description 请求带 cells 时按传入顺序整体覆盖格口列表
// @Tags PickCart (拣货车)
// @Accept json
// @Produce json
// @Param id path int true "拣货车ID"
// @Param request body dto.PickCartReq true "拣货车参数"
// @Success 200 {object} dto.PickCartResp "更新结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "更新失败"
// @Router /api/pick-carts/{id} [put]
func (c *PickCartController) UpdateCart(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的拣货车ID"})
		return
	}

	var req dto.PickCartReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.pickSvc.UpdateCart(ctx.Request.Context(), id, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteCart 删除拣货车
// @Summary 删除拣货车
// @Description 级联删除全部格口
// @Tags PickCart (拣货车)
// @Produce json
// @Param id path int true "拣货车ID"
// @Success 200 {object} map[string]string "{"message": "拣货车已删除"}"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 500 {object} map[string]string "删除失败"
// @Router /api/pick-carts/{id} [delete]
func (c *PickCartController) DeleteCart(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的拣货车ID"})
		return
	}

	if err := c.pickSvc.DeleteCart(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "拣货车已删除"})
}

// ReorderCarts 拣货车排序
// @Summary 拣货车排序
// @Description 按传入的 ID 顺序整体重写 sort_order
// @Tags PickCart (拣货车)
// @Accept json
// @Produce json
// @Param request body dto.PickCartReorderReq true "新顺序"
// @Success 200 {object} map[string]string "{"message": "排序已保存"}"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "排序失败"
// @Router /api/pick-carts/reorder [post]
func (c *PickCartController) ReorderCarts(ctx *gin.Context) {
	var req dto.PickCartReorderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.pickSvc.ReorderCarts(ctx.Request.Context(), req.CartIDs); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "排序已保存"})
}
