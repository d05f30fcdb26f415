package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/service"
)

// CarrierController 统一承运商账户接口
type CarrierController struct {
	unifySvc   *service.UnifyService
	shipEngine *service.ShipEngineClient
}

func NewCarrierController(unifySvc *service.UnifyService, shipEngine *service.ShipEngineClient) *CarrierController {
	return &CarrierController{
		unifySvc:   unifySvc,
		shipEngine: shipEngine,
	}
}

// GetCarriers 获取统一承运商账户列表
// @Summary 获取统一承运商账户列表
// @Description 合并聚合商账户与直连凭证，输出统一账户视图（含去重后的服务列表）
// @Tags Carrier (承运商)
// @Produce json
// @Param refresh query bool false "true 时跳过缓存强制刷新"
// @Success 200 {object} dto.UnifiedAccountsResponse "统一账户列表"
// @Failure 500 {object} map[string]string "聚合商拉取失败"
// @Router /api/carriers [get]
func (c *CarrierController) GetCarriers(ctx *gin.Context) {
	refresh := ctx.Query("refresh") == "true"

	resp, err := c.unifySvc.GetUnifiedAccounts(ctx.Request.Context(), refresh)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ConnectCarrier 连接聚合商承运商
// @Summary 连接聚合商承运商
// @Description 把承运商凭证托管到聚合商，成功后账户出现在统一列表中
// @Tags Carrier (承运商)
// @Accept json
// @Produce json
// @Param request body dto.ConnectCarrierRequest true "承运商凭证"
// @Success 200 {object} dto.ConnectCarrierResponse "连接结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "连接失败"
// @Router /api/carriers/connect [post]
func (c *CarrierController) ConnectCarrier(ctx *gin.Context) {
	var req dto.ConnectCarrierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.shipEngine.ConnectCarrier(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.unifySvc.InvalidateCache()
	ctx.JSON(http.StatusOK, resp)
}

// DisconnectCarrier 断开聚合商承运商
// @Summary 断开聚合商承运商
// @Description 从聚合商移除托管账户，不影响同账号的直连凭证
// @Tags Carrier (承运商)
// @Produce json
// @Param carrier_name query string true "承运商名称（ups/fedex...）"
// @Param carrier_id query string true "聚合商账户ID"
// @Success 200 {object} map[string]string "{"message": "承运商已断开"}"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "断开失败"
// @Router /api/carriers/connect [delete]
func (c *CarrierController) DisconnectCarrier(ctx *gin.Context) {
	carrierName := ctx.Query("carrier_name")
	carrierID := ctx.Query("carrier_id")
	if carrierName == "" || carrierID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "缺少 carrier_name 或 carrier_id"})
		return
	}

	if err := c.shipEngine.DisconnectCarrier(ctx.Request.Context(), carrierName, carrierID); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.unifySvc.InvalidateCache()
	ctx.JSON(http.StatusOK, gin.H{"message": "承运商已断开"})
}
