package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/service"
)

// RoutingController 路由规则接口（比价策略 / 重量规则 / 运输方式映射）
type RoutingController struct {
	routingSvc *service.RoutingService
}

func NewRoutingController(routingSvc *service.RoutingService) *RoutingController {
	return &RoutingController{routingSvc: routingSvc}
}

// ==================== RateShopper ====================

// GetRateShoppers 获取比价策略列表
// @Summary 获取比价策略列表
// @Tags Routing (路由规则)
// @Produce json
// @Success 200 {array} dto.RateShopperResp "比价策略列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/rate-shoppers [get]
func (c *RoutingController) GetRateShoppers(ctx *gin.Context) {
	resp, err := c.routingSvc.ListRateShoppers(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateRateShopper 创建比价策略
// @Summary 创建比价策略
// @Tags Routing (路由规则)
// @Accept json
// @Produce json
// @Param request body dto.RateShopperReq true "策略参数"
// @Success 201 {object} dto.RateShopperResp "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "创建失败"
// @Router /api/rate-shoppers [post]
func (c *RoutingController) CreateRateShopper(ctx *gin.Context) {
	var req dto.RateShopperReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.routingSvc.CreateRateShopper(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// UpdateRateShopper 更新比价策略
// @Summary 更新比价策略
// @Tags Routing (路由规则)
// @Accept json
// @Produce json
// @Param id path int true "策略ID"
// @Param request body dto.RateShopperReq true "策略参数"
// @Success 200 {object} dto.RateShopperResp "更新结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "更新失败"
// @Router /api/rate-shoppers/{id} [put]
func (c *RoutingController) UpdateRateShopper(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的策略ID"})
		return
	}

	var req dto.RateShopperReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.routingSvc.UpdateRateShopper(ctx.Request.Context(), id, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteRateShopper 删除比价策略
// @Summary 删除比价策略
// @Tags Routing (路由规则)
// @Produce json
// @Param id path int true "策略ID"
// @Success 200 {object} map[string]string "{"message": "比价策略已删除"}"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 500 {object} map[string]string "删除失败"
// @Router /api/rate-shoppers/{id} [delete]
func (c *RoutingController) DeleteRateShopper(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的策略ID"})
		return
	}

	if err := c.routingSvc.DeleteRateShopper(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "比价策略已删除"})
}

// ==================== WeightRule ====================

// GetWeightRules 获取重量规则列表
// @Summary 获取重量规则列表
// @Tags Routing (路由规则)
// @Produce json
// @Success 200 {array} dto.WeightRuleResp "重量规则列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/weight-rules [get]
func (c *RoutingController) GetWeightRules(ctx *gin.Context) {
	resp, err := c.routingSvc.ListWeightRules(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateWeightRule 创建重量规则
// @Summary 创建重量规则
// @Tags Routing (路由规则)
// @Accept json
// @Produce json
// @Param request body dto.WeightRuleReq true "规则参数"
// @Success 201 {object} dto.WeightRuleResp "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "创建失败"
// @Router /api/weight-rules [post]
func (c *RoutingController) CreateWeightRule(ctx *gin.Context) {
	var req dto.WeightRuleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.routingSvc.CreateWeightRule(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// UpdateWeightRule 更新重量规则
// @Summary 更新重量规则
// @Tags Routing (路由规则)
// @Accept json
// @Produce json
// @Param id path int true "规则ID"
// @Param request body dto.WeightRuleReq true "规则参数"
// @Success 200 {object} dto.WeightRuleResp "更新结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "更新失败"
// @Router /api/weight-rules/{id} [put]
func (c *RoutingController) UpdateWeightRule(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的规则ID"})
		return
	}

	var req dto.WeightRuleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.routingSvc.UpdateWeightRule(ctx.Request.Context(), id, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteWeightRule 删除重量规则
// @Summary 删除重量规则
// @Tags Routing (路由规则)
// @Produce json
// @Param id path int true "规则ID"
// @Success 200 {object} map[string]string "{"message": "重量规则已删除"}"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 500 {object} map[string]string "删除失败"
// @Router /api/weight-rules/{id} [delete]
func (c *RoutingController) DeleteWeightRule(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的规则ID"})
		return
	}

	if err := c.routingSvc.DeleteWeightRule(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "重量规则已删除"})
}

// ResolveWeightRule 按重量解析规则
// @Summary 按重量解析规则
// @Description 返回命中的最高优先级规则，未命中返回空对象
// @Tags Routing (路由规则)
// @Produce json
// @Param weight_lb query number true "订单重量(lb)"
// @Success 200 {object} dto.WeightRuleResp "命中规则"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "解析失败"
// @Router /api/weight-rules/resolve [get]
func (c *RoutingController) ResolveWeightRule(ctx *gin.Context) {
	weight, err := strconv.ParseFloat(ctx.Query("weight_lb"), 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的 weight_lb"})
		return
	}

	rule, err := c.routingSvc.ResolveWeightRule(ctx.Request.Context(), weight)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rule == nil {
		ctx.JSON(http.StatusOK, gin.H{"matched": false})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"matched": true, "rule": rule})
}

// ==================== ShippingMethodMapping ====================

// GetMethodMappings 获取运输方式映射列表
// @Summary 获取运输方式映射列表
// @Tags Routing (路由规则)
// @Produce json
// @Success 200 {array} dto.MethodMappingResp "映射列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/shipping-method-mappings [get]
func (c *RoutingController) GetMethodMappings(ctx *gin.Context) {
	resp, err := c.routingSvc.ListMethodMappings(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateMethodMapping 创建运输方式映射
// @Summary 创建运输方式映射
// @Tags Routing (路由规则)
// @Accept json
// @Produce json
// @Param request body dto.MethodMappingReq true "映射参数"
// @Success 201 {object} dto.MethodMappingResp "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "创建失败"
// @Router /api/shipping-method-mappings [post]
func (c *RoutingController) CreateMethodMapping(ctx *gin.Context) {
	var req dto.MethodMappingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.routingSvc.CreateMethodMapping(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// UpdateMethodMapping 更新运输方式映射
// @Summary 更新运输方式映射
// @Tags Routing (路由规则)
// @Accept json
// @Produce json
// @Param id path int true "映射ID"
// @Param request body dto.MethodMappingReq true "映射参数"
// @Success 200 {object} dto.MethodMappingResp "更新结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "更新失败"
// @Router /api/shipping-method-mappings/{id} [put]
func (c *RoutingController) UpdateMethodMapping(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的映射ID"})
		return
	}

	var req dto.MethodMappingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.routingSvc.UpdateMethodMapping(ctx.Request.Context(), id, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteMethodMapping 删除运输方式映射
// @Summary 删除运输方式映射
// @Tags Routing (路由规则)
// @Produce json
// @Param id path int true "映射ID"
// @Success 200 {object} map[string]string "{"message": "映射已删除"}"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 500 {object} map[string]string "删除失败"
// @Router /api/shipping-method-mappings/{id} [delete]
func (c *RoutingController) DeleteMethodMapping(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的映射ID"})
		return
	}

	if err := c.routingSvc.DeleteMethodMapping(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "映射已删除"})
}
