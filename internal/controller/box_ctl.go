package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/service"
)

// BoxController 箱型配置与装箱矩阵接口
type BoxController struct {
	boxFitSvc *service.BoxFitService
}

func NewBoxController(boxFitSvc *service.BoxFitService) *BoxController {
	return &BoxController{boxFitSvc: boxFitSvc}
}

// ==================== 箱型配置 ====================

// GetBoxes 获取箱型列表
// @Summary 获取箱型列表
// @Description 按 sort_order 返回全部箱型（含可用容积）
// @Tags BoxConfig (箱型)
// @Produce json
// @Success 200 {array} dto.BoxConfigResp "箱型列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/box-config [get]
func (c *BoxController) GetBoxes(ctx *gin.Context) {
	resp, err := c.boxFitSvc.ListBoxes(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SaveBox 创建或更新箱型
// @Summary 创建或更新箱型
// @Description 带 id 为更新，否则新建；体积由长宽高自动计算
// @Tags BoxConfig (箱型)
// @Accept json
// @Produce json
// @Param request body dto.BoxConfigReq true "箱型参数"
// @Success 200 {object} dto.BoxConfigResp "保存结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "保存失败"
// @Router /api/box-config [post]
func (c *BoxController) SaveBox(ctx *gin.Context) {
	var req dto.BoxConfigReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.boxFitSvc.SaveBox(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteBox 删除箱型
// @Summary 删除箱型
// @Description 删除箱型及其全部装箱反馈
// @Tags BoxConfig (箱型)
// @Produce json
// @Param id path int true "箱型ID"
// @Success 200 {object} map[string]string "{"message": "箱型已删除"}"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 500 {object} map[string]string "删除失败"
// @Router /api/box-config/{id} [delete]
func (c *BoxController) DeleteBox(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的箱型ID"})
		return
	}

	if err := c.boxFitSvc.DeleteBox(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "箱型已删除"})
}

// ReorderBoxes 箱型排序
// @Summary 箱型排序
// @Description 按传入的 ID 顺序整体重写 sort_order
// @Tags BoxConfig (箱型)
// @Accept json
// @Produce json
// @Param request body dto.BoxReorderReq true "新顺序"
// @Success 200 {object} map[string]string "{"message": "排序已保存"}"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "排序失败"
// @Router /api/box-config/reorder [post]
func (c *BoxController) ReorderBoxes(ctx *gin.Context) {
	var req dto.BoxReorderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.boxFitSvc.ReorderBoxes(ctx.Request.Context(), req.BoxIDs); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "排序已保存"})
}

// ==================== 装箱反馈 ====================

// SaveFeedback 保存装箱反馈
// @Summary 保存装箱反馈
// @Description 仓库实测结果覆盖体积判定（confirmed/rejected），同箱型同组合保留最新一条
// @Tags BoxConfig (箱型)
// @Accept json
// @Produce json
// @Param request body dto.BoxFitFeedbackReq true "反馈"
// @Success 200 {object} map[string]string "{"message": "反馈已保存"}"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "保存失败"
// @Router /api/box-config/feedback [post]
func (c *BoxController) SaveFeedback(ctx *gin.Context) {
	var req dto.BoxFitFeedbackReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.boxFitSvc.SaveFeedback(ctx.Request.Context(), &req); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "反馈已保存"})
}

// ==================== 装箱矩阵 ====================

// GetMatrix 获取装箱矩阵
// @Summary 获取装箱矩阵
// @Description 枚举活跃产品的全部组合（总件数上限10，sticker 类单品上限2），按箱型逐格判定，分页返回
// @Tags BoxConfig (箱型)
// @Produce json
// @Param page query int false "页码，从1开始"
// @Param page_size query int false "每页行数，默认50"
// @Success 200 {object} dto.BoxFitMatrixResponse "装箱矩阵"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/box-config/matrix [get]
func (c *BoxController) GetMatrix(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "50"))

	resp, err := c.boxFitSvc.GetMatrix(ctx.Request.Context(), page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
