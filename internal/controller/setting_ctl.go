package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/service"
)

// SettingController 设置接口
type SettingController struct {
	settingsSvc *service.SettingsService
}

func NewSettingController(settingsSvc *service.SettingsService) *SettingController {
	return &SettingController{settingsSvc: settingsSvc}
}

// GetSettings 获取全部设置
// @Summary 获取全部设置
// @Description 返回全部设置键及原始 JSON 值
// @Tags Setting (设置)
// @Produce json
// @Success 200 {object} dto.SettingsResponse "设置列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/settings [get]
func (c *SettingController) GetSettings(ctx *gin.Context) {
	resp, err := c.settingsSvc.GetAll(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpsertSetting 写入设置
// @Summary 写入设置
// @Description 按键整体覆盖设置值（值必须是合法 JSON）
// @Tags Setting (设置)
// @Accept json
// @Produce json
// @Param request body dto.UpsertSettingReq true "设置键值"
// @Success 200 {object} map[string]string "{"message": "设置已保存"}"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "保存失败"
// @Router /api/settings [post]
func (c *SettingController) UpsertSetting(ctx *gin.Context) {
	var req dto.UpsertSettingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.settingsSvc.Upsert(ctx.Request.Context(), req.Key, req.Value); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "设置已保存"})
}

// GetSelectedServices 获取已选服务
// @Summary 获取已选服务
// @Description 读取 selected_services 设置键，不存在时返回空列表
// @Tags Setting (设置)
// @Produce json
// @Success 200 {object} dto.SaveSelectedServicesReq "已选服务列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/settings/selected-services [get]
func (c *SettingController) GetSelectedServices(ctx *gin.Context) {
	services, err := c.settingsSvc.GetSelectedServices(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"services": services})
}

// SaveSelectedServices 保存已选服务
// @Summary 保存已选服务
// @Description 整体覆盖 selected_services，冻结用户勾选时刻的路由快照
// @Tags Setting (设置)
// @Accept json
// @Produce json
// @Param request body dto.SaveSelectedServicesReq true "已选服务列表"
// @Success 200 {object} map[string]string "{"message": "已选服务保存成功"}"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "保存失败"
// @Router /api/settings/selected-services [post]
func (c *SettingController) SaveSelectedServices(ctx *gin.Context) {
	var req dto.SaveSelectedServicesReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.settingsSvc.SaveSelectedServices(ctx.Request.Context(), req.Services); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "已选服务保存成功"})
}
