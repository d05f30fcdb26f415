package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/service"
)

// DirectController 直连承运商凭证接口
type DirectController struct {
	directSvc *service.DirectConnectionService
}

func NewDirectController(directSvc *service.DirectConnectionService) *DirectController {
	return &DirectController{directSvc: directSvc}
}

// GetConnections 获取直连凭证列表
// @Summary 获取直连凭证列表
// @Description 按承运商网络分组返回全部直连凭证（脱敏，不含 client_secret）
// @Tags Direct (直连)
// @Produce json
// @Success 200 {object} dto.DirectConnectionsResponse "分组凭证列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/carriers/direct [get]
func (c *DirectController) GetConnections(ctx *gin.Context) {
	resp, err := c.directSvc.GetConnections(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// HandleAction 直连凭证动作分发
// @Summary 直连凭证动作分发
// @Description add/save/delete/test/test-label/validate-address/get-rate/rate-shop 统一入口；凭证测试失败返回带标记的结果对象而非 HTTP 错误
// @Tags Direct (直连)
// @Accept json
// @Produce json
// @Param request body dto.DirectActionRequest true "动作请求"
// @Success 200 {object} dto.TestResult "动作结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "执行失败"
// @Router /api/carriers/direct [post]
func (c *DirectController) HandleAction(ctx *gin.Context) {
	var req dto.DirectActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	result, err := c.directSvc.HandleAction(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, result)
}
