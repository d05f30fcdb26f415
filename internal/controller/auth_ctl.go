package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/middleware"
	"shipops_dev_v1/internal/service"
)

// AuthController 认证接口
type AuthController struct {
	authSvc *service.AuthService
}

func NewAuthController(authSvc *service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// Login 管理员登录
// @Summary 管理员登录
// @Description 校验管理员凭证，签发 Access/Refresh Token 对
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse "Token 对"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 401 {object} map[string]string "凭证错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.authSvc.Login(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RefreshToken 刷新 Token
// @Summary 刷新 Token
// @Description 用 Refresh Token 换新的 Token 对
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token"
// @Success 200 {object} dto.LoginResponse "新 Token 对"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 401 {object} map[string]string "Token 无效"
// @Router /api/auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.authSvc.RefreshToken(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Profile 当前登录用户
// @Summary 当前登录用户
// @Tags Auth (认证)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "用户信息"
// @Failure 401 {object} map[string]string "未认证"
// @Router /api/auth/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	claims := middleware.GetUserClaims(ctx)
	if claims == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"username": claims.Username,
		"role":     claims.Role,
	})
}
