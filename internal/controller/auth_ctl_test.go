package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/middleware"
	"shipops_dev_v1/internal/service"
)

// ==================== 测试辅助 ====================

func setupAuthRouter() *gin.Engine {
	authSvc := service.NewAuthService(service.AdminCredentials{
		Username: "admin",
		Password: "s3cret",
	})
	ctl := NewAuthController(authSvc)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", ctl.Login)
		auth.POST("/refresh", ctl.RefreshToken)
	}

	api := r.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		api.GET("/auth/profile", ctl.Profile)
	}
	return r
}

func doAuthJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 单元测试 ====================

func TestAuthController_LoginAndAccess(t *testing.T) {
	r := setupAuthRouter()

	// 未登录访问受保护接口
	w := doAuthJSON(r, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 密码错误
	w = doAuthJSON(r, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "admin", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 正确登录拿到 Token 对
	w = doAuthJSON(r, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "admin", Password: "s3cret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var tokens dto.LoginResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// Access Token 放行
	w = doAuthJSON(r, http.MethodGet, "/api/auth/profile", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")

	// Refresh Token 不能当 Access Token 用
	w = doAuthJSON(r, http.MethodGet, "/api/auth/profile", tokens.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_RefreshToken(t *testing.T) {
	r := setupAuthRouter()

	w := doAuthJSON(r, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "admin", Password: "s3cret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var tokens dto.LoginResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))

	// 刷新换新 Token 对
	w = doAuthJSON(r, http.MethodPost, "/api/auth/refresh", "", dto.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var refreshed dto.LoginResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)

	// Access Token 不能用于刷新
	w = doAuthJSON(r, http.MethodPost, "/api/auth/refresh", "", dto.RefreshTokenRequest{
		RefreshToken: tokens.AccessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
