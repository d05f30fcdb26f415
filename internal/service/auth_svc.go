package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/middleware"
)

// 管理控制台是单管理员系统，凭证走环境变量配置，不落用户表

// ErrInvalidCredentials 用户名或密码错误
var ErrInvalidCredentials = errors.New("用户名或密码错误")

// AdminCredentials 管理员凭证配置
// Password 支持 bcrypt 哈希（"$2" 开头）或明文，生产环境应配置哈希
type AdminCredentials struct {
	Username string
	Password string
}

// AuthService 认证服务
type AuthService struct {
	creds AdminCredentials
}

// NewAuthService 创建认证服务
func NewAuthService(creds AdminCredentials) *AuthService {
	return &AuthService{creds: creds}
}

// Login 校验管理员凭证并签发 Token 对
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.creds.Password == "" {
		return nil, errors.New("管理员密码未配置")
	}
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.creds.Username)) != 1 {
		return nil, ErrInvalidCredentials
	}
	if !s.verifyPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokenPair()
}

// RefreshToken 用 Refresh Token 换新的 Token 对
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.LoginResponse, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil || claims.Subject != "refresh" {
		return nil, errors.New("refresh token 无效或已过期")
	}
	if claims.Username != s.creds.Username {
		return nil, errors.New("refresh token 无效或已过期")
	}

	return s.issueTokenPair()
}

func (s *AuthService) issueTokenPair() (*dto.LoginResponse, error) {
	access, refresh, err := middleware.GenerateTokenPair(1, s.creds.Username, "admin")
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
	}, nil
}

func (s *AuthService) verifyPassword(password string) bool {
	if strings.HasPrefix(s.creds.Password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(s.creds.Password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.creds.Password)) == 1
}
