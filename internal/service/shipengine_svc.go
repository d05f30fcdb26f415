package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"shipops_dev_v1/internal/api/dto"
)

// ShipEngineConfig ShipEngine 配置
type ShipEngineConfig struct {
	BaseURL string // e.g. https://api.shipengine.com
	APIKey  string
	Timeout time.Duration
}

// ShipEngineClient ShipEngine API 客户端
type ShipEngineClient struct {
	config     ShipEngineConfig
	httpClient *http.Client
}

// NewShipEngineClient 创建客户端
func NewShipEngineClient(cfg ShipEngineConfig) *ShipEngineClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.shipengine.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ShipEngineClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// ==================== Carrier 承运商账户 ====================

// ListCarriers 获取全部承运商账户（含服务列表）
func (c *ShipEngineClient) ListCarriers(ctx context.Context) ([]dto.ShipEngineCarrier, error) {
	var resp dto.ListCarriersResponse
	err := c.doRequest(ctx, http.MethodGet, "/v1/carriers?include=services", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("获取承运商列表失败: %w", err)
	}
	return resp.Carriers, nil
}

// ConnectCarrier 连接承运商账户
func (c *ShipEngineClient) ConnectCarrier(ctx context.Context, req *dto.ConnectCarrierRequest) (*dto.ConnectCarrierResponse, error) {
	var resp dto.ConnectCarrierResponse
	path := "/v1/connections/carriers/" + url.PathEscape(req.CarrierName)
	err := c.doRequest(ctx, http.MethodPost, path, req.Credentials, &resp)
	if err != nil {
		return nil, fmt.Errorf("连接承运商失败: %w", err)
	}
	return &resp, nil
}

// DisconnectCarrier 断开承运商账户
func (c *ShipEngineClient) DisconnectCarrier(ctx context.Context, carrierName, carrierID string) error {
	path := fmt.Sprintf("/v1/connections/carriers/%s/%s",
		url.PathEscape(carrierName), url.PathEscape(carrierID))
	err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return fmt.Errorf("断开承运商失败: %w", err)
	}
	return nil
}

// ==================== Rate 报价 ====================

// GetRates 获取报价
func (c *ShipEngineClient) GetRates(ctx context.Context, req *dto.ShipEngineRateRequest) ([]dto.ShipEngineRate, error) {
	var resp struct {
		RateResponse dto.ShipEngineRateResponse `json:"rate_response"`
	}
	err := c.doRequest(ctx, http.MethodPost, "/v1/rates", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("获取报价失败: %w", err)
	}
	return resp.RateResponse.Rates, nil
}

// ==================== 内部方法 ====================

// doRequest 发送请求并解析响应
func (c *ShipEngineClient) doRequest(ctx context.Context, method, path string, reqBody, respBody interface{}) error {
	var bodyReader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("序列化请求失败: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("构建请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-Key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(data))
	}

	if respBody != nil && len(data) > 0 {
		if err := json.Unmarshal(data, respBody); err != nil {
			return fmt.Errorf("解析响应失败: %w", err)
		}
	}
	return nil
}
