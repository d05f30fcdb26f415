package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/pkg/utils"
)

// UPS 直连客户端
// 使用用户录入的 Client ID/Secret 走 UPS 官方 OAuth + REST API

const (
	upsProdBaseURL    = "https://onlinetools.ups.com"
	upsSandboxBaseURL = "https://wwwcie.ups.com"
)

// UPSDirectClient UPS 直连 API 客户端
type UPSDirectClient struct {
	client *resty.Client
}

// NewUPSDirectClient 初始化
func NewUPSDirectClient() *UPSDirectClient {
	return &UPSDirectClient{
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

func (s *UPSDirectClient) Network() string {
	return model.NetworkUPS
}

// baseURL 按连接的沙箱标记选择环境
func upsBaseURL(conn *model.DirectConnection) string {
	if conn.Sandbox {
		return upsSandboxBaseURL
	}
	return upsProdBaseURL
}

// getToken 获取 OAuth Token（client_credentials），带 TTL 缓存
func (s *UPSDirectClient) getToken(ctx context.Context, conn *model.DirectConnection) (string, error) {
	cacheKey := "ups:token:" + conn.ConnectionID
	if cached, ok := utils.GetCache(cacheKey); ok {
		if token, ok := cached.(string); ok {
			return token, nil
		}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   string `json:"expires_in"` // UPS 返回字符串秒数
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBasicAuth(conn.ClientID, conn.ClientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&tokenResp).
		Post(upsBaseURL(conn) + "/security/v1/oauth/token")
	if err != nil {
		return "", fmt.Errorf("UPS OAuth 请求失败: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("UPS OAuth 失败 (HTTP %d): %s", resp.StatusCode(), resp.String())
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("UPS OAuth 响应缺少 access_token")
	}

	// 提前 5 分钟过期，避免边界失效
	ttl := time.Hour
	if sec, err := strconv.Atoi(tokenResp.ExpiresIn); err == nil && sec > 300 {
		ttl = time.Duration(sec-300) * time.Second
	}
	utils.SetCache(cacheKey, tokenResp.AccessToken, ttl)
	return tokenResp.AccessToken, nil
}

// TestAuth 测试凭证连通性（只验 OAuth 能否换到 Token）
func (s *UPSDirectClient) TestAuth(ctx context.Context, conn *model.DirectConnection) error {
	// 测试前清掉旧 Token，保证验的是当前凭证
	utils.DeleteCache("ups:token:" + conn.ConnectionID)
	_, err := s.getToken(ctx, conn)
	return err
}

// ValidateAddress 地址校验
func (s *UPSDirectClient) ValidateAddress(ctx context.Context, conn *model.DirectConnection, addr *dto.Address) error {
	token, err := s.getToken(ctx, conn)
	if err != nil {
		return err
	}

	payload := map[string]interface{}{
		"XAVRequest": map[string]interface{}{
			"AddressKeyFormat": map[string]interface{}{
				"AddressLine":        []string{addr.AddressLine1, addr.AddressLine2},
				"PoliticalDivision2": addr.City,
				"PoliticalDivision1": addr.StateCode,
				"PostcodePrimaryLow": addr.PostalCode,
				"CountryCode":        addr.CountryCode,
			},
		},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		Post(upsBaseURL(conn) + "/api/addressvalidation/v2/1")
	if err != nil {
		return fmt.Errorf("UPS 地址校验请求失败: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("UPS 地址校验失败 (HTTP %d): %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// GetRate 获取单个服务的报价
func (s *UPSDirectClient) GetRate(ctx context.Context, conn *model.DirectConnection, req *DirectRateRequest) ([]dto.ShipEngineRate, error) {
	token, err := s.getToken(ctx, conn)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"RateRequest": map[string]interface{}{
			"Shipment": map[string]interface{}{
				"Shipper": map[string]interface{}{
					"ShipperNumber": conn.AccountNumber,
					"Address":       upsAddress(req.ShipFrom),
				},
				"ShipTo":   map[string]interface{}{"Address": upsAddress(req.ShipTo)},
				"ShipFrom": map[string]interface{}{"Address": upsAddress(req.ShipFrom)},
				"Service":  map[string]string{"Code": req.ServiceCode},
				"Package": map[string]interface{}{
					"PackagingType": map[string]string{"Code": "02"},
					"PackageWeight": map[string]interface{}{
						"UnitOfMeasurement": map[string]string{"Code": "LBS"},
						"Weight":            fmt.Sprintf("%.1f", req.Package.WeightLb),
					},
				},
			},
		},
	}

	var rateResp struct {
		RateResponse struct {
			RatedShipment []struct {
				Service struct {
					Code string `json:"Code"`
				} `json:"Service"`
				TotalCharges struct {
					CurrencyCode  string `json:"CurrencyCode"`
					MonetaryValue string `json:"MonetaryValue"`
				} `json:"TotalCharges"`
			} `json:"RatedShipment"`
		} `json:"RateResponse"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		SetResult(&rateResp).
		Post(upsBaseURL(conn) + "/api/rating/v2409/Rate")
	if err != nil {
		return nil, fmt.Errorf("UPS 报价请求失败: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("UPS 报价失败 (HTTP %d): %s", resp.StatusCode(), resp.String())
	}

	rates := make([]dto.ShipEngineRate, 0, len(rateResp.RateResponse.RatedShipment))
	for _, rated := range rateResp.RateResponse.RatedShipment {
		amount, _ := strconv.ParseFloat(rated.TotalCharges.MonetaryValue, 64)
		rates = append(rates, dto.ShipEngineRate{
			CarrierID:   conn.ConnectionID,
			CarrierCode: model.NetworkUPS + "-direct",
			ServiceCode: rated.Service.Code,
			Amount:      amount,
			Currency:    rated.TotalCharges.CurrencyCode,
		})
	}
	return rates, nil
}

// TestLabel 出测试标签，返回标签 PDF 字节
func (s *UPSDirectClient) TestLabel(ctx context.Context, conn *model.DirectConnection, req *DirectRateRequest) ([]byte, error) {
	token, err := s.getToken(ctx, conn)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"ShipmentRequest": map[string]interface{}{
			"Shipment": map[string]interface{}{
				"Shipper": map[string]interface{}{
					"Name":          "Test Shipper",
					"ShipperNumber": conn.AccountNumber,
					"Address":       upsAddress(req.ShipFrom),
				},
				"ShipTo": map[string]interface{}{
					"Name":    "Test Recipient",
					"Address": upsAddress(req.ShipTo),
				},
				"PaymentInformation": map[string]interface{}{
					"ShipmentCharge": map[string]interface{}{
						"Type":        "01",
						"BillShipper": map[string]string{"AccountNumber": conn.AccountNumber},
					},
				},
				"Service": map[string]string{"Code": req.ServiceCode},
				"Package": map[string]interface{}{
					"Packaging": map[string]string{"Code": "02"},
					"PackageWeight": map[string]interface{}{
						"UnitOfMeasurement": map[string]string{"Code": "LBS"},
						"Weight":            fmt.Sprintf("%.1f", req.Package.WeightLb),
					},
				},
			},
			"LabelSpecification": map[string]interface{}{
				"LabelImageFormat": map[string]string{"Code": "PDF"},
			},
		},
	}

	var shipResp struct {
		ShipmentResponse struct {
			ShipmentResults struct {
				PackageResults []struct {
					ShippingLabel struct {
						GraphicImage string `json:"GraphicImage"` // base64
					} `json:"ShippingLabel"`
				} `json:"PackageResults"`
			} `json:"ShipmentResults"`
		} `json:"ShipmentResponse"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		SetResult(&shipResp).
		Post(upsBaseURL(conn) + "/api/shipments/v2409/ship")
	if err != nil {
		return nil, fmt.Errorf("UPS 出标签请求失败: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("UPS 出标签失败 (HTTP %d): %s", resp.StatusCode(), resp.String())
	}

	results := shipResp.ShipmentResponse.ShipmentResults.PackageResults
	if len(results) == 0 || results[0].ShippingLabel.GraphicImage == "" {
		return nil, fmt.Errorf("UPS 响应中没有标签数据")
	}
	return decodeBase64Label(results[0].ShippingLabel.GraphicImage)
}

// upsAddress 转 UPS 地址结构
func upsAddress(addr *dto.Address) map[string]interface{} {
	if addr == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"AddressLine":       []string{addr.AddressLine1, addr.AddressLine2},
		"City":              addr.City,
		"StateProvinceCode": addr.StateCode,
		"PostalCode":        addr.PostalCode,
		"CountryCode":       addr.CountryCode,
	}
}
