package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/pkg/utils"
)

// FedEx 直连客户端

const (
	fedexProdBaseURL    = "https://apis.fedex.com"
	fedexSandboxBaseURL = "https://apis-sandbox.fedex.com"
)

// FedExDirectClient FedEx 直连 API 客户端
type FedExDirectClient struct {
	client *resty.Client
}

// NewFedExDirectClient 初始化
func NewFedExDirectClient() *FedExDirectClient {
	return &FedExDirectClient{
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

func (s *FedExDirectClient) Network() string {
	return model.NetworkFedEx
}

func fedexBaseURL(conn *model.DirectConnection) string {
	if conn.Sandbox {
		return fedexSandboxBaseURL
	}
	return fedexProdBaseURL
}

// getToken 获取 OAuth Token（client_credentials），带 TTL 缓存
func (s *FedExDirectClient) getToken(ctx context.Context, conn *model.DirectConnection) (string, error) {
	cacheKey := "fedex:token:" + conn.ConnectionID
	if cached, ok := utils.GetCache(cacheKey); ok {
		if token, ok := cached.(string); ok {
			return token, nil
		}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     conn.ClientID,
			"client_secret": conn.ClientSecret,
		}).
		SetResult(&tokenResp).
		Post(fedexBaseURL(conn) + "/oauth/token")
	if err != nil {
		return "", fmt.Errorf("FedEx OAuth 请求失败: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("FedEx OAuth 失败 (HTTP %d): %s", resp.StatusCode(), resp.String())
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("FedEx OAuth 响应缺少 access_token")
	}

	ttl := time.Hour
	if tokenResp.ExpiresIn > 300 {
		ttl = time.Duration(tokenResp.ExpiresIn-300) * time.Second
	}
	utils.SetCache(cacheKey, tokenResp.AccessToken, ttl)
	return tokenResp.AccessToken, nil
}

// TestAuth 测试凭证连通性
func (s *FedExDirectClient) TestAuth(ctx context.Context, conn *model.DirectConnection) error {
	utils.DeleteCache("fedex:token:" + conn.ConnectionID)
	_, err := s.getToken(ctx, conn)
	return err
}

// ValidateAddress 地址校验
func (s *FedExDirectClient) ValidateAddress(ctx context.Context, conn *model.DirectConnection, addr *dto.Address) error {
	token, err := s.getToken(ctx, conn)
	if err != nil {
		return err
	}

	payload := map[string]interface{}{
		"addressesToValidate": []map[string]interface{}{
			{"address": fedexAddress(addr)},
		},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		Post(fedexBaseURL(conn) + "/address/v1/addresses/resolve")
	if err != nil {
		return fmt.Errorf("FedEx 地址校验请求失败: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("FedEx 地址校验失败 (HTTP %d): %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// GetRate 获取报价
func (s *FedExDirectClient) GetRate(ctx context.Context, conn *model.DirectConnection, req *DirectRateRequest) ([]dto.ShipEngineRate, error) {
	token, err := s.getToken(ctx, conn)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"accountNumber": map[string]string{"value": conn.AccountNumber},
		"requestedShipment": map[string]interface{}{
			"shipper":       map[string]interface{}{"address": fedexAddress(req.ShipFrom)},
			"recipient":     map[string]interface{}{"address": fedexAddress(req.ShipTo)},
			"pickupType":    "DROPOFF_AT_FEDEX_LOCATION",
			"rateRequestType": []string{"ACCOUNT"},
			"requestedPackageLineItems": []map[string]interface{}{
				{
					"weight": map[string]interface{}{
						"units": "LB",
						"value": req.Package.WeightLb,
					},
				},
			},
		},
	}
	if req.ServiceCode != "" {
		payload["requestedShipment"].(map[string]interface{})["serviceType"] = req.ServiceCode
	}

	var rateResp struct {
		Output struct {
			RateReplyDetails []struct {
				ServiceType      string `json:"serviceType"`
				RatedShipmentDetails []struct {
					TotalNetCharge float64 `json:"totalNetCharge"`
					Currency       string  `json:"currency"`
				} `json:"ratedShipmentDetails"`
			} `json:"rateReplyDetails"`
		} `json:"output"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		SetResult(&rateResp).
		Post(fedexBaseURL(conn) + "/rate/v1/rates/quotes")
	if err != nil {
		return nil, fmt.Errorf("FedEx 报价请求失败: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("FedEx 报价失败 (HTTP %d): %s", resp.StatusCode(), resp.String())
	}

	var rates []dto.ShipEngineRate
	for _, detail := range rateResp.Output.RateReplyDetails {
		if len(detail.RatedShipmentDetails) == 0 {
			continue
		}
		rates = append(rates, dto.ShipEngineRate{
			CarrierID:   conn.ConnectionID,
			CarrierCode: model.NetworkFedEx + "-direct",
			ServiceCode: detail.ServiceType,
			Amount:      detail.RatedShipmentDetails[0].TotalNetCharge,
			Currency:    detail.RatedShipmentDetails[0].Currency,
		})
	}
	return rates, nil
}

// TestLabel 出测试标签，返回标签 PDF 字节
func (s *FedExDirectClient) TestLabel(ctx context.Context, conn *model.DirectConnection, req *DirectRateRequest) ([]byte, error) {
	token, err := s.getToken(ctx, conn)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"accountNumber": map[string]string{"value": conn.AccountNumber},
		"labelResponseOptions": "LABEL",
		"requestedShipment": map[string]interface{}{
			"shipper": map[string]interface{}{
				"contact": map[string]string{"personName": "Test Shipper"},
				"address": fedexAddress(req.ShipFrom),
			},
			"recipients": []map[string]interface{}{
				{
					"contact": map[string]string{"personName": "Test Recipient"},
					"address": fedexAddress(req.ShipTo),
				},
			},
			"serviceType":   req.ServiceCode,
			"packagingType": "YOUR_PACKAGING",
			"pickupType":    "DROPOFF_AT_FEDEX_LOCATION",
			"shippingChargesPayment": map[string]string{"paymentType": "SENDER"},
			"labelSpecification": map[string]string{
				"imageType":     "PDF",
				"labelStockType": "PAPER_4X6",
			},
			"requestedPackageLineItems": []map[string]interface{}{
				{
					"weight": map[string]interface{}{
						"units": "LB",
						"value": req.Package.WeightLb,
					},
				},
			},
		},
	}

	var shipResp struct {
		Output struct {
			TransactionShipments []struct {
				PieceResponses []struct {
					PackageDocuments []struct {
						EncodedLabel string `json:"encodedLabel"` // base64
					} `json:"packageDocuments"`
				} `json:"pieceResponses"`
			} `json:"transactionShipments"`
		} `json:"output"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		SetResult(&shipResp).
		Post(fedexBaseURL(conn) + "/ship/v1/shipments")
	if err != nil {
		return nil, fmt.Errorf("FedEx 出标签请求失败: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("FedEx 出标签失败 (HTTP %d): %s", resp.StatusCode(), resp.String())
	}

	shipments := shipResp.Output.TransactionShipments
	if len(shipments) == 0 || len(shipments[0].PieceResponses) == 0 ||
		len(shipments[0].PieceResponses[0].PackageDocuments) == 0 {
		return nil, fmt.Errorf("FedEx 响应中没有标签数据")
	}
	return decodeBase64Label(shipments[0].PieceResponses[0].PackageDocuments[0].EncodedLabel)
}

// fedexAddress 转 FedEx 地址结构
func fedexAddress(addr *dto.Address) map[string]interface{} {
	if addr == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"streetLines":         []string{addr.AddressLine1, addr.AddressLine2},
		"city":                addr.City,
		"stateOrProvinceCode": addr.StateCode,
		"postalCode":          addr.PostalCode,
		"countryCode":         addr.CountryCode,
	}
}
