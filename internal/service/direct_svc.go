package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
)

// ==================== 直连客户端接口 ====================

// DirectRateRequest 直连报价/出标签参数
type DirectRateRequest struct {
	ServiceCode string
	ShipFrom    *dto.Address
	ShipTo      *dto.Address
	Package     *dto.Package
}

// DirectCarrierClient 承运商直连客户端的行为标准
// UPS / FedEx 各自实现，Service 层按网络分发
type DirectCarrierClient interface {
	Network() string
	TestAuth(ctx context.Context, conn *model.DirectConnection) error
	ValidateAddress(ctx context.Context, conn *model.DirectConnection, addr *dto.Address) error
	GetRate(ctx context.Context, conn *model.DirectConnection, req *DirectRateRequest) ([]dto.ShipEngineRate, error)
	TestLabel(ctx context.Context, conn *model.DirectConnection, req *DirectRateRequest) ([]byte, error)
}

// decodeBase64Label 解码承运商返回的 base64 标签
func decodeBase64Label(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("解码标签数据失败: %w", err)
	}
	return data, nil
}

// ==================== DirectConnectionService ====================

// DirectConnectionService 直连凭证管理服务
// CRUD + 测试类操作分发；测试结果统一走 TestResult，不抛 HTTP 错误
type DirectConnectionService struct {
	directRepo repository.DirectConnectionRepository
	clients    map[string]DirectCarrierClient
	shipEngine *ShipEngineClient
	labels     *LabelStorageService // 可为 nil，未配置存储时 test-label 不落盘
	unify      *UnifyService
}

// NewDirectConnectionService 创建直连凭证管理服务
func NewDirectConnectionService(
	directRepo repository.DirectConnectionRepository,
	shipEngine *ShipEngineClient,
	labels *LabelStorageService,
	unify *UnifyService,
	clients ...DirectCarrierClient,
) *DirectConnectionService {
	clientMap := make(map[string]DirectCarrierClient, len(clients))
	for _, c := range clients {
		clientMap[c.Network()] = c
	}
	return &DirectConnectionService{
		directRepo: directRepo,
		clients:    clientMap,
		shipEngine: shipEngine,
		labels:     labels,
		unify:      unify,
	}
}

// GetConnections 获取全部直连连接（按网络分组）
func (s *DirectConnectionService) GetConnections(ctx context.Context) (*dto.DirectConnectionsResponse, error) {
	grouped, err := s.directRepo.GetAllGroupedByNetwork(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.DirectConnectionsResponse{
		Connections: make(map[string][]dto.DirectConnectionResp),
	}
	for network, conns := range grouped {
		list := make([]dto.DirectConnectionResp, 0, len(conns))
		for i := range conns {
			list = append(list, convertDirectConnectionToResp(&conns[i]))
		}
		resp.Connections[network] = list
	}
	return resp, nil
}

// HandleAction 处理直连操作请求，按 action 分发
func (s *DirectConnectionService) HandleAction(ctx context.Context, req *dto.DirectActionRequest) (*dto.TestResult, error) {
	network := strings.ToLower(strings.TrimSpace(req.Carrier))
	if _, ok := s.clients[network]; !ok {
		return nil, fmt.Errorf("不支持的直连承运商: %s", req.Carrier)
	}

	switch req.Action {
	case dto.DirectActionAdd:
		return s.addConnection(ctx, network, req)
	case dto.DirectActionSave:
		return s.saveConnection(ctx, req)
	case dto.DirectActionDelete:
		return s.deleteConnection(ctx, req)
	case dto.DirectActionTest:
		return s.testConnection(ctx, req)
	case dto.DirectActionValidateAddress:
		return s.validateAddress(ctx, req)
	case dto.DirectActionGetRate:
		return s.getRate(ctx, req)
	case dto.DirectActionTestLabel:
		return s.testLabel(ctx, req)
	case dto.DirectActionRateShop:
		return s.rateShop(ctx, req)
	default:
		return nil, fmt.Errorf("未知操作: %s", req.Action)
	}
}

// ==================== CRUD 操作 ====================

func (s *DirectConnectionService) addConnection(ctx context.Context, network string, req *dto.DirectActionRequest) (*dto.TestResult, error) {
	if req.ClientID == "" || req.ClientSecret == "" {
		return nil, errors.New("client_id 和 client_secret 不能为空")
	}

	conn := &model.DirectConnection{
		ConnectionID:        "dc-" + uuid.New().String()[:8],
		Network:             network,
		Nickname:            req.Nickname,
		ClientID:            req.ClientID,
		ClientSecret:        req.ClientSecret,
		AccountNumber:       req.AccountNumber,
		Sandbox:             req.Sandbox,
		Status:              model.ConnectionStatusUntested,
		EnabledServiceCodes: req.EnabledServiceCodes,
	}
	if err := s.directRepo.Create(ctx, conn); err != nil {
		return nil, fmt.Errorf("保存直连凭证失败: %w", err)
	}

	s.unify.InvalidateCache()
	return &dto.TestResult{Success: true, Message: "连接已创建: " + conn.ConnectionID}, nil
}

func (s *DirectConnectionService) saveConnection(ctx context.Context, req *dto.DirectActionRequest) (*dto.TestResult, error) {
	conn, err := s.getConnection(ctx, req.ConnectionID)
	if err != nil {
		return nil, err
	}

	conn.Nickname = req.Nickname
	conn.AccountNumber = req.AccountNumber
	conn.Sandbox = req.Sandbox
	if req.ClientID != "" {
		conn.ClientID = req.ClientID
	}
	if req.ClientSecret != "" {
		conn.ClientSecret = req.ClientSecret
	}
	if req.EnabledServiceCodes != nil {
		conn.EnabledServiceCodes = req.EnabledServiceCodes
	}
	// 凭证可能变了，状态回到未测试
	conn.Status = model.ConnectionStatusUntested
	conn.StatusMessage = ""

	if err := s.directRepo.Update(ctx, conn); err != nil {
		return nil, fmt.Errorf("更新直连凭证失败: %w", err)
	}

	s.unify.InvalidateCache()
	return &dto.TestResult{Success: true, Message: "连接已保存"}, nil
}

func (s *DirectConnectionService) deleteConnection(ctx context.Context, req *dto.DirectActionRequest) (*dto.TestResult, error) {
	if req.ConnectionID == "" {
		return nil, errors.New("connection_id 不能为空")
	}
	if err := s.directRepo.Delete(ctx, req.ConnectionID); err != nil {
		return nil, fmt.Errorf("删除直连凭证失败: %w", err)
	}

	s.unify.InvalidateCache()
	return &dto.TestResult{Success: true, Message: "连接已删除"}, nil
}

// ==================== 测试类操作 ====================

func (s *DirectConnectionService) testConnection(ctx context.Context, req *dto.DirectActionRequest) (*dto.TestResult, error) {
	conn, err := s.getConnection(ctx, req.ConnectionID)
	if err != nil {
		return nil, err
	}
	client := s.clients[conn.Network]

	now := time.Now()
	if err := client.TestAuth(ctx, conn); err != nil {
		s.recordTestResult(ctx, conn, model.ConnectionStatusError, err.Error(), now)
		return &dto.TestResult{Success: false, Error: err.Error()}, nil
	}

	s.recordTestResult(ctx, conn, model.ConnectionStatusConnected, "凭证验证通过", now)
	return &dto.TestResult{Success: true, Message: "凭证验证通过"}, nil
}

func (s *DirectConnectionService) validateAddress(ctx context.Context, req *dto.DirectActionRequest) (*dto.TestResult, error) {
	conn, err := s.getConnection(ctx, req.ConnectionID)
	if err != nil {
		return nil, err
	}
	if req.ShipTo == nil {
		return nil, errors.New("ship_to 不能为空")
	}

	if err := s.clients[conn.Network].ValidateAddress(ctx, conn, req.ShipTo); err != nil {
		return &dto.TestResult{Success: false, Error: err.Error()}, nil
	}
	return &dto.TestResult{Success: true, Message: "地址校验通过"}, nil
}

func (s *DirectConnectionService) getRate(ctx context.Context, req *dto.DirectActionRequest) (*dto.TestResult, error) {
	conn, rateReq, err := s.buildRateRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	rates, err := s.clients[conn.Network].GetRate(ctx, conn, rateReq)
	if err != nil {
		return &dto.TestResult{Success: false, Error: err.Error()}, nil
	}
	return &dto.TestResult{Success: true, Rates: rates}, nil
}

func (s *DirectConnectionService) testLabel(ctx context.Context, req *dto.DirectActionRequest) (*dto.TestResult, error) {
	conn, rateReq, err := s.buildRateRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	labelData, err := s.clients[conn.Network].TestLabel(ctx, conn, rateReq)
	if err != nil {
		return &dto.TestResult{Success: false, Error: err.Error()}, nil
	}

	result := &dto.TestResult{Success: true, Message: "测试标签已生成"}
	if s.labels != nil {
		url, err := s.labels.UploadLabel(ctx, conn.ConnectionID, labelData)
		if err != nil {
			// 标签已出，存储失败只降级提示
			log.Printf("[DirectConnection] 测试标签上传失败: %v", err)
			result.Message = "测试标签已生成（存储失败，未保存）"
		} else {
			result.LabelURL = url
		}
	}
	return result, nil
}

// rateShop 比价：直连报价 + 聚合商报价合并，按金额升序
func (s *DirectConnectionService) rateShop(ctx context.Context, req *dto.DirectActionRequest) (*dto.TestResult, error) {
	conn, rateReq, err := s.buildRateRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	var all []dto.ShipEngineRate

	directRates, directErr := s.clients[conn.Network].GetRate(ctx, conn, rateReq)
	if directErr == nil {
		all = append(all, directRates...)
	}

	seRates, seErr := s.shipEngine.GetRates(ctx, &dto.ShipEngineRateRequest{
		ShipFrom: rateReq.ShipFrom,
		ShipTo:   rateReq.ShipTo,
		Packages: []dto.Package{*rateReq.Package},
	})
	if seErr == nil {
		all = append(all, seRates...)
	}

	if len(all) == 0 {
		msg := "两条路径均未取到报价"
		if directErr != nil {
			msg += "; direct: " + directErr.Error()
		}
		if seErr != nil {
			msg += "; aggregator: " + seErr.Error()
		}
		return &dto.TestResult{Success: false, Error: msg}, nil
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Amount < all[j].Amount })
	return &dto.TestResult{Success: true, Rates: all}, nil
}

// ==================== 内部方法 ====================

func (s *DirectConnectionService) getConnection(ctx context.Context, connectionID string) (*model.DirectConnection, error) {
	if connectionID == "" {
		return nil, errors.New("connection_id 不能为空")
	}
	conn, err := s.directRepo.GetByConnectionID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("直连连接不存在")
		}
		return nil, err
	}
	return conn, nil
}

func (s *DirectConnectionService) buildRateRequest(ctx context.Context, req *dto.DirectActionRequest) (*model.DirectConnection, *DirectRateRequest, error) {
	conn, err := s.getConnection(ctx, req.ConnectionID)
	if err != nil {
		return nil, nil, err
	}
	if req.ShipFrom == nil || req.ShipTo == nil || req.Package == nil {
		return nil, nil, errors.New("ship_from、ship_to、package 均不能为空")
	}
	return conn, &DirectRateRequest{
		ServiceCode: req.ServiceCode,
		ShipFrom:    req.ShipFrom,
		ShipTo:      req.ShipTo,
		Package:     req.Package,
	}, nil
}

// recordTestResult 记录测试结果，写库失败不影响测试结论
func (s *DirectConnectionService) recordTestResult(ctx context.Context, conn *model.DirectConnection, status, message string, testedAt time.Time) {
	err := s.directRepo.UpdateFields(ctx, conn.ConnectionID, map[string]interface{}{
		"status":         status,
		"status_message": message,
		"last_tested_at": testedAt,
	})
	if err != nil {
		log.Printf("[DirectConnection] 更新连接状态失败: %v", err)
	}
	s.unify.InvalidateCache()
}
