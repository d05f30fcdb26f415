package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
	"shipops_dev_v1/pkg/utils"
)

// 账户归并：把聚合商上报的承运商账户和用户录入的直连凭证
// 按 (网络, 账号) 合并成每个真实账户一行的统一视图。
// 纯函数实现，便于单测；UnifyService 只负责取数和缓存。

// ==================== 分类规则 ====================

// managedCarrierCodes 已知的钱包代管承运商代码
var managedCarrierCodes = map[string]bool{
	"stamps_com":      true,
	"usps":            true,
	"seko":            true,
	"globalpost":      true,
	"shipengine_usps": true,
}

// managedKeywords 昵称中出现即视为代管账户的关键词
var managedKeywords = []string{"shipengine", "funded", "wallet"}

// isManagedCarrier 判断聚合商账户是否为钱包代管（marketplace）账户
// 三个条件满足其一即是：已知代管代码 / 有资金源且需要充值 / 昵称含代管关键词
func isManagedCarrier(c *dto.ShipEngineCarrier) bool {
	if managedCarrierCodes[strings.ToLower(c.CarrierCode)] {
		return true
	}
	if c.FundingSourceID != "" && c.RequiresFundedAmount {
		return true
	}
	nickname := strings.ToLower(c.Nickname)
	for _, kw := range managedKeywords {
		if strings.Contains(nickname, kw) {
			return true
		}
	}
	return false
}

// ==================== 网络推断与分桶键 ====================

// networkPrefixes 承运商代码前缀 -> 网络
var networkPrefixes = []struct {
	prefix  string
	network string
}{
	{"ups", model.NetworkUPS},
	{"fedex", model.NetworkFedEx},
	{"usps", model.NetworkUSPS},
	{"stamps", model.NetworkUSPS},
	{"dhl", model.NetworkDHL},
}

// inferNetwork 从聚合商承运商代码推断网络，认不出的归入 other 桶
func inferNetwork(carrierCode string) string {
	code := strings.ToLower(strings.TrimSpace(carrierCode))
	for _, p := range networkPrefixes {
		if strings.HasPrefix(code, p.prefix) {
			return p.network
		}
	}
	return model.NetworkOther
}

// normalizeAccountNumber 账号规范化：去空白、统一大写
// 匹配只做精确比对，不做模糊匹配
func normalizeAccountNumber(accountNumber string) string {
	return strings.ToUpper(strings.TrimSpace(accountNumber))
}

// accountKey 分桶键
// 无账号时退化为来源自身 ID 的合成键，保证该账户仍单独成行而不是被丢掉；
// 两个都没有账号的记录永远不会互相合并
func accountKey(network, accountNumber, fallbackID string) string {
	if normalized := normalizeAccountNumber(accountNumber); normalized != "" {
		return network + ":" + normalized
	}
	return network + ":" + fallbackID
}

// networkLabels 网络 -> Tab 列表里的后缀
var networkLabels = map[string]string{
	model.NetworkUPS:   "UPS",
	model.NetworkFedEx: "FedEx",
	model.NetworkUSPS:  "USPS",
	model.NetworkDHL:   "DHL",
	model.NetworkOther: "Other",
}

// FundedAccountID 钱包代管合成账户的固定 ID
const FundedAccountID = "shipengine:funded"

// ==================== 账户归并 ====================

// UnifyAccounts 归并账户
// carriers: 聚合商上报的全部承运商账户
// direct: 按网络分组的直连凭证
// 匹配与处理顺序无关：无论哪一侧先建桶，后处理的一侧并入同一桶
func UnifyAccounts(carriers []dto.ShipEngineCarrier, direct map[string][]model.DirectConnection) []dto.UnifiedAccount {
	type bucket struct {
		network       string
		accountNumber string
		direct        *model.DirectConnection
		shipEngine    *dto.ShipEngineCarrier
	}

	buckets := make(map[string]*bucket)
	var marketplace []dto.ShipEngineCarrier

	// 1. 聚合商账户：先分流 marketplace，自有账户按 (网络, 账号) 入桶
	for i := range carriers {
		c := carriers[i]
		if isManagedCarrier(&c) {
			marketplace = append(marketplace, c)
			continue
		}

		network := inferNetwork(c.CarrierCode)
		key := accountKey(network, c.AccountNumber, "se:"+c.CarrierID)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{network: network}
			buckets[key] = b
		}
		b.shipEngine = &c
		if b.accountNumber == "" {
			b.accountNumber = normalizeAccountNumber(c.AccountNumber)
		}
	}

	// 2. 直连凭证：同键并入已有桶，没有匹配的自成一桶（direct-only）
	for network := range direct {
		for i := range direct[network] {
			conn := direct[network][i]
			key := accountKey(network, conn.AccountNumber, "dc:"+conn.ConnectionID)
			b, ok := buckets[key]
			if !ok {
				b = &bucket{network: network}
				buckets[key] = b
			}
			b.direct = &conn
			if b.accountNumber == "" {
				b.accountNumber = normalizeAccountNumber(conn.AccountNumber)
			}
		}
	}

	// 3. 每桶一个 UnifiedAccount
	accounts := make([]dto.UnifiedAccount, 0, len(buckets)+1)
	for key, b := range buckets {
		account := dto.UnifiedAccount{
			ID:            key,
			Network:       b.network,
			AccountNumber: b.accountNumber,
			Nickname:      displayNickname(b.network, b.direct, b.shipEngine, b.accountNumber),
		}
		if b.direct != nil {
			resp := convertDirectConnectionToResp(b.direct)
			account.Direct = &resp
		}
		account.ShipEngine = b.shipEngine
		account.Services = mergeServices(b.network, b.direct, b.shipEngine)
		accounts = append(accounts, account)
	}

	// 输出顺序稳定：按网络、账户 ID 排序，funded 账户固定排最后
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Network != accounts[j].Network {
			return networkOrder(accounts[i].Network) < networkOrder(accounts[j].Network)
		}
		return accounts[i].ID < accounts[j].ID
	})

	// 4. 全部 marketplace 账户合并为一个合成 funded 账户
	if len(marketplace) > 0 {
		accounts = append(accounts, buildFundedAccount(marketplace))
	}

	return accounts
}

// networkOrder 网络展示顺序
func networkOrder(network string) int {
	switch network {
	case model.NetworkUPS:
		return 0
	case model.NetworkFedEx:
		return 1
	case model.NetworkUSPS:
		return 2
	case model.NetworkDHL:
		return 3
	default:
		return 4
	}
}

// displayNickname 显示昵称
// 优先级：直连昵称 > 聚合商昵称 > 聚合商友好名 > 账号 > 兜底文案，
// 统一追加网络后缀用于 Tab 列表消歧
func displayNickname(network string, direct *model.DirectConnection, se *dto.ShipEngineCarrier, accountNumber string) string {
	name := ""
	switch {
	case direct != nil && strings.TrimSpace(direct.Nickname) != "":
		name = strings.TrimSpace(direct.Nickname)
	case se != nil && strings.TrimSpace(se.Nickname) != "":
		name = strings.TrimSpace(se.Nickname)
	case se != nil && strings.TrimSpace(se.FriendlyName) != "":
		name = strings.TrimSpace(se.FriendlyName)
	case accountNumber != "":
		name = accountNumber
	default:
		name = "Carrier Account"
	}
	return fmt.Sprintf("%s (%s)", name, networkLabels[network])
}

// buildFundedAccount 构造钱包代管合成账户
// 不与任何直连凭证匹配，服务平铺为聚合商单路径条目
func buildFundedAccount(marketplace []dto.ShipEngineCarrier) dto.UnifiedAccount {
	account := dto.UnifiedAccount{
		ID:            FundedAccountID,
		Network:       "shipengine",
		Nickname:      "ShipEngine Funded Services",
		IsMarketplace: true,
	}

	seen := make(map[string]bool)
	for i := range marketplace {
		c := marketplace[i]
		account.ShipEngineCarriers = append(account.ShipEngineCarriers, c)

		network := inferNetwork(c.CarrierCode)
		for _, svc := range c.Services {
			key := ServiceIdentity(network, svc.ServiceCode)
			if seen[key] {
				continue
			}
			seen[key] = true
			account.Services = append(account.Services, dto.UnifiedService{
				Key:           key,
				Name:          svc.Name,
				Domestic:      svc.Domestic,
				International: svc.International,
				Paths:         []string{dto.PathAggregator},
				Aggregator: &dto.AggregatorPath{
					ServiceCode: svc.ServiceCode,
					CarrierID:   c.CarrierID,
					CarrierCode: c.CarrierCode,
					CarrierName: c.FriendlyName,
				},
			})
		}
	}
	return account
}

// ==================== 服务归并 ====================

// mergeServices 归并单个账户的服务目录
// 存在直连连接时全量下发直连目录（旧版按连接过滤启用服务的逻辑已废弃），
// 聚合商服务按统一标识并入；账户有直连时聚合商独有的服务不进统一目录
func mergeServices(network string, direct *model.DirectConnection, se *dto.ShipEngineCarrier) []dto.UnifiedService {
	merged := make(map[string]*dto.UnifiedService)
	var order []string

	if direct != nil {
		for _, entry := range DirectCatalog(network) {
			key := ServiceIdentity(network, network+"-direct:"+entry.Code)
			merged[key] = &dto.UnifiedService{
				Key:           key,
				Name:          entry.Name,
				Domestic:      entry.Domestic,
				International: entry.International,
				Paths:         []string{dto.PathDirect},
				Direct: &dto.DirectPath{
					Code:         entry.Code,
					ConnectionID: direct.ConnectionID,
				},
			}
			order = append(order, key)
		}
	}

	if se != nil {
		for _, svc := range se.Services {
			key := ServiceIdentity(network, svc.ServiceCode)
			if existing, ok := merged[key]; ok {
				existing.Aggregator = &dto.AggregatorPath{
					ServiceCode: svc.ServiceCode,
					CarrierID:   se.CarrierID,
					CarrierCode: se.CarrierCode,
					CarrierName: se.FriendlyName,
				}
				existing.Paths = appendPath(existing.Paths, dto.PathAggregator)
				continue
			}
			// 账户没有直连时才插入聚合商单路径条目
			if direct == nil {
				merged[key] = &dto.UnifiedService{
					Key:           key,
					Name:          svc.Name,
					Domestic:      svc.Domestic,
					International: svc.International,
					Paths:         []string{dto.PathAggregator},
					Aggregator: &dto.AggregatorPath{
						ServiceCode: svc.ServiceCode,
						CarrierID:   se.CarrierID,
						CarrierCode: se.CarrierCode,
						CarrierName: se.FriendlyName,
					},
				}
				order = append(order, key)
			}
		}
	}

	services := make([]dto.UnifiedService, 0, len(order))
	for _, key := range order {
		services = append(services, *merged[key])
	}
	return services
}

// appendPath 去重追加路径
func appendPath(paths []string, path string) []string {
	for _, p := range paths {
		if p == path {
			return paths
		}
	}
	return append(paths, path)
}

// ==================== 选择记录构造 ====================

// BuildSelectedService 构造持久化的已选服务记录
// 直连路径字段齐全时首选直连，聚合商标识降级为回退信息；否则走聚合商
func BuildSelectedService(account *dto.UnifiedAccount, svc *dto.UnifiedService) dto.SelectedService {
	hasDirect := svc.Direct != nil &&
		svc.Direct.ConnectionID != "" &&
		svc.Direct.Code != ""

	if hasDirect {
		selected := dto.SelectedService{
			CarrierID:          svc.Direct.ConnectionID,
			CarrierCode:        account.Network + "-direct",
			CarrierName:        account.Nickname,
			ServiceCode:        svc.Direct.Code,
			ServiceName:        svc.Name,
			DirectConnectionID: svc.Direct.ConnectionID,
			DirectCode:         svc.Direct.Code,
		}
		if svc.Aggregator != nil {
			selected.Fallback = &dto.FallbackRef{
				CarrierID:   svc.Aggregator.CarrierID,
				CarrierCode: svc.Aggregator.CarrierCode,
				ServiceCode: svc.Aggregator.ServiceCode,
			}
		}
		return selected
	}

	selected := dto.SelectedService{
		ServiceName: svc.Name,
	}
	if svc.Aggregator != nil {
		selected.CarrierID = svc.Aggregator.CarrierID
		selected.CarrierCode = svc.Aggregator.CarrierCode
		selected.CarrierName = svc.Aggregator.CarrierName
		selected.ServiceCode = svc.Aggregator.ServiceCode
	}
	return selected
}

// convertDirectConnectionToResp 直连模型转响应（不带 Secret）
func convertDirectConnectionToResp(conn *model.DirectConnection) dto.DirectConnectionResp {
	return dto.DirectConnectionResp{
		ConnectionID:        conn.ConnectionID,
		Network:             conn.Network,
		Nickname:            conn.Nickname,
		ClientID:            conn.ClientID,
		AccountNumber:       conn.AccountNumber,
		Sandbox:             conn.Sandbox,
		Status:              conn.Status,
		StatusMessage:       conn.StatusMessage,
		EnabledServiceCodes: conn.EnabledServiceCodes,
	}
}

// ==================== UnifyService ====================

const (
	unifiedAccountsCacheKey = "unified_accounts"
	unifiedAccountsCacheTTL = 5 * time.Minute
)

// CarrierCatalogProvider 聚合商账户目录来源
type CarrierCatalogProvider interface {
	ListCarriers(ctx context.Context) ([]dto.ShipEngineCarrier, error)
}

// UnifyService 统一账户服务
// 归并本身是输入的纯函数，这里只做取数 + 结果缓存
type UnifyService struct {
	catalog    CarrierCatalogProvider
	directRepo repository.DirectConnectionRepository
}

// NewUnifyService 创建统一账户服务
func NewUnifyService(catalog CarrierCatalogProvider, directRepo repository.DirectConnectionRepository) *UnifyService {
	return &UnifyService{
		catalog:    catalog,
		directRepo: directRepo,
	}
}

// GetUnifiedAccounts 获取统一账户视图
// refresh 为 true 时跳过缓存强制重算
func (s *UnifyService) GetUnifiedAccounts(ctx context.Context, refresh bool) (*dto.UnifiedAccountsResponse, error) {
	if !refresh {
		if cached, ok := utils.GetCache(unifiedAccountsCacheKey); ok {
			if resp, ok := cached.(*dto.UnifiedAccountsResponse); ok {
				return resp, nil
			}
		}
	}

	carriers, err := s.catalog.ListCarriers(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取聚合商承运商列表失败: %w", err)
	}

	direct, err := s.directRepo.GetAllGroupedByNetwork(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取直连凭证失败: %w", err)
	}

	resp := &dto.UnifiedAccountsResponse{
		Accounts: UnifyAccounts(carriers, direct),
	}
	utils.SetCache(unifiedAccountsCacheKey, resp, unifiedAccountsCacheTTL)
	return resp, nil
}

// InvalidateCache 直连凭证或聚合商账户变更后调用，下一次读取重算
func (s *UnifyService) InvalidateCache() {
	utils.DeleteCache(unifiedAccountsCacheKey)
}
