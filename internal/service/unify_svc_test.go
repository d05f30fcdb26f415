package service

import (
	"testing"

	"shipops_dev_v1/internal/api/dto"
	"shipops_dev_v1/internal/model"
)

// ==================== 测试数据 ====================

// upsCarrier 聚合商上报的 UPS 自有账户（账号小写，测大小写归一）
func upsCarrier() dto.ShipEngineCarrier {
	return dto.ShipEngineCarrier{
		CarrierID:     "se-1",
		CarrierCode:   "ups",
		AccountNumber: "0v2r99",
		FriendlyName:  "UPS",
		Nickname:      "UPS-se",
		Services: []dto.ShipEngineService{
			{CarrierID: "se-1", ServiceCode: "ups_ground", Name: "UPS® Ground", Domestic: true},
			{CarrierID: "se-1", ServiceCode: "ups_next_day_air", Name: "UPS Next Day Air®", Domestic: true},
			{CarrierID: "se-1", ServiceCode: "ups_ground_saver", Name: "UPS Ground Saver", Domestic: true},
		},
	}
}

// upsDirect 同账号的直连凭证（账号大写）
func upsDirect() model.DirectConnection {
	return model.DirectConnection{
		ConnectionID:  "dc-1",
		Network:       "ups",
		Nickname:      "我的 UPS 直连",
		ClientID:      "client-1",
		AccountNumber: "0V2R99",
		Status:        model.ConnectionStatusConnected,
	}
}

func stampsCarrier() dto.ShipEngineCarrier {
	return dto.ShipEngineCarrier{
		CarrierID:   "se-2",
		CarrierCode: "stamps_com",
		Nickname:    "ShipEngine USPS",
		Services: []dto.ShipEngineService{
			{CarrierID: "se-2", ServiceCode: "usps_priority_mail", Name: "USPS Priority Mail", Domestic: true},
			{CarrierID: "se-2", ServiceCode: "usps_ground_advantage", Name: "USPS Ground Advantage", Domestic: true},
		},
	}
}

func findAccount(t *testing.T, accounts []dto.UnifiedAccount, id string) *dto.UnifiedAccount {
	t.Helper()
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i]
		}
	}
	t.Fatalf("未找到账户 %s", id)
	return nil
}

func findService(accounts []dto.UnifiedService, key string) *dto.UnifiedService {
	for i := range accounts {
		if accounts[i].Key == key {
			return &accounts[i]
		}
	}
	return nil
}

// ==================== 账户归并 ====================

func TestUnifyAccounts_MergeByNetworkAndAccount(t *testing.T) {
	carriers := []dto.ShipEngineCarrier{upsCarrier()}
	direct := map[string][]model.DirectConnection{
		"ups": {upsDirect()},
	}

	accounts := UnifyAccounts(carriers, direct)
	if len(accounts) != 1 {
		t.Fatalf("同账号的两侧来源应合并为 1 行, got %d", len(accounts))
	}

	acc := accounts[0]
	if acc.ID != "ups:0V2R99" {
		t.Errorf("分桶键错误: got %s", acc.ID)
	}
	if acc.AccountNumber != "0V2R99" {
		t.Errorf("账号应归一为大写: got %s", acc.AccountNumber)
	}
	if acc.Direct == nil || acc.Direct.ConnectionID != "dc-1" {
		t.Error("合并账户应持有直连引用 dc-1")
	}
	if acc.ShipEngine == nil || acc.ShipEngine.CarrierID != "se-1" {
		t.Error("合并账户应持有聚合商引用 se-1")
	}
	// 直连昵称优先
	if acc.Nickname != "我的 UPS 直连 (UPS)" {
		t.Errorf("昵称错误: got %s", acc.Nickname)
	}
}

func TestUnifyAccounts_OrderIndependent(t *testing.T) {
	// 只有聚合商先建桶和只有直连先建桶，结果必须一致
	carriers := []dto.ShipEngineCarrier{upsCarrier()}
	direct := map[string][]model.DirectConnection{"ups": {upsDirect()}}

	a := UnifyAccounts(carriers, direct)
	b := UnifyAccounts(nil, direct)
	c := UnifyAccounts(carriers, nil)

	if len(a) != 1 {
		t.Fatalf("双侧输入应得 1 行, got %d", len(a))
	}
	// 单侧输入各自成行，键一致
	if len(b) != 1 || b[0].ID != "ups:0V2R99" {
		t.Errorf("仅直连输入应得同键账户, got %+v", b)
	}
	if len(c) != 1 || c[0].ID != "ups:0V2R99" {
		t.Errorf("仅聚合商输入应得同键账户, got %+v", c)
	}
}

func TestUnifyAccounts_NoLoss(t *testing.T) {
	// 账号对不上的记录不丢，各自成行
	se := upsCarrier()
	se.AccountNumber = "AAA111"
	dc := upsDirect()
	dc.AccountNumber = "BBB222"
	// 无账号的直连凭证走合成键
	dcNoAcct := model.DirectConnection{ConnectionID: "dc-2", Network: "fedex"}

	accounts := UnifyAccounts(
		[]dto.ShipEngineCarrier{se},
		map[string][]model.DirectConnection{
			"ups":   {dc},
			"fedex": {dcNoAcct},
		},
	)
	if len(accounts) != 3 {
		t.Fatalf("三条互不匹配的记录应得 3 行, got %d", len(accounts))
	}

	findAccount(t, accounts, "ups:AAA111")
	findAccount(t, accounts, "ups:BBB222")
	findAccount(t, accounts, "fedex:dc:dc-2")
}

func TestUnifyAccounts_MarketplacePartition(t *testing.T) {
	accounts := UnifyAccounts(
		[]dto.ShipEngineCarrier{upsCarrier(), stampsCarrier()},
		nil,
	)
	if len(accounts) != 2 {
		t.Fatalf("应得 1 个自有账户 + 1 个代管合成账户, got %d", len(accounts))
	}

	// funded 账户固定排最后
	funded := accounts[len(accounts)-1]
	if funded.ID != FundedAccountID {
		t.Fatalf("合成账户 ID 错误: got %s", funded.ID)
	}
	if !funded.IsMarketplace {
		t.Error("合成账户应标记 is_marketplace")
	}
	if funded.Direct != nil {
		t.Error("合成账户不应有直连引用")
	}
	if len(funded.ShipEngineCarriers) != 1 {
		t.Errorf("合成账户应聚合 1 个代管承运商, got %d", len(funded.ShipEngineCarriers))
	}
	if len(funded.Services) != 2 {
		t.Errorf("合成账户服务数错误: got %d", len(funded.Services))
	}
	for _, svc := range funded.Services {
		if len(svc.Paths) != 1 || svc.Paths[0] != dto.PathAggregator {
			t.Errorf("代管服务只应有聚合商路径: %+v", svc.Paths)
		}
	}
}

func TestUnifyAccounts_ManagedByFundingSource(t *testing.T) {
	// 资金源 + 需要充值的组合即使代码不在已知表里也算代管
	c := dto.ShipEngineCarrier{
		CarrierID:            "se-9",
		CarrierCode:          "some_regional",
		Nickname:             "Regional",
		FundingSourceID:      "fs-1",
		RequiresFundedAmount: true,
	}
	accounts := UnifyAccounts([]dto.ShipEngineCarrier{c}, nil)
	if len(accounts) != 1 || accounts[0].ID != FundedAccountID {
		t.Fatalf("资金源账户应进合成 funded 账户, got %+v", accounts)
	}
}

// ==================== 服务归并 ====================

func TestMergeServices_DirectPlusAggregator(t *testing.T) {
	se := upsCarrier()
	dc := upsDirect()
	services := mergeServices("ups", &dc, &se)

	// 有直连时全量下发直连目录
	if len(services) != len(DirectCatalog("ups")) {
		t.Fatalf("服务数应等于直连目录长度 %d, got %d", len(DirectCatalog("ups")), len(services))
	}

	// UPS Ground 两路可达
	ground := findService(services, "ups:ground")
	if ground == nil {
		t.Fatal("未找到 ups:ground")
	}
	if len(ground.Paths) != 2 {
		t.Errorf("ups:ground 应两路可达: %+v", ground.Paths)
	}
	if ground.Direct == nil || ground.Direct.Code != "03" || ground.Direct.ConnectionID != "dc-1" {
		t.Errorf("直连子记录错误: %+v", ground.Direct)
	}
	if ground.Aggregator == nil || ground.Aggregator.ServiceCode != "ups_ground" || ground.Aggregator.CarrierID != "se-1" {
		t.Errorf("聚合商子记录错误: %+v", ground.Aggregator)
	}

	// Next Day Air 同样合并
	nda := findService(services, "ups:next_day_air")
	if nda == nil || nda.Aggregator == nil {
		t.Error("ups:next_day_air 应合并聚合商路径")
	}

	// 聚合商独有的 ground_saver 在有直连的账户上不进目录
	if findService(services, "ups:ground_saver") != nil {
		t.Error("有直连的账户不应出现聚合商独有服务")
	}
}

func TestMergeServices_PathSetConsistency(t *testing.T) {
	// Paths 含 direct 当且仅当 Direct 非空，aggregator 同理
	se := upsCarrier()
	dc := upsDirect()

	for _, services := range [][]dto.UnifiedService{
		mergeServices("ups", &dc, &se),
		mergeServices("ups", &dc, nil),
		mergeServices("ups", nil, &se),
	} {
		for _, svc := range services {
			hasDirect := false
			hasAggregator := false
			for _, p := range svc.Paths {
				switch p {
				case dto.PathDirect:
					hasDirect = true
				case dto.PathAggregator:
					hasAggregator = true
				}
			}
			if hasDirect != (svc.Direct != nil) {
				t.Errorf("服务 %s 的 direct 路径与子记录不一致", svc.Key)
			}
			if hasAggregator != (svc.Aggregator != nil) {
				t.Errorf("服务 %s 的 aggregator 路径与子记录不一致", svc.Key)
			}
		}
	}
}

func TestMergeServices_AggregatorOnly(t *testing.T) {
	se := upsCarrier()
	services := mergeServices("ups", nil, &se)

	if len(services) != 3 {
		t.Fatalf("无直连账户应原样输出聚合商服务, got %d", len(services))
	}
	for _, svc := range services {
		if svc.Direct != nil {
			t.Errorf("无直连账户不应有直连子记录: %s", svc.Key)
		}
	}
}

// ==================== 选择记录构造 ====================

func TestBuildSelectedService_PreferDirect(t *testing.T) {
	se := upsCarrier()
	dc := upsDirect()
	accounts := UnifyAccounts(
		[]dto.ShipEngineCarrier{se},
		map[string][]model.DirectConnection{"ups": {dc}},
	)
	acc := findAccount(t, accounts, "ups:0V2R99")
	ground := findService(acc.Services, "ups:ground")
	if ground == nil {
		t.Fatal("未找到 ups:ground")
	}

	selected := BuildSelectedService(acc, ground)
	if selected.CarrierID != "dc-1" {
		t.Errorf("首选直连时 CarrierID 应为连接 ID: got %s", selected.CarrierID)
	}
	if selected.CarrierCode != "ups-direct" {
		t.Errorf("CarrierCode 错误: got %s", selected.CarrierCode)
	}
	if selected.ServiceCode != "03" {
		t.Errorf("ServiceCode 应为直连原生代码: got %s", selected.ServiceCode)
	}
	if selected.Fallback == nil {
		t.Fatal("两路可达的服务应带聚合商回退")
	}
	if selected.Fallback.CarrierID != "se-1" || selected.Fallback.ServiceCode != "ups_ground" {
		t.Errorf("回退信息错误: %+v", selected.Fallback)
	}
}

func TestBuildSelectedService_AggregatorFallback(t *testing.T) {
	se := upsCarrier()
	accounts := UnifyAccounts([]dto.ShipEngineCarrier{se}, nil)
	acc := findAccount(t, accounts, "ups:0V2R99")
	ground := findService(acc.Services, "ups:ground")
	if ground == nil {
		t.Fatal("未找到 ups:ground")
	}

	selected := BuildSelectedService(acc, ground)
	if selected.CarrierID != "se-1" || selected.ServiceCode != "ups_ground" {
		t.Errorf("无直连时应走聚合商: %+v", selected)
	}
	if selected.DirectConnectionID != "" || selected.Fallback != nil {
		t.Error("聚合商路径不应带直连字段和回退")
	}
}

// ==================== 输出顺序 ====================

func TestUnifyAccounts_StableOrder(t *testing.T) {
	fedexDC := model.DirectConnection{ConnectionID: "dc-f", Network: "fedex", AccountNumber: "F1"}
	upsDC := upsDirect()

	accounts := UnifyAccounts(
		[]dto.ShipEngineCarrier{stampsCarrier()},
		map[string][]model.DirectConnection{
			"fedex": {fedexDC},
			"ups":   {upsDC},
		},
	)
	if len(accounts) != 3 {
		t.Fatalf("应得 3 行, got %d", len(accounts))
	}
	// UPS < FedEx < funded（最后）
	if accounts[0].Network != "ups" {
		t.Errorf("第 1 行应为 ups, got %s", accounts[0].Network)
	}
	if accounts[1].Network != "fedex" {
		t.Errorf("第 2 行应为 fedex, got %s", accounts[1].Network)
	}
	if accounts[2].ID != FundedAccountID {
		t.Errorf("funded 账户应排最后, got %s", accounts[2].ID)
	}
}
