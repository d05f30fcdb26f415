package service

import (
	"strings"
	"testing"
)

// ==================== 服务标识规范化 ====================

func TestServiceIdentity_TwoPathsSameKey(t *testing.T) {
	// 同一逻辑服务在直连和聚合商两条路径下必须得到同一个键
	cases := []struct {
		network    string
		directCode string
		seCode     string
		want       string
	}{
		{"ups", "ups-direct:03", "ups_ground", "ups:ground"},
		{"ups", "ups-direct:01", "ups_next_day_air", "ups:next_day_air"},
		{"ups", "ups-direct:11", "ups_standard_international", "ups:standard"},
		{"fedex", "fedex-direct:FEDEX_GROUND", "fedex_ground", "fedex:ground"},
		{"fedex", "fedex-direct:PRIORITY_OVERNIGHT", "fedex_priority_overnight", "fedex:priority_overnight"},
	}

	for _, c := range cases {
		gotDirect := ServiceIdentity(c.network, c.directCode)
		gotSE := ServiceIdentity(c.network, c.seCode)
		if gotDirect != c.want {
			t.Errorf("直连代码 %s 归一结果错误: got %s, want %s", c.directCode, gotDirect, c.want)
		}
		if gotSE != c.want {
			t.Errorf("聚合商代码 %s 归一结果错误: got %s, want %s", c.seCode, gotSE, c.want)
		}
	}
}

func TestServiceIdentity_DirectCatalogFullyMapped(t *testing.T) {
	// 目录里的每个直连代码都必须命中规范化表，不允许落到兜底 slug——
	// FedEx 目录代码是大写，落到兜底会得到 "fedex:fedex_ground" 这类
	// 与聚合商键对不上的结果，归并就永远合不到一起
	for _, network := range []string{"ups", "fedex"} {
		for _, entry := range DirectCatalog(network) {
			code := network + "-direct:" + entry.Code
			if _, ok := canonicalServiceKeys[strings.ToLower(code)]; !ok {
				t.Errorf("直连代码 %s 不在规范化表里", code)
			}
			if got := ServiceIdentity(network, code); strings.Contains(got, "-direct") {
				t.Errorf("直连代码 %s 归一结果残留路径前缀: %s", code, got)
			}
		}
	}
}

func TestServiceIdentity_FallbackSlug(t *testing.T) {
	// 表里没有的代码走兜底 slug 规则，同样要稳定
	got := ServiceIdentity("ups", "ups_some_new_service")
	if got != "ups:some_new_service" {
		t.Errorf("兜底 slug 错误: got %s", got)
	}

	// 大小写不敏感
	if ServiceIdentity("ups", "UPS_GROUND") != ServiceIdentity("ups", "ups_ground") {
		t.Error("兜底规则应大小写不敏感")
	}

	// 空代码返回空串
	if ServiceIdentity("ups", "  ") != "" {
		t.Error("空代码应返回空串")
	}
}

func TestDirectCatalog(t *testing.T) {
	ups := DirectCatalog("ups")
	if len(ups) != 9 {
		t.Fatalf("UPS 直连目录应有 9 条服务, got %d", len(ups))
	}

	fedex := DirectCatalog("fedex")
	if len(fedex) != 10 {
		t.Fatalf("FedEx 直连目录应有 10 条服务, got %d", len(fedex))
	}

	// 不支持直连的网络没有目录
	if DirectCatalog("usps") != nil {
		t.Error("USPS 不应有直连目录")
	}
}
