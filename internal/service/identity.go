package service

import "strings"

// 服务标识规范化
// 同一逻辑服务在两条路径下代码不同（UPS Ground 直连是 "03"，
// ShipEngine 上报是 "ups_ground"），归并前先映射到统一键 "network:slug"。
// 表里没有的代码按 slug 规则兜底，保证任何输入都能得到稳定的键。

// canonicalServiceKeys 服务代码 -> 统一标识
// 左列覆盖两类来源：直连代码（"ups-direct:03"）和聚合商代码（"ups_ground"）。
// 查表前代码统一转小写，键一律存小写（FedEx 目录原生代码是大写）
var canonicalServiceKeys = map[string]string{
	// ---- UPS 直连代码 ----
	"ups-direct:01": "ups:next_day_air",
	"ups-direct:02": "ups:2nd_day_air",
	"ups-direct:03": "ups:ground",
	"ups-direct:07": "ups:worldwide_express",
	"ups-direct:08": "ups:worldwide_expedited",
	"ups-direct:11": "ups:standard",
	"ups-direct:12": "ups:3_day_select",
	"ups-direct:13": "ups:next_day_air_saver",
	"ups-direct:14": "ups:next_day_air_early",

	// ---- UPS 聚合商代码 ----
	"ups_next_day_air":           "ups:next_day_air",
	"ups_2nd_day_air":            "ups:2nd_day_air",
	"ups_ground":                 "ups:ground",
	"ups_worldwide_express":      "ups:worldwide_express",
	"ups_worldwide_expedited":    "ups:worldwide_expedited",
	"ups_standard_international": "ups:standard",
	"ups_3_day_select":           "ups:3_day_select",
	"ups_next_day_air_saver":     "ups:next_day_air_saver",
	"ups_next_day_air_early_am":  "ups:next_day_air_early",

	// ---- FedEx 直连代码 ----
	"fedex-direct:fedex_ground":           "fedex:ground",
	"fedex-direct:ground_home_delivery":   "fedex:home_delivery",
	"fedex-direct:fedex_2_day":            "fedex:2day",
	"fedex-direct:fedex_2_day_am":         "fedex:2day_am",
	"fedex-direct:fedex_express_saver":    "fedex:express_saver",
	"fedex-direct:standard_overnight":     "fedex:standard_overnight",
	"fedex-direct:priority_overnight":     "fedex:priority_overnight",
	"fedex-direct:first_overnight":        "fedex:first_overnight",
	"fedex-direct:international_economy":  "fedex:international_economy",
	"fedex-direct:international_priority": "fedex:international_priority",

	// ---- FedEx 聚合商代码 ----
	"fedex_ground":                 "fedex:ground",
	"fedex_home_delivery":          "fedex:home_delivery",
	"fedex_2day":                   "fedex:2day",
	"fedex_2day_am":                "fedex:2day_am",
	"fedex_express_saver":          "fedex:express_saver",
	"fedex_standard_overnight":     "fedex:standard_overnight",
	"fedex_priority_overnight":     "fedex:priority_overnight",
	"fedex_first_overnight":        "fedex:first_overnight",
	"fedex_international_economy":  "fedex:international_economy",
	"fedex_international_priority": "fedex:international_priority",
}

// ServiceIdentity 规范化服务标识
// network: 已推断出的承运商网络，code: 任一路径下的服务代码
// 契约：同一逻辑服务在不同路径下必须归一到同一字符串
func ServiceIdentity(network, code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}

	if key, ok := canonicalServiceKeys[strings.ToLower(code)]; ok {
		return key
	}

	// 兜底：network + slug。聚合商代码通常自带 "ups_" 前缀，去掉避免重复
	slug := strings.ToLower(code)
	slug = strings.TrimPrefix(slug, network+"_")
	slug = strings.TrimPrefix(slug, network+"-direct:")
	slug = strings.ReplaceAll(slug, " ", "_")
	return network + ":" + slug
}

// ==================== 直连服务目录 ====================

// DirectCatalogEntry 直连目录条目
type DirectCatalogEntry struct {
	Code          string // 承运商原生服务代码
	Name          string
	Domestic      bool
	International bool
}

// directCatalogs 各网络的直连服务目录
// 目前支持 UPS 与 FedEx 两个直连网络；存在直连连接时整个目录全量下发，
// 服务启用与否由应用级 selected_services 控制，不看连接上的旧版启用列表
var directCatalogs = map[string][]DirectCatalogEntry{
	"ups": {
		{Code: "03", Name: "UPS Ground", Domestic: true},
		{Code: "12", Name: "UPS 3 Day Select", Domestic: true},
		{Code: "02", Name: "UPS 2nd Day Air", Domestic: true},
		{Code: "13", Name: "UPS Next Day Air Saver", Domestic: true},
		{Code: "01", Name: "UPS Next Day Air", Domestic: true},
		{Code: "14", Name: "UPS Next Day Air Early", Domestic: true},
		{Code: "11", Name: "UPS Standard", International: true},
		{Code: "08", Name: "UPS Worldwide Expedited", International: true},
		{Code: "07", Name: "UPS Worldwide Express", International: true},
	},
	"fedex": {
		{Code: "FEDEX_GROUND", Name: "FedEx Ground", Domestic: true},
		{Code: "GROUND_HOME_DELIVERY", Name: "FedEx Home Delivery", Domestic: true},
		{Code: "FEDEX_EXPRESS_SAVER", Name: "FedEx Express Saver", Domestic: true},
		{Code: "FEDEX_2_DAY", Name: "FedEx 2Day", Domestic: true},
		{Code: "FEDEX_2_DAY_AM", Name: "FedEx 2Day A.M.", Domestic: true},
		{Code: "STANDARD_OVERNIGHT", Name: "FedEx Standard Overnight", Domestic: true},
		{Code: "PRIORITY_OVERNIGHT", Name: "FedEx Priority Overnight", Domestic: true},
		{Code: "FIRST_OVERNIGHT", Name: "FedEx First Overnight", Domestic: true},
		{Code: "INTERNATIONAL_ECONOMY", Name: "FedEx International Economy", International: true},
		{Code: "INTERNATIONAL_PRIORITY", Name: "FedEx International Priority", International: true},
	},
}

// DirectCatalog 获取某网络的直连服务目录，不支持直连的网络返回 nil
func DirectCatalog(network string) []DirectCatalogEntry {
	return directCatalogs[network]
}
