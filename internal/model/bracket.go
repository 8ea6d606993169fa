package model

// RevenueBracket 营收规模档位（业务配置，外部维护，本核心只读）
//
// 同时携带倍率目标与金额目标。金额目标可缺省（*float64 为 NULL），
// 缺省时评分退化为按倍率目标推导目标成本。
type RevenueBracket struct {
	ID               int64   `json:"id"`
	ThresholdRevenue float64 `json:"thresholdRevenue"` // 档位生效的粗粒度月营收（仅作兜底选择器）
	Label            string  `json:"label"`

	// 倍率目标（营收 ÷ 成本，越高越好；0 表示未配置）
	RevenueToRawMaterial float64 `json:"revenueToRawMaterial"`
	RevenueToSubMaterial float64 `json:"revenueToSubMaterial"`
	ProductionToLabor    float64 `json:"productionToLabor"`
	RevenueToExpense     float64 `json:"revenueToExpense"`

	// 金额目标（月度口径，存在时优先；插值与排序以 TargetRecommendedRevenue 为锚点）
	TargetRecommendedRevenue *float64 `json:"targetRecommendedRevenue"`
	TargetProductionRevenue  *float64 `json:"targetProductionRevenue"`
	TargetRawMaterialCost    *float64 `json:"targetRawMaterialCost"`
	TargetSubMaterialCost    *float64 `json:"targetSubMaterialCost"`
	TargetLaborCost          *float64 `json:"targetLaborCost"`
	TargetOverheadCost       *float64 `json:"targetOverheadCost"`

	WasteRateTarget float64 `json:"wasteRateTarget"` // 损耗率目标（百分比）
}
