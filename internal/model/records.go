package model

import "time"

// SalesRecord 销售记录（按渠道结算口径）
//
// Date 必须为零填充的 YYYY-MM-DD 字符串，周期筛选依赖字典序比较。
type SalesRecord struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Channel     string  `json:"channel"`     // 销售渠道 (direct/online/wholesale...)
	Amount      float64 `json:"amount"`      // 渠道结算金额（含促销与手续费）
	Promotion   float64 `json:"promotion"`   // 促销让利
	ChannelFee  float64 `json:"channelFee"`  // 渠道手续费
	OrderCount  int     `json:"orderCount"`
	SourceSheet string  `json:"sourceSheet"`
	SourceFile  string  `json:"sourceFile"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PurchaseRecord 采购记录（原料/辅料）
type PurchaseRecord struct {
	ID           int64   `json:"id"`
	Date         string  `json:"date"`
	ItemCode     string  `json:"itemCode"`
	ItemName     string  `json:"itemName"`
	Supplier     string  `json:"supplier"`
	SupplyAmount float64 `json:"supplyAmount"` // 供货金额（不含税）
	TaxAmount    float64 `json:"taxAmount"`    // 税额
	Quantity     float64 `json:"quantity"`
	SourceSheet  string  `json:"sourceSheet"`
	SourceFile   string  `json:"sourceFile"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LaborRecord 人工工时记录
type LaborRecord struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Worker      string  `json:"worker"`
	WorkHours   float64 `json:"workHours"`
	TotalPay    float64 `json:"totalPay"` // 应发工资合计
	SourceSheet string  `json:"sourceSheet"`
	SourceFile  string  `json:"sourceFile"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UtilityRecord 水电燃气记录
type UtilityRecord struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	ElectricityCost float64 `json:"electricityCost"`
	WaterCost       float64 `json:"waterCost"`
	GasCost         float64 `json:"gasCost"`
	SourceSheet     string  `json:"sourceSheet"`
	SourceFile      string  `json:"sourceFile"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ProductionRecord 生产记录（生产产值口径）
type ProductionRecord struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Product     string  `json:"product"`
	Quantity    float64 `json:"quantity"`
	Amount      float64 `json:"amount"` // 生产产值
	SourceSheet string  `json:"sourceSheet"`
	SourceFile  string  `json:"sourceFile"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InventorySnapshot 库存盘点快照（期初/期末估值）
type InventorySnapshot struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	RawValue    float64 `json:"rawValue"` // 原料库存估值
	SubValue    float64 `json:"subValue"` // 辅料库存估值
	SourceSheet string  `json:"sourceSheet"`
	SourceFile  string  `json:"sourceFile"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InventoryAdjustment 库存增减调整（把采购额换算为消耗额）
//
// consumed = beginning + purchases - ending
type InventoryAdjustment struct {
	RawBeginning float64 `json:"rawBeginning"`
	RawEnding    float64 `json:"rawEnding"`
	SubBeginning float64 `json:"subBeginning"`
	SubEnding    float64 `json:"subEnding"`
}

// RecordSet 一次评分计算所需的全部记录流
type RecordSet struct {
	Sales      []SalesRecord      `json:"sales"`
	Purchases  []PurchaseRecord   `json:"purchases"`
	Labor      []LaborRecord      `json:"labor"`
	Utilities  []UtilityRecord    `json:"utilities"`
	Production []ProductionRecord `json:"production"`
}
