package scoring

import (
	"math"

	"costwatch/internal/model"
)

// CategoryCosts 四大分类的成本基数
type CategoryCosts struct {
	RawMaterial float64 `json:"rawMaterial"`
	SubMaterial float64 `json:"subMaterial"`
	Labor       float64 `json:"labor"`
	Overhead    float64 `json:"overhead"`

	RawPurchases float64 `json:"rawPurchases"` // 扣减前的原料采购额
	SubPurchases float64 `json:"subPurchases"`
	TaxCredit    float64 `json:"taxCredit"`     // 视同进项税额抵扣（仅原料）
	LaborActual  bool    `json:"laborActual"`   // 人工成本是否来自工时记录（否则为比率估算）
}

// AttributeCosts 计算一个周期内四大分类的成本基数
//
// purchases 应为已筛选到周期内的记录；排除清单在分类之前剔除。
// adj 为 nil 时直接以采购额作为消耗额。
//
// 视同进项税额抵扣只作用于原料：rawDeduction = round(原料采购额 × rate)，
// 辅料不扣减。这一不对称是既定业务规则，不是缺陷。
func AttributeCosts(
	purchases []model.PurchaseRecord,
	labor []model.LaborRecord,
	utilities []model.UtilityRecord,
	classifier Classifier,
	exclusionCodes []string,
	adj *model.InventoryAdjustment,
	deemedInputTaxRate float64,
	laborCostRatio float64,
) CategoryCosts {
	costs := CategoryCosts{}

	for _, p := range removeExcluded(purchases, exclusionCodes) {
		switch classifier.Classify(p) {
		case model.CategorySubMaterial:
			costs.SubPurchases += p.SupplyAmount
		default:
			costs.RawPurchases += p.SupplyAmount
		}
	}

	// 库存增减调整：采购额 → 消耗额
	rawConsumed := costs.RawPurchases
	subConsumed := costs.SubPurchases
	if adj != nil {
		rawConsumed = adj.RawBeginning + costs.RawPurchases - adj.RawEnding
		subConsumed = adj.SubBeginning + costs.SubPurchases - adj.SubEnding
	}

	// 抵扣基数是采购额而非消耗额
	costs.TaxCredit = math.Round(costs.RawPurchases * deemedInputTaxRate)
	costs.RawMaterial = rawConsumed - costs.TaxCredit
	costs.SubMaterial = subConsumed

	// 人工：有工时记录时求和，数据集为空时按比率估算。
	// 触发条件是周期内记录为空，而不是上游没接入工时数据。
	if len(labor) > 0 {
		costs.LaborActual = true
		for _, l := range labor {
			costs.Labor += l.TotalPay
		}
	} else {
		costs.Labor = (costs.RawMaterial + costs.SubMaterial) * laborCostRatio
	}

	// 制造费用：水电燃气合计，无估算兜底
	for _, u := range utilities {
		costs.Overhead += u.ElectricityCost + u.WaterCost + u.GasCost
	}

	return costs
}
