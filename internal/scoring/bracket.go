package scoring

import (
	"fmt"
	"math"
	"sort"

	"costwatch/internal/model"
)

// ResolveBracket 根据月度推荐营收解析生效档位
//
// 任一档位配置了 TargetRecommendedRevenue 时走线性插值路径，
// 否则走阈值兜底路径。无档位时返回 nil。
// 排序键相同的档位按配置顺序取先声明者（稳定排序）。
func ResolveBracket(brackets []model.RevenueBracket, monthlyRevenue float64) (*model.RevenueBracket, bool) {
	if len(brackets) == 0 {
		return nil, false
	}
	if hasRecommendedMarkers(brackets) {
		return interpolateBracket(brackets, monthlyRevenue)
	}
	b := selectByThreshold(brackets, monthlyRevenue)
	return b, false
}

func hasRecommendedMarkers(brackets []model.RevenueBracket) bool {
	for _, b := range brackets {
		if b.TargetRecommendedRevenue != nil {
			return true
		}
	}
	return false
}

// selectByThreshold 阈值兜底路径：按 ThresholdRevenue 升序，
// 取最后一个阈值 <= 实际月营收的档位；全部不满足时取最低档。
func selectByThreshold(brackets []model.RevenueBracket, monthlyRevenue float64) *model.RevenueBracket {
	sorted := make([]model.RevenueBracket, len(brackets))
	copy(sorted, brackets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ThresholdRevenue < sorted[j].ThresholdRevenue
	})

	selected := sorted[0]
	for _, b := range sorted {
		// 阈值相同的档位稳定排序后保持配置顺序，严格大于才更新，
		// 因此重复键取先声明者
		if b.ThresholdRevenue <= monthlyRevenue && b.ThresholdRevenue > selected.ThresholdRevenue {
			selected = b
		}
	}
	return &selected
}

// interpolateBracket 线性插值路径
//
// 仅对携带锚点（TargetRecommendedRevenue）的档位插值。低于最低锚点或
// 高于最高锚点时原样返回端点档位；恰好命中某档位锚点时原样返回该档位；
// 否则在相邻档位对之间对每个金额目标做线性插值，并用插值后的金额
// 重新推导倍率目标，保证倍率视图与金额视图一致。
func interpolateBracket(brackets []model.RevenueBracket, monthlyRevenue float64) (*model.RevenueBracket, bool) {
	anchored := make([]model.RevenueBracket, 0, len(brackets))
	for _, b := range brackets {
		if b.TargetRecommendedRevenue != nil {
			anchored = append(anchored, b)
		}
	}
	if len(anchored) == 0 {
		b := selectByThreshold(brackets, monthlyRevenue)
		return b, false
	}
	sort.SliceStable(anchored, func(i, j int) bool {
		return *anchored[i].TargetRecommendedRevenue < *anchored[j].TargetRecommendedRevenue
	})

	lowest := anchored[0]
	highest := anchored[len(anchored)-1]
	if monthlyRevenue <= *lowest.TargetRecommendedRevenue {
		return &lowest, false
	}
	if monthlyRevenue >= *highest.TargetRecommendedRevenue {
		return &highest, false
	}

	// 恰好命中配置锚点时不合成，直接用配置档位
	for i := range anchored {
		if *anchored[i].TargetRecommendedRevenue == monthlyRevenue {
			b := anchored[i]
			return &b, false
		}
	}

	for i := 0; i < len(anchored)-1; i++ {
		lower := anchored[i]
		upper := anchored[i+1]
		lo := *lower.TargetRecommendedRevenue
		hi := *upper.TargetRecommendedRevenue
		if lo <= monthlyRevenue && monthlyRevenue < hi {
			synthetic := blendBrackets(lower, upper, monthlyRevenue)
			return &synthetic, true
		}
	}

	// 区间覆盖完整，理论上不可达；兜底取最高档
	return &highest, false
}

// blendBrackets 在相邻档位之间合成插值档位
func blendBrackets(lower, upper model.RevenueBracket, monthlyRevenue float64) model.RevenueBracket {
	lo := *lower.TargetRecommendedRevenue
	hi := *upper.TargetRecommendedRevenue

	ratio := 0.0
	if hi != lo {
		ratio = (monthlyRevenue - lo) / (hi - lo)
	}

	synthetic := model.RevenueBracket{
		ThresholdRevenue: lower.ThresholdRevenue,
		Label:            fmt.Sprintf("%s~%s", lower.Label, upper.Label),

		TargetRecommendedRevenue: lerpAmount(lower.TargetRecommendedRevenue, upper.TargetRecommendedRevenue, ratio),
		TargetProductionRevenue:  lerpAmount(lower.TargetProductionRevenue, upper.TargetProductionRevenue, ratio),
		TargetRawMaterialCost:    lerpAmount(lower.TargetRawMaterialCost, upper.TargetRawMaterialCost, ratio),
		TargetSubMaterialCost:    lerpAmount(lower.TargetSubMaterialCost, upper.TargetSubMaterialCost, ratio),
		TargetLaborCost:          lerpAmount(lower.TargetLaborCost, upper.TargetLaborCost, ratio),
		TargetOverheadCost:       lerpAmount(lower.TargetOverheadCost, upper.TargetOverheadCost, ratio),

		WasteRateTarget: round1(lower.WasteRateTarget + ratio*(upper.WasteRateTarget-lower.WasteRateTarget)),
	}

	// 倍率目标由合成后的金额目标重新推导，而不是直接插值，
	// 保证两套目标口径互洽。目标金额缺省时倍率保持 0（未定义），
	// 评分侧按未配置处理。
	synthetic.RevenueToRawMaterial = deriveMultiplier(synthetic.TargetProductionRevenue, synthetic.TargetRawMaterialCost)
	synthetic.RevenueToSubMaterial = deriveMultiplier(synthetic.TargetProductionRevenue, synthetic.TargetSubMaterialCost)
	synthetic.ProductionToLabor = deriveMultiplier(synthetic.TargetProductionRevenue, synthetic.TargetLaborCost)
	synthetic.RevenueToExpense = deriveMultiplier(synthetic.TargetProductionRevenue, synthetic.TargetOverheadCost)

	return synthetic
}

// lerpAmount 对可缺省的金额目标线性插值，结果四舍五入到整数货币单位
//
// 两端任一缺省则结果缺省。
func lerpAmount(lower, upper *float64, ratio float64) *float64 {
	if lower == nil || upper == nil {
		return nil
	}
	v := math.Round(*lower + ratio*(*upper-*lower))
	return &v
}

// deriveMultiplier 由金额目标推导倍率目标（目标产值 ÷ 目标成本）
func deriveMultiplier(targetRevenue, targetCost *float64) float64 {
	if targetRevenue == nil || targetCost == nil || *targetCost <= 0 {
		return 0
	}
	return *targetRevenue / *targetCost
}

// ValidateBrackets 校验档位配置（用于保存前提示，不阻断计算）
//
// 排序键重复属于配置歧义：计算时按配置顺序取先声明者，这里报出来
// 让业务方自行消除。
func ValidateBrackets(brackets []model.RevenueBracket) []string {
	errs := make([]string, 0, 2)

	seenAnchor := make(map[float64]string)
	seenThreshold := make(map[float64]string)
	for _, b := range brackets {
		if b.TargetRecommendedRevenue != nil {
			if prev, ok := seenAnchor[*b.TargetRecommendedRevenue]; ok {
				errs = append(errs, fmt.Sprintf("档位 %q 与 %q 的目标推荐营收重复", b.Label, prev))
			} else {
				seenAnchor[*b.TargetRecommendedRevenue] = b.Label
			}
			continue
		}
		if prev, ok := seenThreshold[b.ThresholdRevenue]; ok {
			errs = append(errs, fmt.Sprintf("档位 %q 与 %q 的营收阈值重复", b.Label, prev))
		} else {
			seenThreshold[b.ThresholdRevenue] = b.Label
		}
	}

	return errs
}

// round1 四舍五入到一位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
