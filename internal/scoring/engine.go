package scoring

import (
	"math"
	"sort"

	"costwatch/internal/model"
)

// RevenueSummary 营收口径汇总（由外部对账函数产出）
type RevenueSummary struct {
	RecommendedRevenue float64 `json:"recommendedRevenue"` // 结算（推荐）营收：渠道营收剔除促销与手续费
	ProductionRevenue  float64 `json:"productionRevenue"`  // 生产产值口径营收
}

// RevenueFunc 营收对账函数，本核心视为黑盒能力
type RevenueFunc func(sales []model.SalesRecord, production []model.ProductionRecord) RevenueSummary

// Config 一次评分计算的业务配置快照
//
// 每次调用显式传入，引擎内部不持有任何全局配置；并发调用方各自
// 携带快照互不干扰。
type Config struct {
	Brackets           []model.RevenueBracket `json:"brackets"`
	DeemedInputTaxRate float64                `json:"deemedInputTaxRate"` // 视同进项税额抵扣率
	LaborCostRatio     float64                `json:"laborCostRatio"`     // 人工成本估算比率
	ExclusionCodes     []string               `json:"exclusionCodes"`
}

// Engine 经营绩效评分引擎
//
// 纯函数式：无 I/O、无共享可变状态，同一输入输出确定。
type Engine struct {
	classifier Classifier
	revenue    RevenueFunc
}

// NewEngine 创建评分引擎
//
// classifier 与 revenue 是调用方提供的黑盒协作能力。
func NewEngine(classifier Classifier, revenue RevenueFunc) *Engine {
	return &Engine{classifier: classifier, revenue: revenue}
}

// ComputeFullPeriodScore 计算全周期评分
//
// rangeDays <= 0 时按区间日期自动计算（含两端）。
// 无档位配置、周期营收为 0 或区间非法时返回 nil，表示"数据不足，
// 无法评分"，不是错误。
func (e *Engine) ComputeFullPeriodScore(
	records model.RecordSet,
	cfg Config,
	rangeStart, rangeEnd string,
	rangeDays int,
	adj *model.InventoryAdjustment,
) *model.ScoringResult {
	if len(cfg.Brackets) == 0 {
		return nil
	}

	days := rangeDays
	if days <= 0 {
		days = PeriodDays(rangeStart, rangeEnd)
	}
	if days <= 0 {
		return nil
	}

	sales := FilterByRange(records.Sales, rangeStart, rangeEnd)
	purchases := FilterByRange(records.Purchases, rangeStart, rangeEnd)
	labor := FilterByRange(records.Labor, rangeStart, rangeEnd)
	utilities := FilterByRange(records.Utilities, rangeStart, rangeEnd)
	production := FilterByRange(records.Production, rangeStart, rangeEnd)

	revenue := e.revenue(sales, production)
	if revenue.RecommendedRevenue == 0 {
		return nil
	}

	// 月度折算后解析档位；档位不按周重新选择，也不按周期长度重选
	monthlyRecommended := math.Round(revenue.RecommendedRevenue * 30 / float64(days))
	bracket, interpolated := ResolveBracket(cfg.Brackets, monthlyRecommended)
	if bracket == nil {
		return nil
	}

	costs := AttributeCosts(purchases, labor, utilities, e.classifier, cfg.ExclusionCodes, adj, cfg.DeemedInputTaxRate, cfg.LaborCostRatio)

	// 金额目标是月度口径，先按周期天数折算再比较
	scores := e.categoryScores(revenue, costs, *bracket, days)

	result := &model.ScoringResult{
		ActiveBracket:          *bracket,
		Interpolated:           interpolated,
		PeriodRevenue:          revenue.RecommendedRevenue,
		ProductionRevenue:      revenue.ProductionRevenue,
		MonthlyRevenueEstimate: monthlyRecommended,
		PeriodDays:             days,
		OverallScore:           overallScore(scores),
		CategoryScores:         scores,
		TaxCreditApplied:       costs.TaxCredit,
	}
	for _, s := range scores {
		result.TotalCost += s.ActualCost
		result.TotalSurplus += s.Surplus
	}
	return result
}

// ComputeWeeklyScores 计算周评分序列
//
// 共用全周期解析出的档位；每周独立计算成本与营收，但金额目标不按周
// 长折算：周评分直接用当周原始倍率对比档位的倍率目标。
// 零营收的周输出全 0 评分而不是被省略，保证时间序列稠密。
func (e *Engine) ComputeWeeklyScores(
	records model.RecordSet,
	cfg Config,
	rangeStart, rangeEnd string,
) []model.WeeklyScoreResult {
	full := e.ComputeFullPeriodScore(records, cfg, rangeStart, rangeEnd, 0, nil)
	if full == nil {
		return []model.WeeklyScoreResult{}
	}
	bracket := full.ActiveBracket

	salesByWeek := GroupByWeek(FilterByRange(records.Sales, rangeStart, rangeEnd))
	purchasesByWeek := GroupByWeek(FilterByRange(records.Purchases, rangeStart, rangeEnd))
	laborByWeek := GroupByWeek(FilterByRange(records.Labor, rangeStart, rangeEnd))
	utilitiesByWeek := GroupByWeek(FilterByRange(records.Utilities, rangeStart, rangeEnd))
	productionByWeek := GroupByWeek(FilterByRange(records.Production, rangeStart, rangeEnd))

	weeks := weekKeyUnion(salesByWeek, purchasesByWeek, laborByWeek, utilitiesByWeek, productionByWeek)

	results := make([]model.WeeklyScoreResult, 0, len(weeks))
	for _, week := range weeks {
		revenue := e.revenue(salesByWeek[week], productionByWeek[week])
		costs := AttributeCosts(purchasesByWeek[week], laborByWeek[week], utilitiesByWeek[week], e.classifier, cfg.ExclusionCodes, nil, cfg.DeemedInputTaxRate, cfg.LaborCostRatio)

		var scores []model.CategoryScore
		if revenue.RecommendedRevenue == 0 {
			scores = zeroWeekScores(costs)
		} else {
			// 不折算金额目标：周评分只对比倍率目标
			scores = []model.CategoryScore{
				ComputeItem(model.CategoryRawMaterial, revenue.RecommendedRevenue, costs.RawMaterial, bracket.RevenueToRawMaterial, nil),
				ComputeItem(model.CategorySubMaterial, revenue.RecommendedRevenue, costs.SubMaterial, bracket.RevenueToSubMaterial, nil),
				ComputeItem(model.CategoryLabor, revenue.ProductionRevenue, costs.Labor, bracket.ProductionToLabor, nil),
				ComputeItem(model.CategoryOverhead, revenue.RecommendedRevenue, costs.Overhead, bracket.RevenueToExpense, nil),
			}
		}

		results = append(results, model.WeeklyScoreResult{
			WeekStart:      week,
			Revenue:        revenue.RecommendedRevenue,
			OverallScore:   overallScore(scores),
			CategoryScores: scores,
		})
	}
	return results
}

// categoryScores 计算四大分类评分
//
// 人工对比生产产值（ProductionToLabor 口径），其余三类对比结算营收。
func (e *Engine) categoryScores(revenue RevenueSummary, costs CategoryCosts, bracket model.RevenueBracket, days int) []model.CategoryScore {
	return []model.CategoryScore{
		ComputeItem(model.CategoryRawMaterial, revenue.RecommendedRevenue, costs.RawMaterial, bracket.RevenueToRawMaterial, prorate(bracket.TargetRawMaterialCost, days)),
		ComputeItem(model.CategorySubMaterial, revenue.RecommendedRevenue, costs.SubMaterial, bracket.RevenueToSubMaterial, prorate(bracket.TargetSubMaterialCost, days)),
		ComputeItem(model.CategoryLabor, revenue.ProductionRevenue, costs.Labor, bracket.ProductionToLabor, prorate(bracket.TargetLaborCost, days)),
		ComputeItem(model.CategoryOverhead, revenue.RecommendedRevenue, costs.Overhead, bracket.RevenueToExpense, prorate(bracket.TargetOverheadCost, days)),
	}
}

// prorate 月度金额目标按周期天数线性折算
func prorate(target *float64, days int) *float64 {
	if target == nil {
		return nil
	}
	v := math.Round(*target * float64(days) / 30)
	return &v
}

// overallScore 总分 = 四个已取整分类分值的平均值再取整
//
// 注意不是对未取整倍率求平均。
func overallScore(scores []model.CategoryScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s.Score
	}
	return math.Round(sum / float64(len(scores)))
}

// zeroWeekScores 零营收周的占位评分（分值全 0，实际成本照常给出）
func zeroWeekScores(costs CategoryCosts) []model.CategoryScore {
	zero := func(category model.CostCategory, cost float64) model.CategoryScore {
		return model.CategoryScore{
			Category:   category,
			Status:     model.StatusDanger,
			ActualCost: cost,
			Surplus:    -cost,
		}
	}
	return []model.CategoryScore{
		zero(model.CategoryRawMaterial, costs.RawMaterial),
		zero(model.CategorySubMaterial, costs.SubMaterial),
		zero(model.CategoryLabor, costs.Labor),
		zero(model.CategoryOverhead, costs.Overhead),
	}
}

// weekKeyUnion 合并各记录流出现过的周键并排序
func weekKeyUnion(
	sales map[string][]model.SalesRecord,
	purchases map[string][]model.PurchaseRecord,
	labor map[string][]model.LaborRecord,
	utilities map[string][]model.UtilityRecord,
	production map[string][]model.ProductionRecord,
) []string {
	seen := make(map[string]bool)
	for k := range sales {
		seen[k] = true
	}
	for k := range purchases {
		seen[k] = true
	}
	for k := range labor {
		seen[k] = true
	}
	for k := range utilities {
		seen[k] = true
	}
	for k := range production {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
