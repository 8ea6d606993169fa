package scoring

import (
	"testing"

	"costwatch/internal/model"
)

// 测试用营收对账函数：结算营收 = 渠道金额 - 促销 - 手续费
func testRevenue(sales []model.SalesRecord, production []model.ProductionRecord) RevenueSummary {
	summary := RevenueSummary{}
	for _, s := range sales {
		summary.RecommendedRevenue += s.Amount - s.Promotion - s.ChannelFee
	}
	for _, p := range production {
		summary.ProductionRevenue += p.Amount
	}
	if summary.ProductionRevenue == 0 {
		summary.ProductionRevenue = summary.RecommendedRevenue
	}
	return summary
}

func testEngine() *Engine {
	return NewEngine(testClassifier(), testRevenue)
}

// 端到端场景：10 天窗口，营收 1 亿
func scenarioRecords() model.RecordSet {
	return model.RecordSet{
		Sales: []model.SalesRecord{
			{Date: "2026-04-03", Channel: "direct", Amount: 100_000_000},
		},
		Purchases: []model.PurchaseRecord{
			{Date: "2026-04-02", ItemCode: "RAW-001", ItemName: "小麦粉", SupplyAmount: 15_000_000},
			{Date: "2026-04-05", ItemCode: "RAW-002", ItemName: "食用油", SupplyAmount: 10_000_000},
			{Date: "2026-04-08", ItemCode: "SUB-101", ItemName: "收缩膜", SupplyAmount: 3_000_000},
		},
		Labor: []model.LaborRecord{
			{Date: "2026-04-04", TotalPay: 10_000_000},
			{Date: "2026-04-09", TotalPay: 8_000_000},
		},
		Utilities: []model.UtilityRecord{
			{Date: "2026-04-06", ElectricityCost: 3_000_000, WaterCost: 400_000, GasCost: 600_000},
		},
		Production: []model.ProductionRecord{
			{Date: "2026-04-07", Product: "速冻水饺", Amount: 100_000_000},
		},
	}
}

func scenarioConfig() Config {
	return Config{
		Brackets: []model.RevenueBracket{
			{
				Label:                "三亿档",
				ThresholdRevenue:     0,
				RevenueToRawMaterial: 4.0,
				RevenueToSubMaterial: 33.0,
				ProductionToLabor:    5.5,
				RevenueToExpense:     25.0,
			},
		},
		DeemedInputTaxRate: 0.028,
		LaborCostRatio:     0.2,
	}
}

// TestComputeFullPeriodScenario 端到端场景验证
func TestComputeFullPeriodScenario(t *testing.T) {
	result := testEngine().ComputeFullPeriodScore(scenarioRecords(), scenarioConfig(), "2026-04-01", "2026-04-10", 10, nil)
	if result == nil {
		t.Fatal("结果不应为 nil")
	}

	if result.PeriodRevenue != 100_000_000 {
		t.Errorf("PeriodRevenue = %v, want 100000000", result.PeriodRevenue)
	}
	// 月度折算: round(100000000 × 30 / 10)
	if result.MonthlyRevenueEstimate != 300_000_000 {
		t.Errorf("MonthlyRevenueEstimate = %v, want 300000000", result.MonthlyRevenueEstimate)
	}
	if result.TaxCreditApplied != 700_000 {
		t.Errorf("TaxCreditApplied = %v, want 700000", result.TaxCreditApplied)
	}

	byCategory := make(map[model.CostCategory]model.CategoryScore)
	for _, s := range result.CategoryScores {
		byCategory[s.Category] = s
	}

	raw := byCategory[model.CategoryRawMaterial]
	// 原料成本 = 25000000 - round(25000000 × 0.028) = 24300000
	if raw.ActualCost != 24_300_000 {
		t.Errorf("原料 ActualCost = %v, want 24300000", raw.ActualCost)
	}
	// round((100000000/24300000)/4.0 × 100) = 103
	if raw.Score != 103 || raw.Status != model.StatusGood {
		t.Errorf("原料评分 = %v(%s), want 103(good)", raw.Score, raw.Status)
	}

	sub := byCategory[model.CategorySubMaterial]
	if sub.Score != 101 {
		t.Errorf("辅料评分 = %v, want 101", sub.Score)
	}
	labor := byCategory[model.CategoryLabor]
	if labor.ActualCost != 18_000_000 || labor.Score != 101 {
		t.Errorf("人工评分 = %v / %v, want 18000000 / 101", labor.ActualCost, labor.Score)
	}
	overhead := byCategory[model.CategoryOverhead]
	if overhead.Score != 100 || overhead.Status != model.StatusGood {
		t.Errorf("费用评分 = %v(%s), want 100(good)", overhead.Score, overhead.Status)
	}

	// 总分 = round((103+101+101+100)/4) = 101
	if result.OverallScore != 101 {
		t.Errorf("OverallScore = %v, want 101", result.OverallScore)
	}
	if result.TotalCost != 24_300_000+3_000_000+18_000_000+4_000_000 {
		t.Errorf("TotalCost = %v", result.TotalCost)
	}
}

// TestComputeFullPeriodNilConditions 测试"数据不足"的 nil 出口
func TestComputeFullPeriodNilConditions(t *testing.T) {
	engine := testEngine()

	if r := engine.ComputeFullPeriodScore(scenarioRecords(), Config{}, "2026-04-01", "2026-04-10", 10, nil); r != nil {
		t.Error("无档位配置应返回 nil")
	}

	empty := model.RecordSet{}
	if r := engine.ComputeFullPeriodScore(empty, scenarioConfig(), "2026-04-01", "2026-04-10", 10, nil); r != nil {
		t.Error("零营收应返回 nil")
	}

	if r := engine.ComputeFullPeriodScore(scenarioRecords(), scenarioConfig(), "2026-04-10", "2026-04-01", 0, nil); r != nil {
		t.Error("非法区间应返回 nil")
	}
}

// TestComputeFullPeriodDaysFallback 测试天数缺省时按区间计算
func TestComputeFullPeriodDaysFallback(t *testing.T) {
	result := testEngine().ComputeFullPeriodScore(scenarioRecords(), scenarioConfig(), "2026-04-01", "2026-04-10", 0, nil)
	if result == nil {
		t.Fatal("结果不应为 nil")
	}
	if result.PeriodDays != 10 {
		t.Errorf("PeriodDays = %d, want 10", result.PeriodDays)
	}
}

// TestComputeFullPeriodProration 测试金额目标按周期天数折算
func TestComputeFullPeriodProration(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Brackets = []model.RevenueBracket{
		{
			Label:                    "定额档",
			TargetRecommendedRevenue: fp(200_000_000),
			TargetProductionRevenue:  fp(200_000_000),
			TargetRawMaterialCost:    fp(300_000_000),
			TargetSubMaterialCost:    fp(30_000_000),
			TargetLaborCost:          fp(60_000_000),
			TargetOverheadCost:       fp(12_000_000),
		},
	}

	records := scenarioRecords()
	result := testEngine().ComputeFullPeriodScore(records, cfg, "2026-04-01", "2026-04-15", 15, nil)
	if result == nil {
		t.Fatal("结果不应为 nil")
	}

	for _, s := range result.CategoryScores {
		if s.Category == model.CategoryRawMaterial {
			// 月度目标 300000000 × 15/30 = 150000000
			if s.TargetCost != 150_000_000 {
				t.Errorf("折算后原料目标 = %v, want 150000000", s.TargetCost)
			}
		}
	}
}

// TestComputeFullPeriodInventory 测试库存调整传导到评分
func TestComputeFullPeriodInventory(t *testing.T) {
	adj := &model.InventoryAdjustment{RawBeginning: 2_000_000, RawEnding: 5_000_000}
	result := testEngine().ComputeFullPeriodScore(scenarioRecords(), scenarioConfig(), "2026-04-01", "2026-04-10", 10, adj)
	if result == nil {
		t.Fatal("结果不应为 nil")
	}

	for _, s := range result.CategoryScores {
		if s.Category == model.CategoryRawMaterial {
			// 消耗 = 2000000 + 25000000 - 5000000 = 22000000，抵扣仍按采购额 700000
			if s.ActualCost != 21_300_000 {
				t.Errorf("原料 ActualCost = %v, want 21300000", s.ActualCost)
			}
		}
	}
}

// TestComputeWeeklyScores 测试周评分序列
func TestComputeWeeklyScores(t *testing.T) {
	records := model.RecordSet{
		Sales: []model.SalesRecord{
			{Date: "2026-04-07", Amount: 50_000_000}, // 2026-04-06 周
			{Date: "2026-04-15", Amount: 50_000_000}, // 2026-04-13 周
		},
		Purchases: []model.PurchaseRecord{
			{Date: "2026-04-08", ItemCode: "RAW-001", ItemName: "小麦粉", SupplyAmount: 12_500_000},
			{Date: "2026-04-16", ItemCode: "RAW-001", ItemName: "小麦粉", SupplyAmount: 12_500_000},
			// 2026-04-20 周只有采购没有销售 → 零营收周
			{Date: "2026-04-21", ItemCode: "RAW-001", ItemName: "小麦粉", SupplyAmount: 5_000_000},
		},
		Labor: []model.LaborRecord{
			{Date: "2026-04-09", TotalPay: 9_000_000},
			{Date: "2026-04-17", TotalPay: 9_000_000},
		},
	}

	weekly := testEngine().ComputeWeeklyScores(records, scenarioConfig(), "2026-04-01", "2026-04-30")
	if len(weekly) != 3 {
		t.Fatalf("周数 = %d, want 3 (零营收周不省略)", len(weekly))
	}

	if weekly[0].WeekStart != "2026-04-06" || weekly[1].WeekStart != "2026-04-13" || weekly[2].WeekStart != "2026-04-20" {
		t.Errorf("周键应按时间序: %s %s %s", weekly[0].WeekStart, weekly[1].WeekStart, weekly[2].WeekStart)
	}

	// 第一周：原料消耗 12500000 - round(12500000×0.028) = 12150000
	// 倍率 50000000/12150000 = 4.115...，对比倍率目标 4.0 → 103
	first := weekly[0]
	if first.Revenue != 50_000_000 {
		t.Errorf("第一周营收 = %v, want 50000000", first.Revenue)
	}
	for _, s := range first.CategoryScores {
		if s.Category == model.CategoryRawMaterial && s.Score != 103 {
			t.Errorf("第一周原料评分 = %v, want 103", s.Score)
		}
	}

	// 零营收周：稠密输出，全 0 评分
	last := weekly[2]
	if last.Revenue != 0 || last.OverallScore != 0 {
		t.Errorf("零营收周 = %v / %v, want 0 / 0", last.Revenue, last.OverallScore)
	}
	if len(last.CategoryScores) != 4 {
		t.Fatalf("零营收周仍应有 4 个分类, got %d", len(last.CategoryScores))
	}
	for _, s := range last.CategoryScores {
		if s.Score != 0 || s.Status != model.StatusDanger {
			t.Errorf("零营收周分类 %s = %v(%s), want 0(danger)", s.Category, s.Score, s.Status)
		}
	}
}

// TestComputeWeeklySameBracket 测试周评分不重新选档
func TestComputeWeeklySameBracket(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Brackets = append(cfg.Brackets, model.RevenueBracket{
		Label:                "六亿档",
		ThresholdRevenue:     500_000_000,
		RevenueToRawMaterial: 5.0,
		RevenueToSubMaterial: 40.0,
		ProductionToLabor:    6.0,
		RevenueToExpense:     30.0,
	})

	// 全周期月度折算 3 亿 → 命中三亿档；单周折算会落到更低口径，
	// 但周评分必须沿用全周期档位
	weekly := testEngine().ComputeWeeklyScores(scenarioRecords(), cfg, "2026-04-01", "2026-04-10")
	if len(weekly) == 0 {
		t.Fatal("周评分不应为空")
	}
	for _, w := range weekly {
		for _, s := range w.CategoryScores {
			if s.Category == model.CategoryRawMaterial && s.Score != 0 && s.TargetMultiplier != 4.0 {
				t.Errorf("周评分应沿用全周期档位倍率 4.0, got %v", s.TargetMultiplier)
			}
		}
	}
}

// TestComputeWeeklyInsufficient 测试数据不足时返回空序列
func TestComputeWeeklyInsufficient(t *testing.T) {
	weekly := testEngine().ComputeWeeklyScores(model.RecordSet{}, scenarioConfig(), "2026-04-01", "2026-04-30")
	if weekly == nil || len(weekly) != 0 {
		t.Errorf("数据不足应返回空序列, got %v", weekly)
	}
}
