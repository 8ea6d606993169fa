package scoring

import (
	"testing"

	"costwatch/internal/model"
)

func fp(v float64) *float64 { return &v }

// 三档金额目标配置：锚点 1 亿 / 3 亿 / 6 亿
func anchoredBrackets() []model.RevenueBracket {
	return []model.RevenueBracket{
		{
			Label:                    "小型",
			ThresholdRevenue:         0,
			TargetRecommendedRevenue: fp(100_000_000),
			TargetProductionRevenue:  fp(90_000_000),
			TargetRawMaterialCost:    fp(25_000_000),
			TargetSubMaterialCost:    fp(3_000_000),
			TargetLaborCost:          fp(18_000_000),
			TargetOverheadCost:       fp(4_000_000),
			WasteRateTarget:          3.0,
		},
		{
			Label:                    "中型",
			ThresholdRevenue:         200_000_000,
			TargetRecommendedRevenue: fp(300_000_000),
			TargetProductionRevenue:  fp(270_000_000),
			TargetRawMaterialCost:    fp(70_000_000),
			TargetSubMaterialCost:    fp(8_000_000),
			TargetLaborCost:          fp(48_000_000),
			TargetOverheadCost:       fp(11_000_000),
			WasteRateTarget:          2.5,
		},
		{
			Label:                    "大型",
			ThresholdRevenue:         500_000_000,
			TargetRecommendedRevenue: fp(600_000_000),
			TargetProductionRevenue:  fp(540_000_000),
			TargetRawMaterialCost:    fp(130_000_000),
			TargetSubMaterialCost:    fp(15_000_000),
			TargetLaborCost:          fp(90_000_000),
			TargetOverheadCost:       fp(20_000_000),
			WasteRateTarget:          2.0,
		},
	}
}

// 仅倍率目标的配置（走阈值兜底路径）
func thresholdBrackets() []model.RevenueBracket {
	return []model.RevenueBracket{
		{Label: "一档", ThresholdRevenue: 0, RevenueToRawMaterial: 4.0},
		{Label: "二档", ThresholdRevenue: 200_000_000, RevenueToRawMaterial: 4.2},
		{Label: "三档", ThresholdRevenue: 500_000_000, RevenueToRawMaterial: 4.5},
	}
}

// TestResolveBracketEmpty 测试无档位配置
func TestResolveBracketEmpty(t *testing.T) {
	if b, _ := ResolveBracket(nil, 100_000_000); b != nil {
		t.Errorf("无档位应返回 nil, got %v", b)
	}
}

// TestSelectByThreshold 测试阈值兜底路径
func TestSelectByThreshold(t *testing.T) {
	brackets := thresholdBrackets()

	tests := []struct {
		name    string
		revenue float64
		label   string
	}{
		{"低于全部阈值取最低档", 0, "一档"},
		{"一档区间内", 150_000_000, "一档"},
		{"恰好命中二档阈值", 200_000_000, "二档"},
		{"二档区间内", 400_000_000, "二档"},
		{"超过最高阈值", 900_000_000, "三档"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, interpolated := ResolveBracket(brackets, tt.revenue)
			if b == nil {
				t.Fatal("ResolveBracket 返回 nil")
			}
			if interpolated {
				t.Error("阈值路径不应产生插值档位")
			}
			if b.Label != tt.label {
				t.Errorf("Label = %s, want %s", b.Label, tt.label)
			}
		})
	}
}

// TestInterpolateClamping 测试锚点区间外的钳制
func TestInterpolateClamping(t *testing.T) {
	brackets := anchoredBrackets()

	b, interpolated := ResolveBracket(brackets, 50_000_000)
	if interpolated || b.Label != "小型" {
		t.Errorf("低于最低锚点应原样返回最低档, got %s interpolated=%v", b.Label, interpolated)
	}

	b, interpolated = ResolveBracket(brackets, 900_000_000)
	if interpolated || b.Label != "大型" {
		t.Errorf("高于最高锚点应原样返回最高档, got %s interpolated=%v", b.Label, interpolated)
	}
}

// TestInterpolateExactMarker 测试恰好命中锚点（边界精确性）
func TestInterpolateExactMarker(t *testing.T) {
	brackets := anchoredBrackets()

	b, interpolated := ResolveBracket(brackets, 300_000_000)
	if interpolated {
		t.Fatal("命中锚点不应合成插值档位")
	}
	if b.Label != "中型" {
		t.Fatalf("Label = %s, want 中型", b.Label)
	}
	if *b.TargetRawMaterialCost != 70_000_000 {
		t.Errorf("命中锚点应返回档位原值, got %v", *b.TargetRawMaterialCost)
	}
}

// TestInterpolateMidpoint 测试区间中点插值
func TestInterpolateMidpoint(t *testing.T) {
	brackets := anchoredBrackets()

	// 2 亿落在 1 亿与 3 亿正中，ratio = 0.5
	b, interpolated := ResolveBracket(brackets, 200_000_000)
	if !interpolated {
		t.Fatal("区间内应产生插值档位")
	}
	if b.Label != "小型~中型" {
		t.Errorf("Label = %s, want 小型~中型", b.Label)
	}
	if *b.TargetRecommendedRevenue != 200_000_000 {
		t.Errorf("TargetRecommendedRevenue = %v, want 200000000", *b.TargetRecommendedRevenue)
	}
	if *b.TargetRawMaterialCost != 47_500_000 {
		t.Errorf("TargetRawMaterialCost = %v, want 47500000", *b.TargetRawMaterialCost)
	}
	if *b.TargetLaborCost != 33_000_000 {
		t.Errorf("TargetLaborCost = %v, want 33000000", *b.TargetLaborCost)
	}
	// 损耗率保留一位小数: 3.0 + 0.5×(2.5-3.0) = 2.8 (四舍五入后)
	if b.WasteRateTarget != 2.8 {
		t.Errorf("WasteRateTarget = %v, want 2.8", b.WasteRateTarget)
	}
}

// TestInterpolateMonotonic 测试插值单调性：区间内逐项严格介于两端之间
func TestInterpolateMonotonic(t *testing.T) {
	brackets := anchoredBrackets()

	b, interpolated := ResolveBracket(brackets, 180_000_000)
	if !interpolated {
		t.Fatal("区间内应产生插值档位")
	}

	checks := []struct {
		name  string
		lower float64
		value float64
		upper float64
	}{
		{"原料目标", 25_000_000, *b.TargetRawMaterialCost, 70_000_000},
		{"辅料目标", 3_000_000, *b.TargetSubMaterialCost, 8_000_000},
		{"人工目标", 18_000_000, *b.TargetLaborCost, 48_000_000},
		{"费用目标", 4_000_000, *b.TargetOverheadCost, 11_000_000},
		{"产值目标", 90_000_000, *b.TargetProductionRevenue, 270_000_000},
	}
	for _, c := range checks {
		if !(c.lower < c.value && c.value < c.upper) {
			t.Errorf("%s = %v, 应严格介于 %v 与 %v 之间", c.name, c.value, c.lower, c.upper)
		}
	}
}

// TestInterpolateDerivedMultipliers 测试倍率由插值金额重新推导（往返一致性）
func TestInterpolateDerivedMultipliers(t *testing.T) {
	brackets := anchoredBrackets()

	b, _ := ResolveBracket(brackets, 200_000_000)

	expected := *b.TargetProductionRevenue / *b.TargetRawMaterialCost
	if !floatEquals(b.RevenueToRawMaterial, expected) {
		t.Errorf("RevenueToRawMaterial = %v, want %v", b.RevenueToRawMaterial, expected)
	}
	expected = *b.TargetProductionRevenue / *b.TargetLaborCost
	if !floatEquals(b.ProductionToLabor, expected) {
		t.Errorf("ProductionToLabor = %v, want %v", b.ProductionToLabor, expected)
	}
}

// TestInterpolateMissingAmount 测试单侧缺省金额目标
func TestInterpolateMissingAmount(t *testing.T) {
	brackets := anchoredBrackets()
	brackets[0].TargetOverheadCost = nil

	b, interpolated := ResolveBracket(brackets, 200_000_000)
	if !interpolated {
		t.Fatal("区间内应产生插值档位")
	}
	if b.TargetOverheadCost != nil {
		t.Errorf("单侧缺省的金额目标插值后应仍缺省, got %v", *b.TargetOverheadCost)
	}
	if b.RevenueToExpense != 0 {
		t.Errorf("缺省金额推导出的倍率应为 0, got %v", b.RevenueToExpense)
	}
}

// TestBracketTieBreak 测试排序键重复时按配置顺序取先声明者
func TestBracketTieBreak(t *testing.T) {
	brackets := []model.RevenueBracket{
		{Label: "先声明", ThresholdRevenue: 100},
		{Label: "后声明", ThresholdRevenue: 100},
	}

	b, _ := ResolveBracket(brackets, 50)
	if b.Label != "先声明" {
		t.Errorf("低于阈值取最低档时应取先声明者, got %s", b.Label)
	}
	b, _ = ResolveBracket(brackets, 200)
	if b.Label != "先声明" {
		t.Errorf("阈值重复时应取先声明者, got %s", b.Label)
	}
}

// TestValidateBrackets 测试重复排序键校验
func TestValidateBrackets(t *testing.T) {
	if errs := ValidateBrackets(anchoredBrackets()); len(errs) != 0 {
		t.Errorf("合法配置不应有校验错误: %v", errs)
	}

	dup := anchoredBrackets()
	dup[1].TargetRecommendedRevenue = fp(100_000_000)
	if errs := ValidateBrackets(dup); len(errs) != 1 {
		t.Errorf("重复锚点应报 1 条, got %v", errs)
	}

	flat := thresholdBrackets()
	flat[2].ThresholdRevenue = 0
	if errs := ValidateBrackets(flat); len(errs) != 1 {
		t.Errorf("重复阈值应报 1 条, got %v", errs)
	}
}
