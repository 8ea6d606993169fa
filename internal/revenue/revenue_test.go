package revenue

import (
	"testing"

	"costwatch/internal/model"
)

// TestReconcile 测试结算营收口径
func TestReconcile(t *testing.T) {
	sales := []model.SalesRecord{
		{Date: "2026-04-01", Channel: "online", Amount: 60_000_000, Promotion: 3_000_000, ChannelFee: 2_000_000},
		{Date: "2026-04-02", Channel: "direct", Amount: 50_000_000},
	}
	production := []model.ProductionRecord{
		{Date: "2026-04-01", Amount: 80_000_000},
		{Date: "2026-04-02", Amount: 30_000_000},
	}

	summary := Reconcile(sales, production)
	if summary.RecommendedRevenue != 105_000_000 {
		t.Errorf("RecommendedRevenue = %v, want 105000000", summary.RecommendedRevenue)
	}
	if summary.ProductionRevenue != 110_000_000 {
		t.Errorf("ProductionRevenue = %v, want 110000000", summary.ProductionRevenue)
	}
}

// TestReconcileProductionFallback 测试生产记录缺失时的口径回退
func TestReconcileProductionFallback(t *testing.T) {
	sales := []model.SalesRecord{{Date: "2026-04-01", Amount: 40_000_000}}

	summary := Reconcile(sales, nil)
	if summary.ProductionRevenue != 40_000_000 {
		t.Errorf("ProductionRevenue = %v, want 40000000 (回退到结算营收)", summary.ProductionRevenue)
	}
}

// TestReconcileEmpty 测试空输入
func TestReconcileEmpty(t *testing.T) {
	summary := Reconcile(nil, nil)
	if summary.RecommendedRevenue != 0 || summary.ProductionRevenue != 0 {
		t.Errorf("空输入应为零值: %+v", summary)
	}
}
