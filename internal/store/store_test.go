package store

import (
	"path/filepath"
	"testing"
	"time"

	"costwatch/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "costwatch.db")
	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// TestRecordRoundTrip 测试记录写入与区间查询
func TestRecordRoundTrip(t *testing.T) {
	st := newTestStore(t)

	sales := []model.SalesRecord{
		{Date: "2026-04-01", Channel: "direct", Amount: 1000},
		{Date: "2026-04-15", Channel: "online", Amount: 2000, Promotion: 100},
		{Date: "2026-05-01", Channel: "direct", Amount: 3000},
	}
	if err := st.BatchInsertSales(sales); err != nil {
		t.Fatalf("insert sales: %v", err)
	}

	got, err := st.GetSalesByRange("2026-04-01", "2026-04-30")
	if err != nil {
		t.Fatalf("query sales: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("sales count = %d, want 2", len(got))
	}
	if got[1].Promotion != 100 {
		t.Errorf("Promotion = %v, want 100", got[1].Promotion)
	}

	purchases := []model.PurchaseRecord{
		{Date: "2026-04-02", ItemCode: "RAW-001", ItemName: "小麦粉", SupplyAmount: 500, TaxAmount: 50},
	}
	if err := st.BatchInsertPurchases(purchases); err != nil {
		t.Fatalf("insert purchases: %v", err)
	}
	set, err := st.GetRecordSetByRange("2026-04-01", "2026-04-30")
	if err != nil {
		t.Fatalf("query record set: %v", err)
	}
	if len(set.Sales) != 2 || len(set.Purchases) != 1 {
		t.Errorf("record set sizes = %d/%d, want 2/1", len(set.Sales), len(set.Purchases))
	}

	counts, err := st.CountRecords()
	if err != nil {
		t.Fatalf("count records: %v", err)
	}
	if counts["sales"] != 3 || counts["purchases"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

// TestClearRange 测试按区间清空
func TestClearRange(t *testing.T) {
	st := newTestStore(t)

	_ = st.BatchInsertSales([]model.SalesRecord{
		{Date: "2026-04-01", Amount: 1000},
		{Date: "2026-05-01", Amount: 2000},
	})

	if err := st.ClearRange("2026-04-01", "2026-04-30"); err != nil {
		t.Fatalf("clear range: %v", err)
	}

	got, _ := st.GetSalesByRange("2026-01-01", "2026-12-31")
	if len(got) != 1 || got[0].Date != "2026-05-01" {
		t.Errorf("清空后应只剩 5 月记录: %v", got)
	}
}

// TestBracketsRoundTrip 测试档位配置的整体替换与顺序保持
func TestBracketsRoundTrip(t *testing.T) {
	st := newTestStore(t)

	anchor := 300_000_000.0
	brackets := []model.RevenueBracket{
		{Label: "乙档", ThresholdRevenue: 200, RevenueToRawMaterial: 4.2},
		{Label: "甲档", ThresholdRevenue: 100, TargetRecommendedRevenue: &anchor},
	}
	if err := st.ReplaceBrackets(brackets); err != nil {
		t.Fatalf("replace brackets: %v", err)
	}

	got, err := st.ListBrackets()
	if err != nil {
		t.Fatalf("list brackets: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("bracket count = %d, want 2", len(got))
	}
	// 保持配置顺序，不按阈值重排
	if got[0].Label != "乙档" || got[1].Label != "甲档" {
		t.Errorf("顺序 = %s, %s", got[0].Label, got[1].Label)
	}
	if got[0].TargetRecommendedRevenue != nil {
		t.Error("未配置的金额目标应为 nil")
	}
	if got[1].TargetRecommendedRevenue == nil || *got[1].TargetRecommendedRevenue != anchor {
		t.Errorf("金额目标应原样回读: %v", got[1].TargetRecommendedRevenue)
	}

	// 再次替换应整体覆盖
	if err := st.ReplaceBrackets(brackets[:1]); err != nil {
		t.Fatalf("replace brackets: %v", err)
	}
	got, _ = st.ListBrackets()
	if len(got) != 1 {
		t.Errorf("替换后 bracket count = %d, want 1", len(got))
	}
}

// TestInventoryAdjustmentFor 测试由盘点快照推导库存调整
func TestInventoryAdjustmentFor(t *testing.T) {
	st := newTestStore(t)

	// 无盘点 → nil
	adj, err := st.InventoryAdjustmentFor("2026-04-01", "2026-04-30")
	if err != nil {
		t.Fatalf("inventory adjustment: %v", err)
	}
	if adj != nil {
		t.Error("无盘点时应返回 nil")
	}

	_ = st.BatchInsertInventory([]model.InventorySnapshot{
		{Date: "2026-03-31", RawValue: 5000, SubValue: 500},
		{Date: "2026-04-30", RawValue: 8000, SubValue: 200},
	})

	adj, err = st.InventoryAdjustmentFor("2026-04-01", "2026-04-30")
	if err != nil {
		t.Fatalf("inventory adjustment: %v", err)
	}
	if adj == nil {
		t.Fatal("两端盘点齐备时不应为 nil")
	}
	if adj.RawBeginning != 5000 || adj.RawEnding != 8000 || adj.SubBeginning != 500 || adj.SubEnding != 200 {
		t.Errorf("adjustment = %+v", adj)
	}

	// 区间内只有一次盘点（期初期末同一条）→ nil
	adj, _ = st.InventoryAdjustmentFor("2026-03-31", "2026-04-15")
	if adj != nil {
		t.Errorf("期初期末为同一次盘点时应返回 nil: %+v", adj)
	}
}

// TestConfigKV 测试键值配置
func TestConfigKV(t *testing.T) {
	st := newTestStore(t)

	if err := st.SetConfigFloat("deemed_input_tax_rate", 0.028); err != nil {
		t.Fatalf("set config: %v", err)
	}
	v, err := st.GetConfigFloat("deemed_input_tax_rate")
	if err != nil || v != 0.028 {
		t.Errorf("GetConfigFloat = %v, %v", v, err)
	}

	// 覆盖写
	_ = st.SetConfigFloat("deemed_input_tax_rate", 0.03)
	v, _ = st.GetConfigFloat("deemed_input_tax_rate")
	if v != 0.03 {
		t.Errorf("覆盖后 = %v, want 0.03", v)
	}

	if _, err := st.GetConfig("missing_key"); err == nil {
		t.Error("缺失键应返回错误")
	}
}

// TestImportLog 测试导入日志与最近导入时间
func TestImportLog(t *testing.T) {
	st := newTestStore(t)

	last, err := st.LastImportTime()
	if err != nil || last != "" {
		t.Errorf("无日志时 = %q, %v", last, err)
	}

	now := time.Now()
	if _, err := st.InsertImportLog(&ImportLog{
		Filename:    "records.xlsx",
		Status:      "success",
		StartedAt:   now,
		CompletedAt: &now,
	}); err != nil {
		t.Fatalf("insert import log: %v", err)
	}

	last, err = st.LastImportTime()
	if err != nil {
		t.Fatalf("last import time: %v", err)
	}
	if last == "" {
		t.Error("成功导入后应有最近导入时间")
	}
}
