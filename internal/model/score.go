package model

// CostCategory 成本分类
type CostCategory string

// 四大成本分类
const (
	CategoryRawMaterial CostCategory = "rawMaterial"
	CategorySubMaterial CostCategory = "subMaterial"
	CategoryLabor       CostCategory = "labor"
	CategoryOverhead    CostCategory = "overhead"
)

// ScoreStatus 评分状态档
type ScoreStatus string

// 评分状态档（固定阈值：>=110 / >=100 / >=90）
const (
	StatusExcellent ScoreStatus = "excellent"
	StatusGood      ScoreStatus = "good"
	StatusWarning   ScoreStatus = "warning"
	StatusDanger    ScoreStatus = "danger"
)

// CategoryScore 单分类评分结果
type CategoryScore struct {
	Category         CostCategory `json:"category"`
	ActualMultiplier float64      `json:"actualMultiplier"` // 营收 ÷ 实际成本（成本为 0 时为哨兵值）
	TargetMultiplier float64      `json:"targetMultiplier"`
	Score            float64      `json:"score"`
	Status           ScoreStatus  `json:"status"`
	ActualCost       float64      `json:"actualCost"`
	TargetCost       float64      `json:"targetCost"`
	Surplus          float64      `json:"surplus"` // 目标成本 - 实际成本（正数 = 低于预算）
}

// ScoringResult 全周期评分结果
type ScoringResult struct {
	ActiveBracket          RevenueBracket  `json:"activeBracket"` // 实际档位或插值合成档位
	Interpolated           bool            `json:"interpolated"`
	PeriodRevenue          float64         `json:"periodRevenue"`          // 周期结算（推荐）营收
	ProductionRevenue      float64         `json:"productionRevenue"`      // 周期生产产值
	MonthlyRevenueEstimate float64         `json:"monthlyRevenueEstimate"` // 按 30 天折算的月营收
	PeriodDays             int             `json:"periodDays"`
	OverallScore           float64         `json:"overallScore"`
	CategoryScores         []CategoryScore `json:"categoryScores"`
	TotalSurplus           float64         `json:"totalSurplus"`
	TotalCost              float64         `json:"totalCost"`
	TaxCreditApplied       float64         `json:"taxCreditApplied"` // 视同进项税额抵扣
}

// WeeklyScoreResult 周评分结果（周一为键，与全周期共用同一档位）
type WeeklyScoreResult struct {
	WeekStart      string          `json:"weekStart"` // 周一 YYYY-MM-DD
	Revenue        float64         `json:"revenue"`
	OverallScore   float64         `json:"overallScore"`
	CategoryScores []CategoryScore `json:"categoryScores"`
}
