// Package revenue 提供默认的营收对账实现。
//
// 评分引擎把营收对账视为黑盒能力（scoring.RevenueFunc），这里是
// 应用层的默认实现：渠道结算营收剔除促销让利与渠道手续费，
// 生产产值取生产记录合计。
package revenue

import (
	"costwatch/internal/model"
	"costwatch/internal/scoring"
)

// Reconcile 默认营收对账
//
// 生产记录缺失时以结算营收替代生产产值，避免人工口径的评分因
// 上游未接入生产数据而失真。
func Reconcile(sales []model.SalesRecord, production []model.ProductionRecord) scoring.RevenueSummary {
	summary := scoring.RevenueSummary{}
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
