package scoring

import (
	"math"

	"costwatch/internal/model"
)

// cappedScore 成本为 0 但营收为正时的哨兵分值
//
// 表示"完美但不可度量"，不是无穷大。是否在展示层封顶由 UI 决定，
// 本核心原样输出。
const cappedScore = 150

// multiplierKind 实际倍率的三种形态
type multiplierKind int

const (
	multiplierMeasured  multiplierKind = iota // 正常可度量：revenue / cost
	multiplierCapped                          // 成本为 0、营收为正：封顶哨兵
	multiplierUndefined                       // 成本与营收均为 0
)

// multiplierOutcome 实际倍率的显式标签化表示
//
// 哨兵值 150/0 是对外兼容口径，内部用标签区分，封顶策略只在这里调整。
type multiplierOutcome struct {
	kind  multiplierKind
	value float64
}

func measureMultiplier(revenue, cost float64) multiplierOutcome {
	if cost > 0 {
		return multiplierOutcome{kind: multiplierMeasured, value: revenue / cost}
	}
	if revenue > 0 {
		return multiplierOutcome{kind: multiplierCapped, value: cappedScore}
	}
	return multiplierOutcome{kind: multiplierUndefined, value: 0}
}

// ComputeItem 计算单分类评分
//
// absoluteTarget 存在时优先作为目标成本（调用方负责先按周期折算），
// 否则由倍率目标推导 round(revenue / targetMultiplier)。
func ComputeItem(category model.CostCategory, revenue, cost, targetMultiplier float64, absoluteTarget *float64) model.CategoryScore {
	actual := measureMultiplier(revenue, cost)

	var score float64
	switch {
	case targetMultiplier > 0:
		score = math.Round(actual.value / targetMultiplier * 100)
	case actual.kind != multiplierMeasured && cost == 0:
		score = cappedScore
	default:
		score = 0
	}
	// 倍率未定义（零营收零成本）时分值为 0
	if actual.kind == multiplierUndefined {
		score = 0
	}

	var targetCost float64
	switch {
	case absoluteTarget != nil:
		targetCost = *absoluteTarget
	case targetMultiplier > 0:
		targetCost = math.Round(revenue / targetMultiplier)
	}

	return model.CategoryScore{
		Category:         category,
		ActualMultiplier: actual.value,
		TargetMultiplier: targetMultiplier,
		Score:            score,
		Status:           statusForScore(score),
		ActualCost:       cost,
		TargetCost:       targetCost,
		Surplus:          targetCost - cost,
	}
}

// statusForScore 固定阈值的状态映射（各分类一致，不可配置）
func statusForScore(score float64) model.ScoreStatus {
	switch {
	case score >= 110:
		return model.StatusExcellent
	case score >= 100:
		return model.StatusGood
	case score >= 90:
		return model.StatusWarning
	default:
		return model.StatusDanger
	}
}
