package scoring

import (
	"strings"

	"costwatch/internal/model"
)

// Classifier 采购分类规则（原料/辅料）
//
// 具体规则由业务方提供且可能随时调整，评分数学不关心规则本身，
// 因此这里只约定接口。
type Classifier interface {
	Classify(p model.PurchaseRecord) model.CostCategory
}

// KeywordClassifier 默认分类规则：辅料编码前缀优先，其次按名称关键词，
// 都不命中归为原料。
type KeywordClassifier struct {
	SubCodePrefixes []string // 辅料专用编码前缀（如 "SUB-"、"PKG-"）
	SubKeywords     []string // 辅料名称关键词（如 包装、纸箱、标签）
}

// NewKeywordClassifier 创建默认分类规则
func NewKeywordClassifier(prefixes, keywords []string) *KeywordClassifier {
	return &KeywordClassifier{
		SubCodePrefixes: prefixes,
		SubKeywords:     keywords,
	}
}

// Classify 返回采购记录所属的成本分类
func (c *KeywordClassifier) Classify(p model.PurchaseRecord) model.CostCategory {
	for _, prefix := range c.SubCodePrefixes {
		if prefix != "" && strings.HasPrefix(p.ItemCode, prefix) {
			return model.CategorySubMaterial
		}
	}
	for _, kw := range c.SubKeywords {
		if kw != "" && strings.Contains(p.ItemName, kw) {
			return model.CategorySubMaterial
		}
	}
	return model.CategoryRawMaterial
}

// removeExcluded 剔除编码在排除清单内的采购记录（在分类之前执行）
func removeExcluded(purchases []model.PurchaseRecord, exclusionCodes []string) []model.PurchaseRecord {
	if len(exclusionCodes) == 0 {
		return purchases
	}
	excluded := make(map[string]bool, len(exclusionCodes))
	for _, code := range exclusionCodes {
		excluded[code] = true
	}
	kept := make([]model.PurchaseRecord, 0, len(purchases))
	for _, p := range purchases {
		if excluded[p.ItemCode] {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
