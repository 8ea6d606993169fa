package importer

import "strings"

// SheetType Sheet 类型
type SheetType string

const (
	SheetTypeSales      SheetType = "sales"
	SheetTypePurchase   SheetType = "purchase"
	SheetTypeLabor      SheetType = "labor"
	SheetTypeUtility    SheetType = "utility"
	SheetTypeProduction SheetType = "production"
	SheetTypeInventory  SheetType = "inventory"
	SheetTypeUnknown    SheetType = "unknown"
)

// SheetRecognitionResult Sheet 识别结果
type SheetRecognitionResult struct {
	SheetName  string    `json:"sheetName"`
	SheetType  SheetType `json:"sheetType"`
	Confidence float64   `json:"confidence"` // 置信度 0-1
}

// SheetRecognizer Sheet 类型识别器
type SheetRecognizer struct{}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer() *SheetRecognizer {
	return &SheetRecognizer{}
}

// sheetSignature 单类 Sheet 的识别特征
type sheetSignature struct {
	sheetType SheetType
	// 每个元素为一组同义列名，组内任一出现即计一次命中
	keyFields [][]string
	// Sheet 名包含任一关键词时加分
	nameKeywords []string
}

var signatures = []sheetSignature{
	{
		sheetType: SheetTypeSales,
		keyFields: [][]string{
			{"日期", "销售日期"},
			{"渠道", "销售渠道"},
			{"结算金额", "销售金额", "销售额"},
			{"促销", "促销让利"},
			{"手续费", "渠道手续费"},
		},
		nameKeywords: []string{"销售", "sales"},
	},
	{
		sheetType: SheetTypePurchase,
		keyFields: [][]string{
			{"日期", "采购日期", "到货日期"},
			{"物料编码", "物料编号", "编码"},
			{"物料名称", "品名", "名称"},
			{"供货金额", "采购金额", "不含税金额"},
			{"税额", "进项税额"},
		},
		nameKeywords: []string{"采购", "进货", "purchase"},
	},
	{
		sheetType: SheetTypeLabor,
		keyFields: [][]string{
			{"日期", "考勤日期"},
			{"姓名", "员工", "工人"},
			{"工时", "工作时长"},
			{"应发工资", "工资合计", "应发合计"},
		},
		nameKeywords: []string{"人工", "工资", "考勤", "labor"},
	},
	{
		sheetType: SheetTypeUtility,
		keyFields: [][]string{
			{"日期", "抄表日期"},
			{"电费", "电力费用"},
			{"水费"},
			{"燃气费", "天然气费", "气费"},
		},
		nameKeywords: []string{"水电", "能源", "动力", "utility"},
	},
	{
		sheetType: SheetTypeProduction,
		keyFields: [][]string{
			{"日期", "生产日期"},
			{"产品", "产品名称"},
			{"数量", "产量"},
			{"产值", "生产产值", "产值金额"},
		},
		nameKeywords: []string{"生产", "产值", "production"},
	},
	{
		sheetType: SheetTypeInventory,
		keyFields: [][]string{
			{"日期", "盘点日期"},
			{"原料库存", "原材料库存", "原料估值"},
			{"辅料库存", "辅料估值", "包材库存"},
		},
		nameKeywords: []string{"库存", "盘点", "inventory"},
	},
}

// Recognize 识别 Sheet 类型
//
// 列名命中率为主，Sheet 名关键词加 0.2 辅助分；取最高且 >= 0.5 的类型。
func (r *SheetRecognizer) Recognize(sheetName string, columnNames []string) SheetRecognitionResult {
	normalized := make([]string, len(columnNames))
	for i, col := range columnNames {
		normalized[i] = NormalizeColumnName(col)
	}

	best := SheetRecognitionResult{
		SheetName:  sheetName,
		SheetType:  SheetTypeUnknown,
		Confidence: 0,
	}

	for _, sig := range signatures {
		matchCount := 0
		for _, group := range sig.keyFields {
			for _, col := range normalized {
				if ContainsAny(col, group) {
					matchCount++
					break
				}
			}
		}

		confidence := float64(matchCount) / float64(len(sig.keyFields))
		if hasNameKeyword(sheetName, sig.nameKeywords) {
			confidence += 0.2
		}

		if confidence > best.Confidence {
			best.SheetType = sig.sheetType
			best.Confidence = confidence
		}
	}

	if best.Confidence < 0.5 {
		best.SheetType = SheetTypeUnknown
	}
	return best
}

func hasNameKeyword(sheetName string, keywords []string) bool {
	lower := strings.ToLower(sheetName)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
