package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"costwatch/internal/model"
)

// Exporter 评分报表导出器
//
// 输出两个 Sheet：评分汇总（全周期四大分类）与周评分（按周一排序的
// 时间序列）。工作簿由计算结果生成，不回读数据库。
type Exporter struct {
	exportDir string
}

// NewExporter 创建导出器，exportDir 为报表落盘目录
func NewExporter(exportDir string) *Exporter {
	return &Exporter{exportDir: exportDir}
}

// categoryLabels 分类中文名
var categoryLabels = map[model.CostCategory]string{
	model.CategoryRawMaterial: "原料",
	model.CategorySubMaterial: "辅料",
	model.CategoryLabor:       "人工",
	model.CategoryOverhead:    "制造费用",
}

// statusLabels 状态档中文名
var statusLabels = map[model.ScoreStatus]string{
	model.StatusExcellent: "优秀",
	model.StatusGood:      "良好",
	model.StatusWarning:   "预警",
	model.StatusDanger:    "危险",
}

// Export 生成评分报表工作簿
func (e *Exporter) Export(result *model.ScoringResult, weekly []model.WeeklyScoreResult, start, end string) (*excelize.File, error) {
	if result == nil {
		return nil, fmt.Errorf("no scoring result to export")
	}

	f := excelize.NewFile()

	if err := e.fillSummarySheet(f, result, start, end); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillWeeklySheet(f, weekly); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// ExportToFile 生成报表并落盘，返回文件绝对路径
func (e *Exporter) ExportToFile(result *model.ScoringResult, weekly []model.WeeklyScoreResult, start, end string) (string, error) {
	f, err := e.Export(result, weekly, start, end)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := os.MkdirAll(e.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	filename := fmt.Sprintf("score_report_%s_%s_%s.xlsx", start, end, uuid.New().String()[:8])
	path := filepath.Join(e.exportDir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}

func (e *Exporter) fillSummarySheet(f *excelize.File, result *model.ScoringResult, start, end string) error {
	const sheet = "评分汇总"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return err
	}

	// 周期概览
	overview := [][]interface{}{
		{"评分周期", fmt.Sprintf("%s ~ %s（%d 天）", start, end, result.PeriodDays)},
		{"结算营收", result.PeriodRevenue},
		{"生产产值", result.ProductionRevenue},
		{"折算月营收", result.MonthlyRevenueEstimate},
		{"适用档位", bracketLabel(result)},
		{"综合评分", result.OverallScore},
		{"成本合计", result.TotalCost},
		{"结余合计", result.TotalSurplus},
		{"视同进项税额抵扣", result.TaxCreditApplied},
	}
	for i, row := range overview {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	// 分类明细
	headerRow := len(overview) + 2
	headers := []interface{}{"分类", "实际倍率", "目标倍率", "实际成本", "目标成本", "结余", "评分", "状态"}
	cell, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetSheetRow(sheet, cell, &headers); err != nil {
		return err
	}
	endCell, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	_ = f.SetCellStyle(sheet, cell, endCell, headerStyle)

	for i, cs := range result.CategoryScores {
		row := []interface{}{
			categoryLabels[cs.Category],
			cs.ActualMultiplier,
			cs.TargetMultiplier,
			cs.ActualCost,
			cs.TargetCost,
			cs.Surplus,
			cs.Score,
			statusLabels[cs.Status],
		}
		cell, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "H", 14)
	return nil
}

func (e *Exporter) fillWeeklySheet(f *excelize.File, weekly []model.WeeklyScoreResult) error {
	const sheet = "周评分"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return err
	}

	headers := []interface{}{"周（周一）", "结算营收", "综合评分", "原料", "辅料", "人工", "制造费用"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for i, w := range weekly {
		row := []interface{}{w.WeekStart, w.Revenue, w.OverallScore}
		for _, cat := range []model.CostCategory{
			model.CategoryRawMaterial, model.CategorySubMaterial,
			model.CategoryLabor, model.CategoryOverhead,
		} {
			row = append(row, categoryScoreOf(w.CategoryScores, cat))
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "G", 12)
	return nil
}

// bracketLabel 档位显示名，插值档追加标注
func bracketLabel(result *model.ScoringResult) string {
	if result.Interpolated {
		return result.ActiveBracket.Label + "（插值）"
	}
	return result.ActiveBracket.Label
}

func categoryScoreOf(scores []model.CategoryScore, cat model.CostCategory) float64 {
	for _, s := range scores {
		if s.Category == cat {
			return s.Score
		}
	}
	return 0
}
