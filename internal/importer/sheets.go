package importer

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"costwatch/internal/model"
)

// columnIndex 在规范化后的表头中找同义列，找不到返回 -1
func columnIndex(headers []string, synonyms ...string) int {
	for i, h := range headers {
		if ContainsAny(NormalizeColumnName(h), synonyms) {
			return i
		}
	}
	return -1
}

// sheetParser 按 Sheet 类型解析数据行并交给协调器入库
type sheetParser struct {
	file       *excelize.File
	sourceFile string
}

func newSheetParser(file *excelize.File, filePath string) *sheetParser {
	return &sheetParser{
		file:       file,
		sourceFile: filepath.Base(filePath),
	}
}

// rowRange 返回 Sheet 的表头与数据行
func (p *sheetParser) rowRange(sheetName string) ([]string, [][]string, error) {
	rows, err := p.file.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("sheet has no data rows")
	}
	return rows[0], rows[1:], nil
}

// parseSales 解析销售 Sheet
func (p *sheetParser) parseSales(sheetName string) ([]model.SalesRecord, []string) {
	headers, dataRows, err := p.rowRange(sheetName)
	if err != nil {
		return nil, []string{err.Error()}
	}

	dateIdx := columnIndex(headers, "日期")
	channelIdx := columnIndex(headers, "渠道")
	amountIdx := columnIndex(headers, "结算金额", "销售金额", "销售额")
	promoIdx := columnIndex(headers, "促销")
	feeIdx := columnIndex(headers, "手续费")
	orderIdx := columnIndex(headers, "订单数", "单数")

	if dateIdx < 0 || amountIdx < 0 {
		return nil, []string{"缺少日期或金额列"}
	}

	var records []model.SalesRecord
	var errs []string
	for i, row := range dataRows {
		date, err := NormalizeDate(cellAt(row, dateIdx))
		if err != nil {
			if cellAt(row, dateIdx) != "" {
				errs = append(errs, fmt.Sprintf("第 %d 行: %v", i+2, err))
			}
			continue
		}
		records = append(records, model.SalesRecord{
			Date:        date,
			Channel:     cellAt(row, channelIdx),
			Amount:      parseFloat(cellAt(row, amountIdx)),
			Promotion:   parseFloat(cellAt(row, promoIdx)),
			ChannelFee:  parseFloat(cellAt(row, feeIdx)),
			OrderCount:  parseInt(cellAt(row, orderIdx)),
			SourceSheet: sheetName,
			SourceFile:  p.sourceFile,
		})
	}
	return records, errs
}

// parsePurchases 解析采购 Sheet
func (p *sheetParser) parsePurchases(sheetName string) ([]model.PurchaseRecord, []string) {
	headers, dataRows, err := p.rowRange(sheetName)
	if err != nil {
		return nil, []string{err.Error()}
	}

	dateIdx := columnIndex(headers, "日期")
	codeIdx := columnIndex(headers, "物料编码", "物料编号", "编码")
	nameIdx := columnIndex(headers, "物料名称", "品名", "名称")
	supplierIdx := columnIndex(headers, "供应商")
	amountIdx := columnIndex(headers, "供货金额", "采购金额", "不含税金额")
	taxIdx := columnIndex(headers, "税额")
	qtyIdx := columnIndex(headers, "数量")

	if dateIdx < 0 || amountIdx < 0 {
		return nil, []string{"缺少日期或金额列"}
	}

	var records []model.PurchaseRecord
	var errs []string
	for i, row := range dataRows {
		date, err := NormalizeDate(cellAt(row, dateIdx))
		if err != nil {
			if cellAt(row, dateIdx) != "" {
				errs = append(errs, fmt.Sprintf("第 %d 行: %v", i+2, err))
			}
			continue
		}
		records = append(records, model.PurchaseRecord{
			Date:         date,
			ItemCode:     cellAt(row, codeIdx),
			ItemName:     cellAt(row, nameIdx),
			Supplier:     cellAt(row, supplierIdx),
			SupplyAmount: parseFloat(cellAt(row, amountIdx)),
			TaxAmount:    parseFloat(cellAt(row, taxIdx)),
			Quantity:     parseFloat(cellAt(row, qtyIdx)),
			SourceSheet:  sheetName,
			SourceFile:   p.sourceFile,
		})
	}
	return records, errs
}

// parseLabor 解析人工 Sheet
func (p *sheetParser) parseLabor(sheetName string) ([]model.LaborRecord, []string) {
	headers, dataRows, err := p.rowRange(sheetName)
	if err != nil {
		return nil, []string{err.Error()}
	}

	dateIdx := columnIndex(headers, "日期")
	workerIdx := columnIndex(headers, "姓名", "员工", "工人")
	hoursIdx := columnIndex(headers, "工时", "工作时长")
	payIdx := columnIndex(headers, "应发工资", "工资合计", "应发合计")

	if dateIdx < 0 || payIdx < 0 {
		return nil, []string{"缺少日期或工资列"}
	}

	var records []model.LaborRecord
	var errs []string
	for i, row := range dataRows {
		date, err := NormalizeDate(cellAt(row, dateIdx))
		if err != nil {
			if cellAt(row, dateIdx) != "" {
				errs = append(errs, fmt.Sprintf("第 %d 行: %v", i+2, err))
			}
			continue
		}
		records = append(records, model.LaborRecord{
			Date:        date,
			Worker:      cellAt(row, workerIdx),
			WorkHours:   parseFloat(cellAt(row, hoursIdx)),
			TotalPay:    parseFloat(cellAt(row, payIdx)),
			SourceSheet: sheetName,
			SourceFile:  p.sourceFile,
		})
	}
	return records, errs
}

// parseUtilities 解析水电燃气 Sheet
func (p *sheetParser) parseUtilities(sheetName string) ([]model.UtilityRecord, []string) {
	headers, dataRows, err := p.rowRange(sheetName)
	if err != nil {
		return nil, []string{err.Error()}
	}

	dateIdx := columnIndex(headers, "日期")
	elecIdx := columnIndex(headers, "电费", "电力费用")
	waterIdx := columnIndex(headers, "水费")
	gasIdx := columnIndex(headers, "燃气费", "天然气费", "气费")

	if dateIdx < 0 || (elecIdx < 0 && waterIdx < 0 && gasIdx < 0) {
		return nil, []string{"缺少日期或费用列"}
	}

	var records []model.UtilityRecord
	var errs []string
	for i, row := range dataRows {
		date, err := NormalizeDate(cellAt(row, dateIdx))
		if err != nil {
			if cellAt(row, dateIdx) != "" {
				errs = append(errs, fmt.Sprintf("第 %d 行: %v", i+2, err))
			}
			continue
		}
		records = append(records, model.UtilityRecord{
			Date:            date,
			ElectricityCost: parseFloat(cellAt(row, elecIdx)),
			WaterCost:       parseFloat(cellAt(row, waterIdx)),
			GasCost:         parseFloat(cellAt(row, gasIdx)),
			SourceSheet:     sheetName,
			SourceFile:      p.sourceFile,
		})
	}
	return records, errs
}

// parseProduction 解析生产 Sheet
func (p *sheetParser) parseProduction(sheetName string) ([]model.ProductionRecord, []string) {
	headers, dataRows, err := p.rowRange(sheetName)
	if err != nil {
		return nil, []string{err.Error()}
	}

	dateIdx := columnIndex(headers, "日期")
	productIdx := columnIndex(headers, "产品")
	qtyIdx := columnIndex(headers, "数量", "产量")
	amountIdx := columnIndex(headers, "产值")

	if dateIdx < 0 || amountIdx < 0 {
		return nil, []string{"缺少日期或产值列"}
	}

	var records []model.ProductionRecord
	var errs []string
	for i, row := range dataRows {
		date, err := NormalizeDate(cellAt(row, dateIdx))
		if err != nil {
			if cellAt(row, dateIdx) != "" {
				errs = append(errs, fmt.Sprintf("第 %d 行: %v", i+2, err))
			}
			continue
		}
		records = append(records, model.ProductionRecord{
			Date:        date,
			Product:     cellAt(row, productIdx),
			Quantity:    parseFloat(cellAt(row, qtyIdx)),
			Amount:      parseFloat(cellAt(row, amountIdx)),
			SourceSheet: sheetName,
			SourceFile:  p.sourceFile,
		})
	}
	return records, errs
}

// parseInventory 解析库存盘点 Sheet
func (p *sheetParser) parseInventory(sheetName string) ([]model.InventorySnapshot, []string) {
	headers, dataRows, err := p.rowRange(sheetName)
	if err != nil {
		return nil, []string{err.Error()}
	}

	dateIdx := columnIndex(headers, "日期")
	rawIdx := columnIndex(headers, "原料库存", "原材料库存", "原料估值")
	subIdx := columnIndex(headers, "辅料库存", "辅料估值", "包材库存")

	if dateIdx < 0 || rawIdx < 0 {
		return nil, []string{"缺少日期或原料库存列"}
	}

	var records []model.InventorySnapshot
	var errs []string
	for i, row := range dataRows {
		date, err := NormalizeDate(cellAt(row, dateIdx))
		if err != nil {
			if cellAt(row, dateIdx) != "" {
				errs = append(errs, fmt.Sprintf("第 %d 行: %v", i+2, err))
			}
			continue
		}
		records = append(records, model.InventorySnapshot{
			Date:        date,
			RawValue:    parseFloat(cellAt(row, rawIdx)),
			SubValue:    parseFloat(cellAt(row, subIdx)),
			SourceSheet: sheetName,
			SourceFile:  p.sourceFile,
		})
	}
	return records, errs
}
