package importer

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"costwatch/internal/model"
	"costwatch/internal/store"
)

// Coordinator 导入协调器
type Coordinator struct {
	store      *store.Store
	recognizer *SheetRecognizer
}

// NewCoordinator 创建导入协调器
func NewCoordinator(st *store.Store) *Coordinator {
	return &Coordinator{
		store:      st,
		recognizer: NewSheetRecognizer(),
	}
}

// ImportOptions 导入选项
type ImportOptions struct {
	FilePath      string
	ClearExisting bool // 是否先清空各 Sheet 覆盖日期区间内的旧记录
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/info/sheet_start/sheet_done/warning/done/error
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// importContext 导入上下文
type importContext struct {
	opts      ImportOptions
	parser    *sheetParser
	startTime time.Time
	report    *ImportReport
	progress  chan ProgressEvent
}

// Import 执行导入，返回进度通道
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

// doImport 执行导入逻辑
func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "start",
		Message: "开始导入 Excel 文件",
		Data: map[string]string{
			"filename": filepath.Base(opts.FilePath),
		},
		Timestamp: time.Now(),
	})

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("打开文件失败: %v", err),
			Timestamp: time.Now(),
		})
		c.writeImportLog(opts, startTime, nil, err)
		return
	}
	defer file.Close()

	ctx := &importContext{
		opts:      opts,
		parser:    newSheetParser(file, opts.FilePath),
		startTime: startTime,
		progress:  progressChan,
		report: &ImportReport{
			Filename: filepath.Base(opts.FilePath),
			Sheets:   []ParseResult{},
		},
	}

	sheetList := file.GetSheetList()
	ctx.report.TotalSheets = len(sheetList)

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("发现 %d 个 Sheet", len(sheetList)),
		Data: map[string]interface{}{
			"total_sheets": len(sheetList),
		},
		Timestamp: time.Now(),
	})

	for _, sheetName := range sheetList {
		c.processSheet(ctx, file, sheetName)
	}

	ctx.report.Duration = time.Since(startTime)

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   "导入完成",
		Data:      ctx.report,
		Timestamp: time.Now(),
	})

	c.writeImportLog(opts, startTime, ctx.report, nil)
}

// processSheet 处理单个 Sheet
func (c *Coordinator) processSheet(ctx *importContext, file *excelize.File, sheetName string) {
	sheetStartTime := time.Now()

	c.sendProgress(ctx.progress, ProgressEvent{
		Type:    "sheet_start",
		Message: fmt.Sprintf("正在解析 Sheet: %s", sheetName),
		Data: map[string]string{
			"sheet_name": sheetName,
		},
		Timestamp: time.Now(),
	})

	rows, err := file.GetRows(sheetName)
	if err != nil || len(rows) < 1 {
		c.recordSheetResult(ctx, ParseResult{
			SheetName: sheetName,
			SheetType: SheetTypeUnknown,
			Status:    "error",
			Errors:    []string{fmt.Sprintf("读取 Sheet 失败: %v", err)},
			Duration:  time.Since(sheetStartTime),
		})
		return
	}

	recognition := c.recognizer.Recognize(sheetName, rows[0])

	c.sendProgress(ctx.progress, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("Sheet \"%s\" 识别为: %s (置信度: %.2f)", sheetName, recognition.SheetType, recognition.Confidence),
		Data: map[string]interface{}{
			"sheet_name": sheetName,
			"sheet_type": recognition.SheetType,
			"confidence": recognition.Confidence,
		},
		Timestamp: time.Now(),
	})

	if recognition.SheetType == SheetTypeUnknown {
		c.recordSheetResult(ctx, ParseResult{
			SheetName: sheetName,
			SheetType: SheetTypeUnknown,
			Status:    "skipped",
			Errors:    []string{"无法识别 Sheet 类型"},
			Duration:  time.Since(sheetStartTime),
		})
		c.sendProgress(ctx.progress, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("无法识别 Sheet: %s (置信度过低)", sheetName),
			Timestamp: time.Now(),
		})
		return
	}

	imported, errs, insertErr := c.importSheet(ctx, recognition.SheetType, sheetName)

	result := ParseResult{
		SheetName:    sheetName,
		SheetType:    recognition.SheetType,
		ImportedRows: imported,
		ErrorRows:    len(errs),
		Errors:       errs,
		Duration:     time.Since(sheetStartTime),
	}
	if insertErr != nil {
		result.Status = "error"
		result.ImportedRows = 0
		result.Errors = append(result.Errors, fmt.Sprintf("批量插入失败: %v", insertErr))
		c.recordSheetResult(ctx, result)
		return
	}

	result.Status = "imported"
	c.recordSheetResult(ctx, result)

	c.sendProgress(ctx.progress, ProgressEvent{
		Type:    "sheet_done",
		Message: fmt.Sprintf("Sheet \"%s\" 导入成功: %d 行", sheetName, imported),
		Data: map[string]interface{}{
			"sheet_name":    sheetName,
			"imported_rows": imported,
		},
		Timestamp: time.Now(),
	})
}

// importSheet 按类型解析并入库，返回成功行数、行级错误和入库错误
func (c *Coordinator) importSheet(ctx *importContext, sheetType SheetType, sheetName string) (int, []string, error) {
	switch sheetType {
	case SheetTypeSales:
		records, errs := ctx.parser.parseSales(sheetName)
		c.prepareRange(ctx, "sales", salesDates(records))
		return len(records), errs, c.store.BatchInsertSales(records)
	case SheetTypePurchase:
		records, errs := ctx.parser.parsePurchases(sheetName)
		c.prepareRange(ctx, "purchases", purchaseDates(records))
		return len(records), errs, c.store.BatchInsertPurchases(records)
	case SheetTypeLabor:
		records, errs := ctx.parser.parseLabor(sheetName)
		c.prepareRange(ctx, "labor", laborDates(records))
		return len(records), errs, c.store.BatchInsertLabor(records)
	case SheetTypeUtility:
		records, errs := ctx.parser.parseUtilities(sheetName)
		c.prepareRange(ctx, "utilities", utilityDates(records))
		return len(records), errs, c.store.BatchInsertUtilities(records)
	case SheetTypeProduction:
		records, errs := ctx.parser.parseProduction(sheetName)
		c.prepareRange(ctx, "production", productionDates(records))
		return len(records), errs, c.store.BatchInsertProduction(records)
	case SheetTypeInventory:
		// 盘点快照按日期追加，不参与区间清空
		records, errs := ctx.parser.parseInventory(sheetName)
		c.trackRange(ctx, inventoryDates(records))
		return len(records), errs, c.store.BatchInsertInventory(records)
	default:
		return 0, nil, fmt.Errorf("unsupported sheet type: %s", sheetType)
	}
}

// prepareRange 记录日期覆盖区间，必要时先清空本流的旧记录
//
// 只清空当前记录流，避免覆盖同一文件里其他 Sheet 刚写入的数据。
func (c *Coordinator) prepareRange(ctx *importContext, stream string, dates []string) {
	start, end := c.trackRange(ctx, dates)
	if !ctx.opts.ClearExisting || start == "" {
		return
	}
	if err := c.store.ClearStreamRange(stream, start, end); err != nil {
		c.sendProgress(ctx.progress, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("清空旧数据失败: %v", err),
			Timestamp: time.Now(),
		})
	}
}

// trackRange 更新导入报告的日期覆盖区间，返回本批次的起止日期
func (c *Coordinator) trackRange(ctx *importContext, dates []string) (string, string) {
	var start, end string
	for _, d := range dates {
		if start == "" || d < start {
			start = d
		}
		if end == "" || d > end {
			end = d
		}
	}
	if start == "" {
		return "", ""
	}
	if ctx.report.StartDate == "" || start < ctx.report.StartDate {
		ctx.report.StartDate = start
	}
	if ctx.report.EndDate == "" || end > ctx.report.EndDate {
		ctx.report.EndDate = end
	}
	return start, end
}

func salesDates(records []model.SalesRecord) []string {
	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}
	return dates
}

func purchaseDates(records []model.PurchaseRecord) []string {
	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}
	return dates
}

func laborDates(records []model.LaborRecord) []string {
	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}
	return dates
}

func utilityDates(records []model.UtilityRecord) []string {
	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}
	return dates
}

func productionDates(records []model.ProductionRecord) []string {
	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}
	return dates
}

func inventoryDates(records []model.InventorySnapshot) []string {
	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}
	return dates
}

// recordSheetResult 记录 Sheet 处理结果
func (c *Coordinator) recordSheetResult(ctx *importContext, result ParseResult) {
	ctx.report.Sheets = append(ctx.report.Sheets, result)

	if result.Status == "imported" {
		ctx.report.ImportedSheets++
		ctx.report.ImportedRows += result.ImportedRows
	} else if result.Status == "skipped" {
		ctx.report.SkippedSheets++
	}

	if result.ErrorRows > 0 {
		ctx.report.ErrorRows += result.ErrorRows
	}

	ctx.report.TotalRows += result.ImportedRows + result.ErrorRows
}

// writeImportLog 写入导入日志
func (c *Coordinator) writeImportLog(opts ImportOptions, startTime time.Time, report *ImportReport, importErr error) {
	completed := time.Now()
	logEntry := &store.ImportLog{
		Filename:    filepath.Base(opts.FilePath),
		FilePath:    opts.FilePath,
		Status:      "success",
		StartedAt:   startTime,
		CompletedAt: &completed,
	}
	if report != nil {
		logEntry.TotalSheets = report.TotalSheets
		logEntry.ImportedSheets = report.ImportedSheets
		logEntry.TotalRows = report.TotalRows
		logEntry.ImportedRows = report.ImportedRows
	}
	if importErr != nil {
		logEntry.Status = "failed"
		logEntry.ErrorMessage = importErr.Error()
	}
	if _, err := c.store.InsertImportLog(logEntry); err != nil {
		// 日志失败不影响导入结果
		log.Printf("写入导入日志失败: %v", err)
	}
}

// sendProgress 发送进度事件
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// 通道已满，丢弃事件
	}
}
