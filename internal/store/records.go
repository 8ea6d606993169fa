package store

import (
	"fmt"

	"costwatch/internal/model"
)

// BatchInsertSales 批量插入销售记录
func (s *Store) BatchInsertSales(records []model.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO sales_records (
			date, channel, amount, promotion, channel_fee, order_count,
			source_sheet, source_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Date, r.Channel, r.Amount, r.Promotion, r.ChannelFee, r.OrderCount, r.SourceSheet, r.SourceFile); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSalesByRange 查询日期区间内的销售记录
func (s *Store) GetSalesByRange(start, end string) ([]model.SalesRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, date, channel, amount, promotion, channel_fee, order_count,
		       source_sheet, source_file, created_at
		FROM sales_records WHERE date >= ? AND date <= ? ORDER BY date, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	records := []model.SalesRecord{}
	for rows.Next() {
		var r model.SalesRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.Channel, &r.Amount, &r.Promotion, &r.ChannelFee, &r.OrderCount, &r.SourceSheet, &r.SourceFile, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// BatchInsertPurchases 批量插入采购记录
func (s *Store) BatchInsertPurchases(records []model.PurchaseRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO purchase_records (
			date, item_code, item_name, supplier, supply_amount, tax_amount, quantity,
			source_sheet, source_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Date, r.ItemCode, r.ItemName, r.Supplier, r.SupplyAmount, r.TaxAmount, r.Quantity, r.SourceSheet, r.SourceFile); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPurchasesByRange 查询日期区间内的采购记录
func (s *Store) GetPurchasesByRange(start, end string) ([]model.PurchaseRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, date, item_code, item_name, supplier, supply_amount, tax_amount, quantity,
		       source_sheet, source_file, created_at
		FROM purchase_records WHERE date >= ? AND date <= ? ORDER BY date, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	records := []model.PurchaseRecord{}
	for rows.Next() {
		var r model.PurchaseRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.ItemCode, &r.ItemName, &r.Supplier, &r.SupplyAmount, &r.TaxAmount, &r.Quantity, &r.SourceSheet, &r.SourceFile, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// BatchInsertLabor 批量插入人工记录
func (s *Store) BatchInsertLabor(records []model.LaborRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO labor_records (
			date, worker, work_hours, total_pay, source_sheet, source_file
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Date, r.Worker, r.WorkHours, r.TotalPay, r.SourceSheet, r.SourceFile); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetLaborByRange 查询日期区间内的人工记录
func (s *Store) GetLaborByRange(start, end string) ([]model.LaborRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, date, worker, work_hours, total_pay, source_sheet, source_file, created_at
		FROM labor_records WHERE date >= ? AND date <= ? ORDER BY date, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	records := []model.LaborRecord{}
	for rows.Next() {
		var r model.LaborRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.Worker, &r.WorkHours, &r.TotalPay, &r.SourceSheet, &r.SourceFile, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// BatchInsertUtilities 批量插入水电燃气记录
func (s *Store) BatchInsertUtilities(records []model.UtilityRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO utility_records (
			date, electricity_cost, water_cost, gas_cost, source_sheet, source_file
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Date, r.ElectricityCost, r.WaterCost, r.GasCost, r.SourceSheet, r.SourceFile); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetUtilitiesByRange 查询日期区间内的水电燃气记录
func (s *Store) GetUtilitiesByRange(start, end string) ([]model.UtilityRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, date, electricity_cost, water_cost, gas_cost, source_sheet, source_file, created_at
		FROM utility_records WHERE date >= ? AND date <= ? ORDER BY date, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	records := []model.UtilityRecord{}
	for rows.Next() {
		var r model.UtilityRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.ElectricityCost, &r.WaterCost, &r.GasCost, &r.SourceSheet, &r.SourceFile, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// BatchInsertProduction 批量插入生产记录
func (s *Store) BatchInsertProduction(records []model.ProductionRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO production_records (
			date, product, quantity, amount, source_sheet, source_file
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Date, r.Product, r.Quantity, r.Amount, r.SourceSheet, r.SourceFile); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetProductionByRange 查询日期区间内的生产记录
func (s *Store) GetProductionByRange(start, end string) ([]model.ProductionRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, date, product, quantity, amount, source_sheet, source_file, created_at
		FROM production_records WHERE date >= ? AND date <= ? ORDER BY date, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	records := []model.ProductionRecord{}
	for rows.Next() {
		var r model.ProductionRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.Product, &r.Quantity, &r.Amount, &r.SourceSheet, &r.SourceFile, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetRecordSetByRange 一次取出区间内的全部记录流
func (s *Store) GetRecordSetByRange(start, end string) (model.RecordSet, error) {
	set := model.RecordSet{}
	var err error

	if set.Sales, err = s.GetSalesByRange(start, end); err != nil {
		return set, err
	}
	if set.Purchases, err = s.GetPurchasesByRange(start, end); err != nil {
		return set, err
	}
	if set.Labor, err = s.GetLaborByRange(start, end); err != nil {
		return set, err
	}
	if set.Utilities, err = s.GetUtilitiesByRange(start, end); err != nil {
		return set, err
	}
	if set.Production, err = s.GetProductionByRange(start, end); err != nil {
		return set, err
	}
	return set, nil
}

// CountRecords 统计各记录流的总行数
func (s *Store) CountRecords() (map[string]int, error) {
	tables := map[string]string{
		"sales":      "sales_records",
		"purchases":  "purchase_records",
		"labor":      "labor_records",
		"utilities":  "utility_records",
		"production": "production_records",
		"inventory":  "inventory_snapshots",
	}

	counts := make(map[string]int, len(tables))
	for key, table := range tables {
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[key] = n
	}
	return counts, nil
}

// ClearRange 清空区间内的全部记录流（重新导入同期数据前调用）
func (s *Store) ClearRange(start, end string) error {
	tables := []string{
		"sales_records", "purchase_records", "labor_records",
		"utility_records", "production_records", "inventory_snapshots",
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range tables {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE date >= ? AND date <= ?", start, end); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// ClearStreamRange 清空单个记录流在区间内的记录
//
// stream 取 CountRecords 的键名（sales/purchases/labor/utilities/production）。
func (s *Store) ClearStreamRange(stream, start, end string) error {
	tables := map[string]string{
		"sales":      "sales_records",
		"purchases":  "purchase_records",
		"labor":      "labor_records",
		"utilities":  "utility_records",
		"production": "production_records",
	}
	table, ok := tables[stream]
	if !ok {
		return fmt.Errorf("unknown record stream: %s", stream)
	}
	if _, err := s.db.Exec("DELETE FROM "+table+" WHERE date >= ? AND date <= ?", start, end); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return nil
}
