package store

import (
	"database/sql"
	"fmt"

	"costwatch/internal/model"
)

// BatchInsertInventory 批量插入库存盘点快照
func (s *Store) BatchInsertInventory(records []model.InventorySnapshot) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO inventory_snapshots (
			date, raw_value, sub_value, source_sheet, source_file
		) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Date, r.RawValue, r.SubValue, r.SourceSheet, r.SourceFile); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// snapshotAtOrBefore 取日期不晚于 date 的最近一次盘点
func (s *Store) snapshotAtOrBefore(date string) (*model.InventorySnapshot, error) {
	var snap model.InventorySnapshot
	err := s.db.QueryRow(`
		SELECT id, date, raw_value, sub_value FROM inventory_snapshots
		WHERE date <= ? ORDER BY date DESC, id DESC LIMIT 1
	`, date).Scan(&snap.ID, &snap.Date, &snap.RawValue, &snap.SubValue)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	return &snap, nil
}

// InventoryAdjustmentFor 由盘点快照推导区间的库存增减调整
//
// 期初取不晚于 start 的最近盘点，期末取不晚于 end 的最近盘点。
// 任一缺失或两者是同一次盘点时返回 nil（评分按采购额即消耗额处理）。
func (s *Store) InventoryAdjustmentFor(start, end string) (*model.InventoryAdjustment, error) {
	beginning, err := s.snapshotAtOrBefore(start)
	if err != nil {
		return nil, err
	}
	ending, err := s.snapshotAtOrBefore(end)
	if err != nil {
		return nil, err
	}
	if beginning == nil || ending == nil || beginning.ID == ending.ID {
		return nil, nil
	}

	return &model.InventoryAdjustment{
		RawBeginning: beginning.RawValue,
		RawEnding:    ending.RawValue,
		SubBeginning: beginning.SubValue,
		SubEnding:    ending.SubValue,
	}, nil
}
