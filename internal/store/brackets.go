package store

import (
	"fmt"

	"costwatch/internal/model"
)

// ListBrackets 按配置顺序取出全部营收档位
//
// position 保存配置顺序；排序键重复时评分侧按此顺序取先声明者。
func (s *Store) ListBrackets() ([]model.RevenueBracket, error) {
	rows, err := s.db.Query(`
		SELECT id, threshold_revenue, label,
		       revenue_to_raw_material, revenue_to_sub_material,
		       production_to_labor, revenue_to_expense,
		       target_recommended_revenue, target_production_revenue,
		       target_raw_material_cost, target_sub_material_cost,
		       target_labor_cost, target_overhead_cost,
		       waste_rate_target
		FROM brackets ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query brackets: %w", err)
	}
	defer rows.Close()

	brackets := []model.RevenueBracket{}
	for rows.Next() {
		var b model.RevenueBracket
		if err := rows.Scan(
			&b.ID, &b.ThresholdRevenue, &b.Label,
			&b.RevenueToRawMaterial, &b.RevenueToSubMaterial,
			&b.ProductionToLabor, &b.RevenueToExpense,
			&b.TargetRecommendedRevenue, &b.TargetProductionRevenue,
			&b.TargetRawMaterialCost, &b.TargetSubMaterialCost,
			&b.TargetLaborCost, &b.TargetOverheadCost,
			&b.WasteRateTarget,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bracket: %w", err)
		}
		brackets = append(brackets, b)
	}
	return brackets, rows.Err()
}

// ReplaceBrackets 整体替换档位配置
func (s *Store) ReplaceBrackets(brackets []model.RevenueBracket) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM brackets"); err != nil {
		return fmt.Errorf("failed to clear brackets: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO brackets (
			position, threshold_revenue, label,
			revenue_to_raw_material, revenue_to_sub_material,
			production_to_labor, revenue_to_expense,
			target_recommended_revenue, target_production_revenue,
			target_raw_material_cost, target_sub_material_cost,
			target_labor_cost, target_overhead_cost,
			waste_rate_target
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, b := range brackets {
		if _, err := stmt.Exec(
			i, b.ThresholdRevenue, b.Label,
			b.RevenueToRawMaterial, b.RevenueToSubMaterial,
			b.ProductionToLabor, b.RevenueToExpense,
			b.TargetRecommendedRevenue, b.TargetProductionRevenue,
			b.TargetRawMaterialCost, b.TargetSubMaterialCost,
			b.TargetLaborCost, b.TargetOverheadCost,
			b.WasteRateTarget,
		); err != nil {
			return fmt.Errorf("failed to insert bracket: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
