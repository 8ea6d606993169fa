package store

import (
	"database/sql"
	"fmt"
	"time"
)

// ImportLog 导入日志
type ImportLog struct {
	ID             int64      `json:"id"`
	Filename       string     `json:"filename"`
	FilePath       string     `json:"filePath"`
	TotalSheets    int        `json:"totalSheets"`
	ImportedSheets int        `json:"importedSheets"`
	TotalRows      int        `json:"totalRows"`
	ImportedRows   int        `json:"importedRows"`
	Status         string     `json:"status"`
	ErrorMessage   string     `json:"errorMessage"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt"`
}

// InsertImportLog 写入导入日志，返回日志 ID
func (s *Store) InsertImportLog(l *ImportLog) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (
			filename, file_path, total_sheets, imported_sheets,
			total_rows, imported_rows, status, error_message,
			started_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.Filename, l.FilePath, l.TotalSheets, l.ImportedSheets,
		l.TotalRows, l.ImportedRows, l.Status, l.ErrorMessage,
		l.StartedAt, l.CompletedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert import log: %w", err)
	}
	return res.LastInsertId()
}

// LastImportTime 最近一次成功导入的完成时间，无记录时返回空串
func (s *Store) LastImportTime() (string, error) {
	var completed sql.NullTime
	err := s.db.QueryRow(`
		SELECT completed_at FROM import_logs
		WHERE status = 'success' ORDER BY id DESC LIMIT 1
	`).Scan(&completed)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !completed.Valid {
		return "", nil
	}
	return completed.Time.Format("2006-01-02 15:04:05"), nil
}
