package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized     bool           `json:"initialized"`     // 是否已初始化（有数据）
	RecordCounts    map[string]int `json:"recordCounts"`    // 各记录流的记录数
	BracketCount    int            `json:"bracketCount"`    // 已配置档位数
	LastImportTime  string         `json:"lastImportTime"`  // 最后成功导入时间
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	counts, err := h.store.CountRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计记录失败"})
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	brackets, err := h.store.ListBrackets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取档位配置失败"})
		return
	}

	lastImport, err := h.store.LastImportTime()
	if err != nil {
		lastImport = ""
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:    total > 0,
		RecordCounts:   counts,
		BracketCount:   len(brackets),
		LastImportTime: lastImport,
	})
}
