package v1

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"costwatch/internal/exporter"
)

// ExportRequest 报表导出请求
type ExportRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Export 导出评分报表（生成后返回一次性下载地址）
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if !datePattern.MatchString(req.Start) || !datePattern.MatchString(req.End) || req.Start > req.End {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start/end 必须为 YYYY-MM-DD 且 start <= end"})
		return
	}

	result, err := h.computeFullScore(req.Start, req.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "评分计算失败"})
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"insufficient": true})
		return
	}

	cfg, err := h.scoringConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取档位配置失败"})
		return
	}
	records, err := h.store.GetRecordSetByRange(req.Start, req.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询记录失败"})
		return
	}
	weekly := h.engine().ComputeWeeklyScores(records, cfg, req.Start, req.End)

	exp := exporter.NewExporter(h.exportDir)
	path, err := exp.ExportToFile(result, weekly, req.Start, req.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成报表失败: " + err.Error()})
		return
	}

	token := h.downloads.put(path, req.Start, req.End, 10*time.Minute)

	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": "/api/export/download/" + token,
	})
}

// DownloadExport 下载导出的报表（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	filename := fmt.Sprintf("评分报表_%s_%s.xlsx", item.start, item.end)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
