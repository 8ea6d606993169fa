package v1

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// rangeParams 解析并校验 start/end 查询参数
func rangeParams(c *gin.Context) (string, string, bool) {
	start := c.Query("start")
	end := c.Query("end")
	if !datePattern.MatchString(start) || !datePattern.MatchString(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start/end 必须为 YYYY-MM-DD"})
		return "", "", false
	}
	if start > end {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start 不能晚于 end"})
		return "", "", false
	}
	return start, end, true
}

// ListRecords 查询区间内的记录
// GET /api/records?stream=sales&start=2026-04-01&end=2026-04-30
//
// stream 缺省时返回全部五个记录流。
func (h *Handler) ListRecords(c *gin.Context) {
	start, end, ok := rangeParams(c)
	if !ok {
		return
	}

	stream := c.Query("stream")
	switch stream {
	case "":
		set, err := h.store.GetRecordSetByRange(start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询记录失败"})
			return
		}
		c.JSON(http.StatusOK, set)
	case "sales":
		records, err := h.store.GetSalesByRange(start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询记录失败"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": records})
	case "purchases":
		records, err := h.store.GetPurchasesByRange(start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询记录失败"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": records})
	case "labor":
		records, err := h.store.GetLaborByRange(start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询记录失败"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": records})
	case "utilities":
		records, err := h.store.GetUtilitiesByRange(start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询记录失败"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": records})
	case "production":
		records, err := h.store.GetProductionByRange(start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询记录失败"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": records})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知记录流: " + stream})
	}
}

// ClearRecords 清空区间内的全部记录流
// DELETE /api/records?start=2026-04-01&end=2026-04-30
func (h *Handler) ClearRecords(c *gin.Context) {
	start, end, ok := rangeParams(c)
	if !ok {
		return
	}

	if err := h.store.ClearRange(start, end); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "清空记录失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "已清空", "start": start, "end": end})
}
