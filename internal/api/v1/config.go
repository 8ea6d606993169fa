package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ConfigResponse 业务配置响应
type ConfigResponse struct {
	DeemedInputTaxRate float64  `json:"deemedInputTaxRate"` // 视同进项税额抵扣率
	LaborCostRatio     float64  `json:"laborCostRatio"`     // 人工成本估算比率
	ExclusionCodes     []string `json:"exclusionCodes"`     // 不计入成本的采购编码
	SubCodePrefixes    []string `json:"subCodePrefixes"`    // 辅料编码前缀
	SubKeywords        []string `json:"subKeywords"`        // 辅料名称关键词
}

// UpdateConfigRequest 更新配置请求
type UpdateConfigRequest struct {
	// 使用 map 允许部分更新
	Updates map[string]interface{} `json:"updates"`
}

// updatableKeys 允许通过 API 覆盖的键
var updatableKeys = map[string]bool{
	"deemed_input_tax_rate": true,
	"labor_cost_ratio":      true,
}

// GetConfig 获取业务配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	business := h.effectiveBusiness()

	c.JSON(http.StatusOK, ConfigResponse{
		DeemedInputTaxRate: business.DeemedInputTaxRate,
		LaborCostRatio:     business.LaborCostRatio,
		ExclusionCodes:     business.ExclusionCodes,
		SubCodePrefixes:    business.SubCodePrefixes,
		SubKeywords:        business.SubKeywords,
	})
}

// UpdateConfig 更新业务配置
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	for key, value := range req.Updates {
		if !updatableKeys[key] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的配置项: " + key})
			return
		}

		var strValue string
		switch v := value.(type) {
		case string:
			strValue = v
		case float64:
			strValue = strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			strValue = strconv.Itoa(v)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的配置值类型: " + key})
			return
		}

		if err := h.store.SetConfig(key, strValue); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "更新配置失败: " + key})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "配置更新成功"})
}
