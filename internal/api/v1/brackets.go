package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"costwatch/internal/model"
	"costwatch/internal/scoring"
)

// BracketsResponse 档位列表响应
type BracketsResponse struct {
	Brackets []model.RevenueBracket `json:"brackets"`
	Warnings []string               `json:"warnings,omitempty"` // 配置体检告警（重复锚点等）
}

// ListBrackets 获取档位配置
// GET /api/brackets
func (h *Handler) ListBrackets(c *gin.Context) {
	brackets, err := h.store.ListBrackets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取档位配置失败"})
		return
	}

	c.JSON(http.StatusOK, BracketsResponse{
		Brackets: brackets,
		Warnings: scoring.ValidateBrackets(brackets),
	})
}

// ReplaceBracketsRequest 档位整体替换请求
type ReplaceBracketsRequest struct {
	Brackets []model.RevenueBracket `json:"brackets"`
}

// ReplaceBrackets 整体替换档位配置
// PUT /api/brackets
//
// 档位由业务方维护，评分核心只读。替换不做硬校验，锚点重复等问题以
// 告警返回，由调用方决定是否修正。
func (h *Handler) ReplaceBrackets(c *gin.Context) {
	var req ReplaceBracketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	if err := h.store.ReplaceBrackets(req.Brackets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存档位配置失败"})
		return
	}

	saved, err := h.store.ListBrackets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取档位配置失败"})
		return
	}

	c.JSON(http.StatusOK, BracketsResponse{
		Brackets: saved,
		Warnings: scoring.ValidateBrackets(saved),
	})
}
