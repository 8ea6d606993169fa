package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"costwatch/internal/model"
)

// computeFullScore 读库并运行评分引擎，数据不足时返回 nil 结果
func (h *Handler) computeFullScore(start, end string) (*model.ScoringResult, error) {
	cfg, err := h.scoringConfig()
	if err != nil {
		return nil, err
	}

	records, err := h.store.GetRecordSetByRange(start, end)
	if err != nil {
		return nil, err
	}

	adj, err := h.store.InventoryAdjustmentFor(start, end)
	if err != nil {
		return nil, err
	}

	return h.engine().ComputeFullPeriodScore(records, cfg, start, end, 0, adj), nil
}

// GetScore 全周期评分
// GET /api/score?start=2026-04-01&end=2026-04-30
//
// 数据不足（无档位/零营收）不是错误，返回 200 + insufficient 标记。
func (h *Handler) GetScore(c *gin.Context) {
	start, end, ok := rangeParams(c)
	if !ok {
		return
	}

	result, err := h.computeFullScore(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "评分计算失败"})
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"insufficient": true})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetWeeklyScore 周评分序列
// GET /api/score/weekly?start=2026-04-01&end=2026-04-30
func (h *Handler) GetWeeklyScore(c *gin.Context) {
	start, end, ok := rangeParams(c)
	if !ok {
		return
	}

	cfg, err := h.scoringConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取档位配置失败"})
		return
	}

	records, err := h.store.GetRecordSetByRange(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询记录失败"})
		return
	}

	weekly := h.engine().ComputeWeeklyScores(records, cfg, start, end)
	if len(weekly) == 0 {
		c.JSON(http.StatusOK, gin.H{"insufficient": true, "weeks": []model.WeeklyScoreResult{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"weeks": weekly})
}
