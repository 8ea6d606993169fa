package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"costwatch/internal/config"
	"costwatch/internal/revenue"
	"costwatch/internal/scoring"
	"costwatch/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	store     *store.Store
	business  config.BusinessConfig
	exportDir string
	downloads *exportDownloadStore
}

// NewHandler 创建 V1 API 处理器
//
// business 是 config.toml 的业务配置，作为数据库键值配置缺失时的默认值。
func NewHandler(st *store.Store, business config.BusinessConfig, exportDir string) *Handler {
	return &Handler{
		store:     st,
		business:  business,
		exportDir: exportDir,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 业务配置
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// 档位管理
	router.GET("/brackets", h.ListBrackets)
	router.PUT("/brackets", h.ReplaceBrackets)

	// 数据导入与查询
	router.POST("/import", h.Import)
	router.GET("/records", h.ListRecords)
	router.DELETE("/records", h.ClearRecords)

	// 评分
	router.GET("/score", h.GetScore)
	router.GET("/score/weekly", h.GetWeeklyScore)

	// 报表导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

// effectiveBusiness 数据库键值覆盖 toml 默认后的业务配置
func (h *Handler) effectiveBusiness() config.BusinessConfig {
	business := h.business
	if v, err := h.store.GetConfig("deemed_input_tax_rate"); err == nil {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			business.DeemedInputTaxRate = f
		}
	}
	if v, err := h.store.GetConfig("labor_cost_ratio"); err == nil {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			business.LaborCostRatio = f
		}
	}
	return business
}

// scoringConfig 组装评分引擎配置（档位 + 业务常量）
func (h *Handler) scoringConfig() (scoring.Config, error) {
	brackets, err := h.store.ListBrackets()
	if err != nil {
		return scoring.Config{}, err
	}
	business := h.effectiveBusiness()
	return scoring.Config{
		Brackets:           brackets,
		DeemedInputTaxRate: business.DeemedInputTaxRate,
		LaborCostRatio:     business.LaborCostRatio,
		ExclusionCodes:     business.ExclusionCodes,
	}, nil
}

// engine 按当前业务配置构建评分引擎
func (h *Handler) engine() *scoring.Engine {
	business := h.effectiveBusiness()
	classifier := scoring.NewKeywordClassifier(business.SubCodePrefixes, business.SubKeywords)
	return scoring.NewEngine(classifier, revenue.Reconcile)
}
