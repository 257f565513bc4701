package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobposting/internal/model"
	"jobposting/internal/pipeline"
	"jobposting/internal/sheet"
)

// HistoryStore 生成履歴の保存先
type HistoryStore interface {
	CreateGeneration(g *model.Generation) error
	UpdateGenerationResult(id, generatedText string, posting model.JobPosting) error
	GetGeneration(id string) (*model.Generation, error)
	ListGenerations(limit int) ([]*model.Generation, error)
	DeleteGeneration(id string) error
	CountGenerations() (int, error)
}

// Options ハンドラ設定
type Options struct {
	Markers        sheet.Markers
	Provider       string
	MaxUploadBytes int64
	HistoryLimit   int
	// ConfigErr LLM プロバイダを作れなかった理由（API キー未設定など）
	// 設定されていれば生成 API は LLM を呼ばずに 500 を返す
	ConfigErr error
}

// Handler HTTP API ハンドラ
type Handler struct {
	orch    *pipeline.Orchestrator
	history HistoryStore
	opts    Options
	logger  *zap.Logger
}

// NewHandler ハンドラを作る（history が nil なら履歴は保存しない）
func NewHandler(orch *pipeline.Orchestrator, history HistoryStore, opts Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 20 << 20
	}
	return &Handler{
		orch:    orch,
		history: history,
		opts:    opts,
		logger:  logger.Named("api"),
	}
}

// RegisterRoutes ルート登録
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// 求人原稿生成（?phase=1|2）
	router.POST("/generate", h.Generate)

	// 生成履歴
	router.GET("/history", h.ListHistory)
	router.GET("/history/:id", h.GetHistory)
	router.DELETE("/history/:id", h.DeleteHistory)
}
