package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobposting/internal/api"
	"jobposting/internal/config"
	"jobposting/internal/llm"
	"jobposting/internal/pipeline"
	"jobposting/internal/store"
)

// historyBackend api が使う履歴ストアに Close を足したもの
type historyBackend interface {
	api.HistoryStore
	Close() error
}

// Server HTTP サーバ
type Server struct {
	router *gin.Engine
	store  historyBackend
	api    *api.Handler
	logger *zap.Logger
}

// NewServer 設定からサーバを組み立てる
// LLM プロバイダを作れない（API キー未設定など）場合も起動し、生成 API だけがエラーを返す
func NewServer(cfg *config.AppConfig, info config.LoadConfigInfo, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	history, err := openHistory(cfg)
	if err != nil {
		return nil, err
	}

	mediaPolicy, err := config.LoadMediaPolicy(cfg, info)
	if err != nil {
		_ = history.Close()
		return nil, err
	}

	provider, providerErr := llm.New(cfg.LLM)
	if providerErr != nil {
		if !errors.Is(providerErr, llm.ErrMissingAPIKey) {
			_ = history.Close()
			return nil, fmt.Errorf("%w: %v", config.ErrConfiguration, providerErr)
		}
		logger.Warn("llm provider not configured; generation is disabled until an API key is set",
			zap.String("provider", cfg.LLM.Provider))
	}

	orch := pipeline.New(provider, pipeline.Options{
		Model:       cfg.LLM.ModelOrDefault(),
		Guard:       cfg.Budget,
		MediaPolicy: mediaPolicy,
	}, logger)

	handler := api.NewHandler(orch, history, api.Options{
		Markers:        cfg.Sheet,
		Provider:       cfg.LLM.Provider,
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
		HistoryLimit:   cfg.Data.HistoryLimit,
		ConfigErr:      providerErr,
	}, logger)

	s := &Server{
		router: gin.Default(),
		store:  history,
		api:    handler,
		logger: logger,
	}
	s.setupRoutes()

	return s, nil
}

// openHistory 設定に応じた履歴ストアを開く
func openHistory(cfg *config.AppConfig) (historyBackend, error) {
	if strings.EqualFold(cfg.Data.HistoryBackend, config.HistoryBackendMemory) {
		return store.NewMemoryStore(), nil
	}
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	sqliteStore, err := store.New(config.HistoryDBPath(dataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return sqliteStore, nil
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// Handler テスト用に http.Handler として公開する
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 起動
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close ストアを閉じる
func (s *Server) Close() error {
	return s.store.Close()
}
