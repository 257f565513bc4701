package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse サービス状態
type StatusResponse struct {
	Ready          bool   `json:"ready"`           // LLM を呼べる状態か
	Provider       string `json:"provider"`        // LLM プロバイダ名
	Model          string `json:"model"`           // 使用モデル
	MaxTokens      int    `json:"maxTokens"`       // 推定トークン上限
	TruncateLines  int    `json:"truncateLines"`   // 上限超過時にシートごとに残す行数
	HistoryEnabled bool   `json:"historyEnabled"`  // 履歴保存の有無
	HistoryCount   int    `json:"historyCount"`    // 履歴件数
	Error          string `json:"error,omitempty"` // 設定エラー
}

// GetStatus サービス状態
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Ready:          h.opts.ConfigErr == nil,
		Provider:       h.opts.Provider,
		HistoryEnabled: h.history != nil,
	}
	if h.orch != nil {
		guard := h.orch.Guard()
		resp.Model = h.orch.Model()
		resp.MaxTokens = guard.Ceiling
		resp.TruncateLines = guard.TruncateLines
	}
	if h.opts.ConfigErr != nil {
		_, resp.Error = classifyError(h.opts.ConfigErr)
	}
	if h.history != nil {
		if n, err := h.history.CountGenerations(); err == nil {
			resp.HistoryCount = n
		}
	}

	c.JSON(http.StatusOK, resp)
}
