package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobposting/internal/model"
)

// HistoryListResponse 履歴一覧
type HistoryListResponse struct {
	Items []model.GenerationSummary `json:"items"`
	Total int                       `json:"total"`
}

// ListHistory 履歴一覧（新しい順）
// GET /api/history?limit=50
func (h *Handler) ListHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgHistoryDisabled})
		return
	}

	limit := h.opts.HistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limitには正の整数を指定してください"})
			return
		}
		limit = n
	}

	list, err := h.history.ListGenerations(limit)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	total, err := h.history.CountGenerations()
	if err != nil {
		h.respondStoreError(c, err)
		return
	}

	items := make([]model.GenerationSummary, 0, len(list))
	for _, g := range list {
		items = append(items, g.Summary())
	}
	c.JSON(http.StatusOK, HistoryListResponse{Items: items, Total: total})
}

// GetHistory 履歴1件
// GET /api/history/:id
func (h *Handler) GetHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgHistoryDisabled})
		return
	}

	g, err := h.history.GetGeneration(c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// DeleteHistory 履歴削除
// DELETE /api/history/:id
func (h *Handler) DeleteHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgHistoryDisabled})
		return
	}

	if err := h.history.DeleteGeneration(c.Param("id")); err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondStoreError 404 以外のストアエラーは 500
func (h *Handler) respondStoreError(c *gin.Context, err error) {
	status, message := classifyError(err)
	if status != http.StatusNotFound {
		status, message = http.StatusInternalServerError, "履歴の読み書きに失敗しました"
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("history store failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": message})
}
