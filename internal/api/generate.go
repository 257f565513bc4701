package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobposting/internal/model"
	"jobposting/internal/sheet"
)

const phase1DoneMessage = "フェーズ1（テキスト化）が完了しました。続けてマッピングを実行してください。"

// Phase1Response フェーズ1のレスポンス
type Phase1Response struct {
	Success        bool   `json:"success"`
	Phase          int    `json:"phase"`
	StructuredText string `json:"structuredText"`
	SheetName      string `json:"sheetName"`
	Truncated      bool   `json:"truncated"`
	HistoryID      string `json:"historyId,omitempty"`
	Message        string `json:"message"`
}

// Phase2Response フェーズ2のレスポンス
type Phase2Response struct {
	Success       bool             `json:"success"`
	Phase         int              `json:"phase"`
	GeneratedText string           `json:"generatedText"`
	JSONData      model.JobPosting `json:"jsonData"`
	HistoryID     string           `json:"historyId,omitempty"`
}

// Generate 求人原稿の生成
// POST /api/generate?phase=1  multipart: file
// POST /api/generate?phase=2  form: structuredText または historyId
func (h *Handler) Generate(c *gin.Context) {
	phase := c.DefaultQuery("phase", "1")
	if phase != "1" && phase != "2" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgBadPhase})
		return
	}

	if h.opts.ConfigErr != nil {
		h.respondError(c, h.opts.ConfigErr)
		return
	}

	if phase == "2" {
		h.generatePhase2(c)
		return
	}
	h.generatePhase1(c)
}

func (h *Handler) generatePhase1(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFile})
		return
	}
	if header.Size > h.opts.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgFileTooLarge})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFile})
		return
	}
	defer file.Close()

	wb, err := sheet.OpenWorkbook(file, header.Filename)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer wb.Close()

	ext, err := sheet.Extract(wb, h.opts.Markers)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("sheet extracted",
		zap.String("file", header.Filename),
		zap.String("sheet", ext.TargetSheet),
		zap.Strings("excluded", ext.ExcludedNames),
		zap.Int("rows", ext.RowCount),
		zap.Int("lines", ext.Block.LineCount()),
		zap.Int("chars", ext.Block.Len()),
	)

	res, err := h.orch.Textify(c.Request.Context(), ext.Block)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := Phase1Response{
		Success:        true,
		Phase:          1,
		StructuredText: res.StructuredText,
		SheetName:      ext.TargetSheet,
		Truncated:      res.Truncated,
		Message:        phase1DoneMessage,
	}

	if h.history != nil {
		g := &model.Generation{
			FileName:       header.Filename,
			SheetName:      ext.TargetSheet,
			StructuredText: res.StructuredText,
		}
		// 履歴保存に失敗しても生成結果は返す
		if err := h.history.CreateGeneration(g); err != nil {
			h.logger.Warn("failed to save history", zap.Error(err))
		} else {
			resp.HistoryID = g.ID
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) generatePhase2(c *gin.Context) {
	structuredText := c.PostForm("structuredText")
	historyID := strings.TrimSpace(c.PostForm("historyId"))

	if strings.TrimSpace(structuredText) == "" && historyID != "" {
		if h.history == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": msgHistoryDisabled})
			return
		}
		g, err := h.history.GetGeneration(historyID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		structuredText = g.StructuredText
	}
	if strings.TrimSpace(structuredText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNeedText})
		return
	}

	res, err := h.orch.Map(c.Request.Context(), structuredText)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := Phase2Response{
		Success:       true,
		Phase:         2,
		GeneratedText: res.GeneratedText,
		JSONData:      res.JobPosting,
	}

	if h.history != nil {
		resp.HistoryID = h.saveResult(historyID, structuredText, res.GeneratedText, res.JobPosting)
	}

	c.JSON(http.StatusOK, resp)
}

// saveResult フェーズ2の結果を履歴に残す
// historyId が無い（テキスト直接入力の）場合は新しい履歴として保存する
func (h *Handler) saveResult(historyID, structuredText, generatedText string, posting model.JobPosting) string {
	if historyID != "" {
		err := h.history.UpdateGenerationResult(historyID, generatedText, posting)
		if err == nil {
			return historyID
		}
		h.logger.Warn("failed to update history", zap.String("history_id", historyID), zap.Error(err))
	}

	g := &model.Generation{
		StructuredText: structuredText,
		GeneratedText:  generatedText,
		JobPosting:     posting,
	}
	if err := h.history.CreateGeneration(g); err != nil {
		h.logger.Warn("failed to save history", zap.Error(err))
		return ""
	}
	return g.ID
}
