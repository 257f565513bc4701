package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobposting/internal/llm"
	"jobposting/internal/pipeline"
	"jobposting/internal/sheet"
	"jobposting/internal/store"
)

const (
	msgMissingAPIKey   = "LLM APIキー（OPENAI_API_KEY / ANTHROPIC_API_KEY）が設定されていません"
	msgNoFile          = "ファイルがアップロードされていません"
	msgFileTooLarge    = "ファイルサイズが大きすぎます"
	msgUnreadable      = "Excelファイルを読み込めませんでした。.xlsx / .xlsm / .csv 形式か確認してください"
	msgNoValidSheet    = "処理対象のシートが見つかりません（記入例シートは対象外です）"
	msgEmptyText       = "Excelファイルからテキストを抽出できませんでした"
	msgNeedText        = "フェーズ2にはstructuredTextが必要です"
	msgBadPhase        = "phaseには1または2を指定してください"
	msgRateLimitTPM    = "レート制限に達しました。データが大きすぎる可能性があります。Excelファイルのサイズを小さくするか、しばらく待ってから再度お試しください。また、OpenAIアカウントに支払い方法を追加するとレート制限が増えます。"
	msgRateLimit       = "レート制限に達しました。しばらく待ってから再度お試しください。"
	msgUnparsable      = "JSON形式の出力を取得できませんでした。生成された内容: "
	msgEmptyTextify    = "フェーズ1でテキスト化に失敗しました"
	msgHistoryNotFound = "履歴が見つかりません"
	msgHistoryDisabled = "履歴機能は無効です"
	msgGenerateFailed  = "求人原稿の生成に失敗しました"
)

var phaseNames = map[int]string{
	1: "フェーズ1（テキスト化）",
	2: "フェーズ2（マッピング）",
}

// classifyError エラーを HTTP ステータスと利用者向けメッセージに変換する
func classifyError(err error) (int, string) {
	var (
		tooLarge   *pipeline.PayloadTooLargeError
		rateLimit  *llm.RateLimitError
		unparsable *pipeline.UnparsableResponseError
		phaseErr   *pipeline.PhaseError
		readErr    *sheet.ReadError
	)

	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		return http.StatusInternalServerError, msgMissingAPIKey
	case errors.As(err, &tooLarge):
		return http.StatusBadRequest, fmt.Sprintf(
			"データが大きすぎます（フェーズ%d）。テキスト化されたデータが大きすぎる可能性があります。（推定トークン数: %d / 上限: %d）",
			tooLarge.Phase, tooLarge.Estimated, tooLarge.Ceiling)
	case errors.As(err, &rateLimit):
		if rateLimit.TokensPerMinute() {
			return http.StatusTooManyRequests, msgRateLimitTPM
		}
		return http.StatusTooManyRequests, msgRateLimit
	case errors.Is(err, llm.ErrRateLimited):
		return http.StatusTooManyRequests, msgRateLimit
	case errors.Is(err, sheet.ErrNoValidSheet):
		return http.StatusBadRequest, msgNoValidSheet
	case errors.Is(err, sheet.ErrEmptyText):
		return http.StatusBadRequest, msgEmptyText
	case errors.Is(err, sheet.ErrUnsupportedFormat), errors.As(err, &readErr):
		return http.StatusBadRequest, msgUnreadable
	case errors.Is(err, pipeline.ErrStructuredTextRequired):
		return http.StatusBadRequest, msgNeedText
	case errors.As(err, &unparsable):
		return http.StatusInternalServerError, msgUnparsable + unparsable.Snippet
	case errors.As(err, &phaseErr):
		detail := phaseErr.Err.Error()
		if errors.Is(phaseErr.Err, pipeline.ErrEmptyTextify) {
			detail = msgEmptyTextify
		}
		return http.StatusInternalServerError, fmt.Sprintf("%sでエラーが発生しました: %s", phaseNames[phaseErr.Phase], detail)
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, msgHistoryNotFound
	default:
		return http.StatusInternalServerError, msgGenerateFailed
	}
}

// respondError エラーレスポンス {error: message}
func (h *Handler) respondError(c *gin.Context, err error) {
	status, message := classifyError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
	} else {
		h.logger.Info("request rejected",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": message})
}
