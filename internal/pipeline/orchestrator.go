// Package pipeline turns a sheet text block into a job posting through two
// independent LLM round trips.
//
// Phase 1 (Textify) rewrites the flattened sheet text as "項目名: 値" text.
// Phase 2 (Map) maps that text onto the fixed job posting fields. The phases
// share no state; callers compose them.
package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"jobposting/internal/budget"
	"jobposting/internal/llm"
	"jobposting/internal/model"
	"jobposting/internal/sheet"
)

// Options オーケストレータ設定
type Options struct {
	Model       string
	Guard       budget.Guard
	MediaPolicy string
}

// Orchestrator 2フェーズの LLM 呼び出しを行う
// 生成後は不変で、複数 goroutine から使える
type Orchestrator struct {
	provider  llm.Provider
	model     string
	guard     budget.Guard
	mapSystem string
	logger    *zap.Logger
}

// New オーケストレータを作る
func New(provider llm.Provider, opts Options, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	modelName := strings.TrimSpace(opts.Model)
	if modelName == "" {
		modelName = llm.DefaultOpenAIModel
	}
	return &Orchestrator{
		provider:  provider,
		model:     modelName,
		guard:     opts.Guard.WithDefaults(),
		mapSystem: buildMapSystemPrompt(opts.MediaPolicy),
		logger:    logger.Named("pipeline"),
	}
}

// Model 使用するモデル名
func (o *Orchestrator) Model() string {
	return o.model
}

// Guard 適用中のトークン上限
func (o *Orchestrator) Guard() budget.Guard {
	return o.guard
}

// TextifyResult フェーズ1の結果
type TextifyResult struct {
	StructuredText  string          `json:"structuredText"`
	Truncated       bool            `json:"truncated"`
	InitialEstimate int             `json:"initialEstimate"`
	Estimate        budget.Estimate `json:"estimate"`
	Usage           llm.Usage       `json:"usage"`
}

// Textify フェーズ1: シートテキストを「項目名: 値」形式に整理する
// 初回見積もりが上限を超えたらシートごとに先頭 N 行へ切り詰めて送る（再チェックはしない）
func (o *Orchestrator) Textify(ctx context.Context, block sheet.TextBlock) (*TextifyResult, error) {
	if block.IsEmpty() {
		return nil, sheet.ErrEmptyText
	}

	result := &TextifyResult{InitialEstimate: budget.EstimateBlock(block.Len())}
	if o.guard.Exceeds(result.InitialEstimate) {
		block = block.Truncate(o.guard.TruncateLines)
		result.Truncated = true
		o.logger.Warn("text block over budget, truncating",
			zap.Int("estimated", result.InitialEstimate),
			zap.Int("ceiling", o.guard.Ceiling),
			zap.Int("lines_per_sheet", o.guard.TruncateLines),
			zap.Int("chars", block.Len()),
		)
	}

	user := buildTextifyUserPrompt(block.String())
	result.Estimate = budget.EstimatePrompt(textifySystemPrompt, user)
	if o.guard.Exceeds(result.Estimate.Total) {
		o.logger.Warn("phase 1 prompt still over budget, sending anyway",
			zap.Int("estimated", result.Estimate.Total),
			zap.Int("ceiling", o.guard.Ceiling),
		)
	}
	o.logger.Info("phase 1 request",
		zap.String("provider", o.provider.Name()),
		zap.String("model", o.model),
		zap.Int("estimated", result.Estimate.Total),
	)

	resp, err := o.provider.Complete(ctx, llm.Request{
		Model:  o.model,
		System: textifySystemPrompt,
		User:   user,
	})
	if err != nil {
		return nil, &PhaseError{Phase: 1, Err: err}
	}
	if strings.TrimSpace(resp.Content) == "" {
		return nil, &PhaseError{Phase: 1, Err: ErrEmptyTextify}
	}

	result.StructuredText = resp.Content
	result.Usage = resp.Usage
	o.logger.Info("phase 1 done",
		zap.Int("chars", len([]rune(resp.Content))),
		zap.Int64("tokens", resp.Usage.Total()),
	)
	return result, nil
}

// MapResult フェーズ2の結果
type MapResult struct {
	JobPosting    model.JobPosting `json:"jsonData"`
	GeneratedText string           `json:"generatedText"`
	Strategy      Strategy         `json:"strategy"`
	Missing       []string         `json:"missing,omitempty"`
	Extra         []string         `json:"extra,omitempty"`
	Estimate      budget.Estimate  `json:"estimate"`
	Usage         llm.Usage        `json:"usage"`
}

// Map フェーズ2: 整理済みテキストを求人原稿の固定項目に割り当てる
// 見積もりが上限を超えたら呼び出さずに *PayloadTooLargeError
func (o *Orchestrator) Map(ctx context.Context, structuredText string) (*MapResult, error) {
	if strings.TrimSpace(structuredText) == "" {
		return nil, ErrStructuredTextRequired
	}

	user := buildMapUserPrompt(structuredText)
	est := budget.EstimatePrompt(o.mapSystem, user)
	o.logger.Info("phase 2 request",
		zap.String("provider", o.provider.Name()),
		zap.String("model", o.model),
		zap.Int("system_tokens", est.SystemTokens),
		zap.Int("user_tokens", est.UserTokens),
		zap.Int("estimated", est.Total),
	)
	if o.guard.Exceeds(est.Total) {
		return nil, &PayloadTooLargeError{Phase: 2, Estimated: est.Total, Ceiling: o.guard.Ceiling}
	}

	resp, err := o.provider.Complete(ctx, llm.Request{
		Model:  o.model,
		System: o.mapSystem,
		User:   user,
	})
	if err != nil {
		return nil, &PhaseError{Phase: 2, Err: err}
	}

	rec, err := Reconcile(resp.Content)
	if err != nil {
		o.logger.Error("phase 2 response is not JSON",
			zap.Int("chars", len([]rune(resp.Content))),
			zap.Error(err),
		)
		return nil, err
	}

	posting, report := model.NormalizeJobPosting(rec.Object)
	if !report.Clean() {
		o.logger.Warn("phase 2 response keys normalized",
			zap.Strings("missing", report.Missing),
			zap.Strings("extra", report.Extra),
		)
	}
	if isBlank(posting) {
		o.logger.Warn("phase 2 response has no non-empty field")
	}

	return &MapResult{
		JobPosting:    posting,
		GeneratedText: posting.Render(),
		Strategy:      rec.Strategy,
		Missing:       report.Missing,
		Extra:         report.Extra,
		Estimate:      est,
		Usage:         resp.Usage,
	}, nil
}

func isBlank(p model.JobPosting) bool {
	for _, f := range p {
		if strings.TrimSpace(f.Value) != "" {
			return false
		}
	}
	return true
}
