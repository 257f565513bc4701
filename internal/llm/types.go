package llm

import "context"

// Request 1回の補完呼び出し（system + user の2メッセージ）
type Request struct {
	Model  string
	System string
	User   string
}

// Usage プロバイダが返したトークン使用量
type Usage struct {
	InputTokens  int64 `json:"inputTokens"`
	OutputTokens int64 `json:"outputTokens"`
}

// Total 入出力の合計
func (u Usage) Total() int64 {
	return u.InputTokens + u.OutputTokens
}

// Response 補完結果
type Response struct {
	Content string
	Model   string
	Usage   Usage
}

// Provider LLM テキスト生成プロバイダ
// 実装はリトライしない（リトライ方針は呼び出し側が決める）
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (*Response, error)
}
