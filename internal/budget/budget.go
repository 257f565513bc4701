// Package budget estimates LLM request size in token equivalents.
//
// The estimate is a coarse 4-characters-per-token approximation; it is only
// used to decide whether a payload should be truncated or rejected before
// any network call is made.
package budget

import "unicode/utf8"

const (
	// DefaultCeiling 1リクエストあたりの推定トークン上限（両フェーズ共通）
	DefaultCeiling = 30000
	// DefaultTruncateLines 上限超過時にシートごとに残す行数
	DefaultTruncateLines = 30

	charsPerToken = 4

	// Phase 1 の初回見積もりで使うシステムプロンプトの概算長と固定オーバーヘッド
	blockSystemAllowance = 200
	blockOverhead        = 100

	// プロンプト見積もりで user 側に足す文字数と、合計に足すトークン数
	userOverheadChars = 100
	requestOverhead   = 100
)

// Estimate プロンプト見積もりの内訳
type Estimate struct {
	SystemTokens int `json:"systemTokens"`
	UserTokens   int `json:"userTokens"`
	Total        int `json:"total"`
}

// Guard 推定トークン上限
type Guard struct {
	Ceiling       int `toml:"max_tokens"`
	TruncateLines int `toml:"truncate_lines"`
}

// NewGuard 既定値で Guard を作る
func NewGuard() Guard {
	return Guard{Ceiling: DefaultCeiling, TruncateLines: DefaultTruncateLines}
}

// WithDefaults 0 以下の項目を既定値で埋める
func (g Guard) WithDefaults() Guard {
	if g.Ceiling <= 0 {
		g.Ceiling = DefaultCeiling
	}
	if g.TruncateLines <= 0 {
		g.TruncateLines = DefaultTruncateLines
	}
	return g
}

// Exceeds 上限を超えるか
func (g Guard) Exceeds(tokens int) bool {
	return tokens > g.WithDefaults().Ceiling
}

// EstimateBlock Phase 1 の初回チェック用
// ceil((200 + 文字数 + 100) / 4)
func EstimateBlock(blockChars int) int {
	return ceilDiv(blockSystemAllowance+blockChars+blockOverhead, charsPerToken)
}

// EstimatePrompt system / user プロンプトの見積もり
// ceil(system/4) + ceil((user+100)/4) + 100
func EstimatePrompt(system, user string) Estimate {
	sys := ceilDiv(utf8.RuneCountInString(system), charsPerToken)
	usr := ceilDiv(utf8.RuneCountInString(user)+userOverheadChars, charsPerToken)
	return Estimate{
		SystemTokens: sys,
		UserTokens:   usr,
		Total:        sys + usr + requestOverhead,
	}
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
