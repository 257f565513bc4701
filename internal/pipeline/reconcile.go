package pipeline

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

const snippetRunes = 200

// Strategy 応答から JSON を取り出す方法
type Strategy string

const (
	// StrategyFenced コードフェンスを外して全体をパース
	StrategyFenced Strategy = "fenced"
	// StrategyEmbedded 最初の { から最後の } までをパース
	StrategyEmbedded Strategy = "embedded"
)

var (
	fenceJSONPrefix = regexp.MustCompile("(?i)^```json\\s*")
	fencePrefix     = regexp.MustCompile("^```\\s*")
	fenceSuffix     = regexp.MustCompile("\\s*```$")
	embeddedObject  = regexp.MustCompile(`(?s)\{.*\}`)

	errNoObject = errors.New("no JSON object found")
)

// Attempt 1つの戦略の試行結果
type Attempt struct {
	Strategy Strategy `json:"strategy"`
	Err      error    `json:"-"`
}

// OK 成功したか
func (a Attempt) OK() bool {
	return a.Err == nil
}

// Reconciled 取り出せた JSON オブジェクト
type Reconciled struct {
	Object   map[string]any
	Strategy Strategy
	Attempts []Attempt
}

type extractor struct {
	name    Strategy
	extract func(raw string) (string, error)
}

// 先に成功したものを採用する
var extractors = []extractor{
	{name: StrategyFenced, extract: stripFences},
	{name: StrategyEmbedded, extract: findEmbedded},
}

// Reconcile モデル応答を JSON オブジェクトとして解釈する
// どの戦略でも取れなければ *UnparsableResponseError（先頭 200 文字付き）
func Reconcile(raw string) (*Reconciled, error) {
	attempts := make([]Attempt, 0, len(extractors))
	for _, ex := range extractors {
		candidate, err := ex.extract(raw)
		if err == nil {
			var obj map[string]any
			obj, err = parseObject(candidate)
			if err == nil {
				attempts = append(attempts, Attempt{Strategy: ex.name})
				return &Reconciled{Object: obj, Strategy: ex.name, Attempts: attempts}, nil
			}
		}
		attempts = append(attempts, Attempt{Strategy: ex.name, Err: err})
	}
	return nil, &UnparsableResponseError{Snippet: snippet(raw), Attempts: attempts}
}

func stripFences(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = fenceJSONPrefix.ReplaceAllString(s, "")
	s = fencePrefix.ReplaceAllString(s, "")
	s = fenceSuffix.ReplaceAllString(s, "")
	return strings.TrimSpace(s), nil
}

func findEmbedded(raw string) (string, error) {
	m := embeddedObject.FindString(raw)
	if m == "" {
		return "", errNoObject
	}
	return m, nil
}

func parseObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errNoObject
	}
	return obj, nil
}

func snippet(s string) string {
	r := []rune(s)
	if len(r) > snippetRunes {
		r = r[:snippetRunes]
	}
	return string(r)
}
