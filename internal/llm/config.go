package llm

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultOpenAIModel 既定モデル（temperature 指定不可）
	DefaultOpenAIModel = "gpt-5-mini"
	// DefaultAnthropicModel Anthropic 利用時の既定モデル
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
)

// Config プロバイダ設定
type Config struct {
	Provider        string `toml:"provider"`
	Model           string `toml:"model"`
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	MaxOutputTokens int    `toml:"max_output_tokens"`
}

// ModelOrDefault 設定されたモデル名、無ければプロバイダ既定
func (c Config) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	if strings.EqualFold(c.Provider, providerAnthropic) {
		return DefaultAnthropicModel
	}
	return DefaultOpenAIModel
}

// httpClient タイムアウトは transport 側でのみ設定する（0 なら無制限）
func (c Config) httpClient() *http.Client {
	return &http.Client{Timeout: time.Duration(c.TimeoutSeconds) * time.Second}
}

// New 設定に応じたプロバイダを作る
func New(cfg Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", providerOpenAI:
		return NewOpenAI(cfg)
	case providerAnthropic:
		return NewAnthropic(cfg)
	case providerFake:
		return NewFake(EchoResponder), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
