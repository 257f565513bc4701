package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrMissingAPIKey API キーが設定されていない
	ErrMissingAPIKey = errors.New("llm api key is not configured")
	// ErrRateLimited プロバイダのレート制限
	ErrRateLimited = errors.New("llm rate limited")
	// ErrEmptyResponse 応答に本文が無い
	ErrEmptyResponse = errors.New("llm returned no content")
	// ErrUnknownProvider 設定されたプロバイダ名が不明
	ErrUnknownProvider = errors.New("unknown llm provider")
)

// RateLimitError HTTP 429 を受けたときのエラー
type RateLimitError struct {
	Provider string
	Message  string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited: %s", e.Provider, e.Message)
}

// Is errors.Is(err, ErrRateLimited) を満たす
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// TokensPerMinute 分あたりトークン数の上限に当たったか
func (e *RateLimitError) TokensPerMinute() bool {
	return strings.Contains(e.Message, "tokens per min") || strings.Contains(e.Message, "TPM")
}

// APIError 429 以外の HTTP エラー
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: http %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func classify(provider string, status int, message string, err error) error {
	if status == http.StatusTooManyRequests {
		return &RateLimitError{Provider: provider, Message: message}
	}
	return &APIError{Provider: provider, StatusCode: status, Message: message, Err: err}
}
