package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrStructuredTextRequired フェーズ2の入力テキストが空
	ErrStructuredTextRequired = errors.New("structured text is required for phase 2")
	// ErrEmptyTextify フェーズ1の応答が空
	ErrEmptyTextify = errors.New("phase 1 returned empty text")
)

// PhaseError フェーズ内で起きたプロバイダ側の失敗
type PhaseError struct {
	Phase int
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("phase %d: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// PayloadTooLargeError 推定トークン数が上限を超えた（呼び出し前に拒否）
type PayloadTooLargeError struct {
	Phase     int
	Estimated int
	Ceiling   int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("phase %d: estimated %d tokens exceeds ceiling %d", e.Phase, e.Estimated, e.Ceiling)
}

// UnparsableResponseError フェーズ2の応答から JSON を取り出せなかった
type UnparsableResponseError struct {
	Snippet  string
	Attempts []Attempt
}

func (e *UnparsableResponseError) Error() string {
	return fmt.Sprintf("unparsable model response: %s", e.Snippet)
}
