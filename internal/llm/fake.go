package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const providerFake = "fake"

// Responder Fake の応答を決める関数
type Responder func(req Request) (string, error)

// Fake 台本どおりに応答するプロバイダ（テスト・オフライン確認用）
type Fake struct {
	mu       sync.Mutex
	respond  Responder
	scripted []string
	requests []Request
}

// NewFake respond で応答する Fake を作る
func NewFake(respond Responder) *Fake {
	return &Fake{respond: respond}
}

// NewScripted 渡した順に応答を返す Fake を作る
func NewScripted(responses ...string) *Fake {
	return &Fake{scripted: append([]string(nil), responses...)}
}

func (f *Fake) Name() string {
	return providerFake
}

func (f *Fake) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	var (
		content string
		err     error
	)
	switch {
	case len(f.scripted) > 0:
		content = f.scripted[0]
		f.scripted = f.scripted[1:]
	case f.respond != nil:
		respond := f.respond
		f.mu.Unlock()
		content, err = respond(req)
		f.mu.Lock()
	default:
		err = fmt.Errorf("fake provider: no scripted response left")
	}
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return &Response{
		Content: content,
		Model:   req.Model,
		Usage: Usage{
			InputTokens:  int64(len([]rune(req.System+req.User)) / 4),
			OutputTokens: int64(len([]rune(content)) / 4),
		},
	}, nil
}

// Requests これまでに受けたリクエスト
func (f *Fake) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// EchoResponder ネットワーク無しで動かすための応答
// JSON を求められたら空の JSON オブジェクト、それ以外は入力データ部分をそのまま返す
func EchoResponder(req Request) (string, error) {
	if strings.Contains(req.System, "JSON") {
		return "{}", nil
	}
	return req.User, nil
}
