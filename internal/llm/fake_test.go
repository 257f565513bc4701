package llm

import (
	"context"
	"errors"
	"testing"
)

func TestScriptedFake(t *testing.T) {
	t.Parallel()

	f := NewScripted("one", "two")
	ctx := context.Background()

	for _, want := range []string{"one", "two"} {
		resp, err := f.Complete(ctx, Request{Model: "m", User: want})
		if err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
		if resp.Content != want {
			t.Fatalf("Content=%q, want %q", resp.Content, want)
		}
	}
	if _, err := f.Complete(ctx, Request{}); err == nil {
		t.Fatalf("expected error when script is exhausted")
	}
	if n := len(f.Requests()); n != 3 {
		t.Fatalf("recorded %d requests, want 3", n)
	}
}

func TestNew_SelectsProvider(t *testing.T) {
	t.Parallel()

	p, err := New(Config{Provider: "fake"})
	if err != nil || p.Name() != "fake" {
		t.Fatalf("fake provider: %v %v", p, err)
	}
	if _, err := New(Config{Provider: "openai"}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("openai without key err=%v", err)
	}
	if _, err := New(Config{Provider: "anthropic"}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("anthropic without key err=%v", err)
	}
	if _, err := New(Config{Provider: "bard"}); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("unknown provider err=%v", err)
	}
}

func TestConfig_ModelOrDefault(t *testing.T) {
	t.Parallel()

	if got := (Config{}).ModelOrDefault(); got != DefaultOpenAIModel {
		t.Fatalf("default model=%q", got)
	}
	if got := (Config{Provider: "anthropic"}).ModelOrDefault(); got != DefaultAnthropicModel {
		t.Fatalf("anthropic model=%q", got)
	}
	if got := (Config{Model: "gpt-4.1-mini"}).ModelOrDefault(); got != "gpt-4.1-mini" {
		t.Fatalf("explicit model=%q", got)
	}
}
