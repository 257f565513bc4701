package budget

import (
	"strings"
	"testing"
)

func TestEstimateBlock(t *testing.T) {
	t.Parallel()

	if got, want := EstimateBlock(0), 75; got != want {
		t.Fatalf("EstimateBlock(0)=%d, want %d", got, want)
	}
	// (200 + 1 + 100) / 4 = 75.25 → 76
	if got, want := EstimateBlock(1), 76; got != want {
		t.Fatalf("EstimateBlock(1)=%d, want %d", got, want)
	}
}

func TestEstimatePrompt_CountsRunes(t *testing.T) {
	t.Parallel()

	// 4 文字の日本語は 12 バイトだが 1 トークン
	est := EstimatePrompt("求人情報", "")
	if est.SystemTokens != 1 {
		t.Fatalf("SystemTokens=%d, want 1", est.SystemTokens)
	}
	if est.UserTokens != 25 {
		t.Fatalf("UserTokens=%d, want 25", est.UserTokens)
	}
	if est.Total != 1+25+100 {
		t.Fatalf("Total=%d", est.Total)
	}
}

func TestGuard_Exceeds(t *testing.T) {
	t.Parallel()

	g := Guard{Ceiling: 100}
	if g.Exceeds(100) {
		t.Fatalf("100 should fit a ceiling of 100")
	}
	if !g.Exceeds(101) {
		t.Fatalf("101 should exceed a ceiling of 100")
	}

	zero := Guard{}
	if zero.Exceeds(DefaultCeiling) || !zero.Exceeds(DefaultCeiling+1) {
		t.Fatalf("zero guard should fall back to DefaultCeiling")
	}
}

func TestEstimatePrompt_LargeInputExceedsDefault(t *testing.T) {
	t.Parallel()

	user := strings.Repeat("あ", 4*DefaultCeiling)
	if est := EstimatePrompt("", user); !NewGuard().Exceeds(est.Total) {
		t.Fatalf("estimate %d should exceed %d", est.Total, DefaultCeiling)
	}
}
