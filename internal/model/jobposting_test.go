package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeJobPosting_FillsAndReports(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"タイトル":     "介護スタッフ募集",
		"給与":         1200.0,
		"学歴":         nil,
		"資格":         []any{"介護福祉士", "初任者研修"},
		"交通費":       "全額支給",
		"キャッチコピー": true,
	}
	p, report := NormalizeJobPosting(raw)

	if len(p) != len(FieldKeys) {
		t.Fatalf("len=%d, want %d", len(p), len(FieldKeys))
	}
	for i, f := range p {
		if f.Key != FieldKeys[i] {
			t.Fatalf("field %d key=%q, want %q", i, f.Key, FieldKeys[i])
		}
	}
	if got := p.Get("給与"); got != "1200" {
		t.Fatalf("給与=%q", got)
	}
	if got := p.Get("学歴"); got != "" {
		t.Fatalf("学歴=%q", got)
	}
	if got := p.Get("資格"); got != `["介護福祉士","初任者研修"]` {
		t.Fatalf("資格=%q", got)
	}
	if got := p.Get("キャッチコピー"); got != "true" {
		t.Fatalf("キャッチコピー=%q", got)
	}
	if !reflect.DeepEqual(report.Extra, []string{"交通費"}) {
		t.Fatalf("Extra=%v", report.Extra)
	}
	if len(report.Missing) != len(FieldKeys)-5 {
		t.Fatalf("Missing=%v", report.Missing)
	}
	if report.Clean() {
		t.Fatalf("report should not be clean")
	}
}

func TestJobPosting_MarshalJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	p := NewJobPosting()
	if err := p.Set("備考（外部非公開情報はここに記載）", "社保完備&交通費"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := p.Set("存在しない", "x"); err == nil {
		t.Fatalf("expected error for unknown key")
	}

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(b)
	if !strings.HasPrefix(s, `{"タイトル":"","職種詳細":""`) {
		t.Fatalf("unexpected prefix: %s", s)
	}
	if !strings.HasSuffix(s, `"備考（外部非公開情報はここに記載）":"社保完備&交通費"}`) {
		t.Fatalf("unexpected suffix: %s", s)
	}

	last := -1
	for _, k := range FieldKeys {
		idx := strings.Index(s, `"`+k+`"`)
		if idx <= last {
			t.Fatalf("key %q out of order in %s", k, s)
		}
		last = idx
	}

	var back JobPosting
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(back, p) {
		t.Fatalf("decoded=%v, want %v", back, p)
	}
}

func TestJobPosting_Render(t *testing.T) {
	t.Parallel()

	p := NewJobPosting()
	_ = p.Set("タイトル", "介護スタッフ")
	out := p.Render()

	if !strings.HasPrefix(out, "【タイトル】\n介護スタッフ\n\n【職種詳細】\n（未入力）\n") {
		t.Fatalf("unexpected rendering:\n%s", out)
	}
	if !strings.HasSuffix(out, "【備考（外部非公開情報はここに記載）】\n（未入力）\n") {
		t.Fatalf("unexpected tail:\n%s", out)
	}
	if n := strings.Count(out, "【"); n != len(FieldKeys) {
		t.Fatalf("rendered %d sections, want %d", n, len(FieldKeys))
	}
}

func TestGeneration_Summary(t *testing.T) {
	t.Parallel()

	g := &Generation{ID: "g1", FileName: "a.xlsx", StructuredText: "x"}
	if g.Completed() {
		t.Fatalf("generation without text should not be completed")
	}
	g.JobPosting = NewJobPosting()
	_ = g.JobPosting.Set("タイトル", "看護師")
	g.GeneratedText = g.JobPosting.Render()

	s := g.Summary()
	if !s.Completed || s.Title != "看護師" || s.ID != "g1" {
		t.Fatalf("summary=%+v", s)
	}
}
