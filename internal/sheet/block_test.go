package sheet

import (
	"fmt"
	"testing"
)

func TestTextBlock_String(t *testing.T) {
	t.Parallel()

	b := TextBlock{Sheets: []SheetLines{
		{SheetName: "求人情報入力シート", Lines: []string{"雇用形態 | 正社員", "給与 | 時給1200円"}},
		{SheetName: "空", Lines: nil},
	}}
	want := "\n【シート名: 求人情報入力シート】\n雇用形態 | 正社員\n給与 | 時給1200円\n"
	if got := b.String(); got != want {
		t.Fatalf("String()=%q, want %q", got, want)
	}
	if b.IsEmpty() {
		t.Fatalf("block should not be empty")
	}
	if got := (TextBlock{Sheets: []SheetLines{{SheetName: "空"}}}); !got.IsEmpty() {
		t.Fatalf("block without lines should be empty")
	}
}

func TestTextBlock_LenCountsCharacters(t *testing.T) {
	t.Parallel()

	b := TextBlock{Sheets: []SheetLines{{SheetName: "A", Lines: []string{"給与"}}}}
	// "\n【シート名: A】\n給与\n" = 1 + 9 + 1 + 2 + 1
	if got, want := b.Len(), 14; got != want {
		t.Fatalf("Len()=%d, want %d", got, want)
	}
}

func TestTextBlock_Truncate(t *testing.T) {
	t.Parallel()

	lines := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		lines = append(lines, fmt.Sprintf("項目%d | 値%d", i, i))
	}
	b := TextBlock{Sheets: []SheetLines{
		{SheetName: "A", Lines: lines},
		{SheetName: "B", Lines: lines[:10]},
	}}

	got := b.Truncate(30)
	if n := len(got.Sheets[0].Lines); n != 30 {
		t.Fatalf("sheet A lines=%d, want 30", n)
	}
	if n := len(got.Sheets[1].Lines); n != 10 {
		t.Fatalf("sheet B lines=%d, want 10", n)
	}
	if got.Sheets[0].Lines[29] != "項目29 | 値29" {
		t.Fatalf("unexpected last line: %q", got.Sheets[0].Lines[29])
	}
	if len(b.Sheets[0].Lines) != 50 {
		t.Fatalf("Truncate must not modify the receiver")
	}
}
