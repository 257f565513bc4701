package sheet

import (
	"strings"
	"unicode/utf8"
)

// SheetLines 1シート分のテキスト行
type SheetLines struct {
	SheetName string   `json:"sheetName"`
	Lines     []string `json:"lines"`
}

// TextBlock LLM に渡すシートテキストのまとまり
// セル座標・書式・数式は含まない
type TextBlock struct {
	Sheets []SheetLines `json:"sheets"`
}

// String 「【シート名: X】」見出し付きのテキストにする
// 行が無いシートは出力しない
func (b TextBlock) String() string {
	var sb strings.Builder
	for _, s := range b.Sheets {
		if len(s.Lines) == 0 {
			continue
		}
		sb.WriteString("\n【シート名: ")
		sb.WriteString(s.SheetName)
		sb.WriteString("】\n")
		sb.WriteString(strings.Join(s.Lines, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Len 文字数（バイト数ではない）
func (b TextBlock) Len() int {
	return utf8.RuneCountInString(b.String())
}

// LineCount 全シートの行数
func (b TextBlock) LineCount() int {
	n := 0
	for _, s := range b.Sheets {
		n += len(s.Lines)
	}
	return n
}

// IsEmpty 空白以外の文字を含まない
func (b TextBlock) IsEmpty() bool {
	return strings.TrimSpace(b.String()) == ""
}

// Truncate 各シートの先頭 maxLines 行だけを残したコピーを返す
func (b TextBlock) Truncate(maxLines int) TextBlock {
	out := TextBlock{Sheets: make([]SheetLines, 0, len(b.Sheets))}
	for _, s := range b.Sheets {
		lines := s.Lines
		if maxLines >= 0 && len(lines) > maxLines {
			lines = lines[:maxLines]
		}
		out.Sheets = append(out.Sheets, SheetLines{
			SheetName: s.SheetName,
			Lines:     append([]string(nil), lines...),
		})
	}
	return out
}
