package sheet

import "strings"

// Row シートの1行（ヘッダー推定なし、空セルも保持）
type Row []string

// FlattenRows 行ごとに1本のテキスト行へ変換する
// 出力される行は必ず空ではない
func FlattenRows(rows []Row, m Markers) []string {
	m = m.withDefaults()
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line, ok := FlattenRow(row, m); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// FlattenRow 1行を「項目 | 値 | 値」形式に変換する
// 出力しない行は ok=false
func FlattenRow(row Row, m Markers) (string, bool) {
	m = m.withDefaults()

	hasDropdown := false
	cells := make([]string, 0, len(row))
	for _, cell := range row {
		text := strings.TrimSpace(cell)
		if strings.Contains(text, m.Dropdown) {
			hasDropdown = true
			continue
		}
		if text == "" {
			continue
		}
		cells = append(cells, FormatCellValue(text))
	}

	if !hasDropdown {
		if len(cells) == 0 {
			return "", false
		}
		return strings.Join(cells, m.Separator), true
	}

	label, hasValue := dropdownLabel(row, m.Dropdown)
	if label == "" {
		return "", false
	}
	// ここがポイント欄は値の有無にかかわらず出さない
	if strings.Contains(label, m.Callout) {
		return "", false
	}
	if !hasValue {
		return label + m.Separator + m.NotRecorded, true
	}
	if len(cells) == 0 {
		return "", false
	}
	return strings.Join(cells, m.Separator), true
}

// dropdownLabel プルダウン行の項目名と、項目名〜マーカー間に値があるかを返す
// マーカー位置は行内で最後に現れたマーカーセル
func dropdownLabel(row Row, marker string) (label string, hasValue bool) {
	labelIndex := -1
	markerIndex := -1
	for i, cell := range row {
		text := strings.TrimSpace(cell)
		if strings.Contains(text, marker) {
			markerIndex = i
			continue
		}
		if labelIndex == -1 && text != "" {
			labelIndex = i
			label = text
		}
	}

	if labelIndex < 0 || markerIndex <= labelIndex {
		return label, false
	}
	for i := labelIndex + 1; i < markerIndex; i++ {
		if strings.TrimSpace(row[i]) != "" {
			return label, true
		}
	}
	return label, false
}
