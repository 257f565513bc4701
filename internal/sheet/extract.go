package sheet

// Extraction シート抽出の結果
type Extraction struct {
	TargetSheet   string    `json:"targetSheet"`
	ExcludedNames []string  `json:"excludedSheets"`
	RowCount      int       `json:"rowCount"`
	Block         TextBlock `json:"block"`
}

// Extract 対象シートを選び、行をテキスト化する
// 対象シート以外は読まない
func Extract(wb Workbook, m Markers) (*Extraction, error) {
	m = m.withDefaults()

	names := wb.SheetNames()
	target, err := SelectTarget(names, m)
	if err != nil {
		return nil, err
	}

	rows, err := wb.Rows(target)
	if err != nil {
		return nil, err
	}

	excluded := make([]string, 0)
	for _, name := range names {
		if m.IsExampleSheet(name) {
			excluded = append(excluded, name)
		}
	}

	block := TextBlock{Sheets: []SheetLines{{
		SheetName: target,
		Lines:     FlattenRows(rows, m),
	}}}
	if block.IsEmpty() {
		return nil, ErrEmptyText
	}

	return &Extraction{
		TargetSheet:   target,
		ExcludedNames: excluded,
		RowCount:      len(rows),
		Block:         block,
	}, nil
}
