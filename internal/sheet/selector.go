package sheet

import "strings"

// ValidSheets 記入例シートを除いたシート名を元の順序で返す
func ValidSheets(names []string, m Markers) []string {
	m = m.withDefaults()
	valid := make([]string, 0, len(names))
	for _, name := range names {
		if m.IsExampleSheet(name) {
			continue
		}
		valid = append(valid, name)
	}
	return valid
}

// SelectTarget 処理対象のシートを1つだけ選ぶ
// 優先順位: 求人情報入力シート > 介護系専用シート > 最初の有効シート
func SelectTarget(names []string, m Markers) (string, error) {
	m = m.withDefaults()

	valid := ValidSheets(names, m)
	if len(valid) == 0 {
		return "", ErrNoValidSheet
	}

	for _, marker := range []string{m.PrimarySheet, m.SecondarySheet} {
		for _, name := range valid {
			if strings.Contains(name, marker) {
				return name, nil
			}
		}
	}

	return valid[0], nil
}
