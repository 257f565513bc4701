package sheet

import "strings"

// Markers ヒアリングシート判定に使う文字列マーカー
// 設定ファイルから上書きできるよう、アルゴリズム本体とは分けて持つ
type Markers struct {
	// ExampleSheet 記入例シートを示すマーカー（いずれかを含むシートは除外）
	ExampleSheet []string `toml:"example_sheet"`
	// PrimarySheet 最優先で処理するシート名のマーカー
	PrimarySheet string `toml:"primary_sheet"`
	// SecondarySheet 次点で処理するシート名のマーカー
	SecondarySheet string `toml:"secondary_sheet"`
	// Dropdown プルダウン選択のプレースホルダーセル
	Dropdown string `toml:"dropdown"`
	// Callout 社内向け営業メモ欄（テキスト化しない）
	Callout string `toml:"callout"`
	// NotRecorded プルダウン項目が未選択のときに出力する値
	NotRecorded string `toml:"not_recorded"`
	// Separator セル値の区切り文字
	Separator string `toml:"separator"`
}

// DefaultMarkers 既定のマーカー
func DefaultMarkers() Markers {
	return Markers{
		ExampleSheet:   []string{"記入例", "（記入例）", "(記入例)"},
		PrimarySheet:   "求人情報入力シート",
		SecondarySheet: "介護系専用シート",
		Dropdown:       "…プルダウン選択",
		Callout:        "ここがポイント",
		NotRecorded:    "（記載なし）",
		Separator:      " | ",
	}
}

// withDefaults 空の項目を既定値で埋める
func (m Markers) withDefaults() Markers {
	def := DefaultMarkers()
	if len(m.ExampleSheet) == 0 {
		m.ExampleSheet = def.ExampleSheet
	}
	if m.PrimarySheet == "" {
		m.PrimarySheet = def.PrimarySheet
	}
	if m.SecondarySheet == "" {
		m.SecondarySheet = def.SecondarySheet
	}
	if m.Dropdown == "" {
		m.Dropdown = def.Dropdown
	}
	if m.Callout == "" {
		m.Callout = def.Callout
	}
	if m.NotRecorded == "" {
		m.NotRecorded = def.NotRecorded
	}
	if m.Separator == "" {
		m.Separator = def.Separator
	}
	return m
}

// IsExampleSheet 記入例シートかどうか
func (m Markers) IsExampleSheet(name string) bool {
	return ContainsAny(name, m.withDefaults().ExampleSheet)
}

// ContainsAny いずれかのキーワードを含むか
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
