package model

import "time"

// Generation 生成履歴の1件
// フェーズ1完了時に作られ、フェーズ2完了時に生成結果が入る
type Generation struct {
	ID             string     `json:"id"`
	FileName       string     `json:"fileName"`
	SheetName      string     `json:"sheetName"`
	StructuredText string     `json:"structuredText"`
	GeneratedText  string     `json:"generatedText"`
	JobPosting     JobPosting `json:"jsonData,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Completed フェーズ2まで終わっているか
func (g *Generation) Completed() bool {
	return g.GeneratedText != ""
}

// GenerationSummary 履歴一覧用（本文を含まない）
type GenerationSummary struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	SheetName string    `json:"sheetName"`
	Completed bool      `json:"completed"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary 一覧用の要約
func (g *Generation) Summary() GenerationSummary {
	return GenerationSummary{
		ID:        g.ID,
		FileName:  g.FileName,
		SheetName: g.SheetName,
		Completed: g.Completed(),
		Title:     g.JobPosting.Get("タイトル"),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
