package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobposting/internal/model"
)

// DefaultListLimit 一覧の既定件数
const DefaultListLimit = 50

// 固定幅にして文字列比較でも時刻順になるようにする
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const generationColumns = `id, file_name, sheet_name, structured_text, generated_text, job_posting_json, created_at, updated_at`

// CreateGeneration フェーズ1の結果を履歴に追加する
// ID が空なら採番し、作成・更新時刻を設定する
func (s *Store) CreateGeneration(g *model.Generation) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now

	postingJSON, err := encodePosting(g.JobPosting)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO generations (`+generationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.FileName, g.SheetName, g.StructuredText, g.GeneratedText, postingJSON,
		now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to create generation: %w", err)
	}
	return nil
}

// UpdateGenerationResult フェーズ2の結果を書き込む
func (s *Store) UpdateGenerationResult(id, generatedText string, posting model.JobPosting) error {
	postingJSON, err := encodePosting(posting)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE generations SET
			generated_text = ?,
			job_posting_json = ?,
			updated_at = ?
		WHERE id = ?
	`, generatedText, postingJSON, time.Now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("failed to update generation: %w", err)
	}
	return requireAffected(res, id)
}

// GetGeneration 1件取得
func (s *Store) GetGeneration(id string) (*model.Generation, error) {
	row := s.db.QueryRow(`SELECT `+generationColumns+` FROM generations WHERE id = ?`, id)
	g, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("generation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return g, nil
}

// ListGenerations 新しい順に最大 limit 件
func (s *Store) ListGenerations(limit int) ([]*model.Generation, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.Query(`
		SELECT `+generationColumns+` FROM generations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	list := make([]*model.Generation, 0)
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		list = append(list, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generations: %w", err)
	}
	return list, nil
}

// DeleteGeneration 1件削除
func (s *Store) DeleteGeneration(id string) error {
	res, err := s.db.Exec(`DELETE FROM generations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete generation: %w", err)
	}
	return requireAffected(res, id)
}

// CountGenerations 履歴件数
func (s *Store) CountGenerations() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM generations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count generations: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGeneration(row rowScanner) (*model.Generation, error) {
	var (
		g                  model.Generation
		postingJSON        string
		createdAt, updated string
	)
	if err := row.Scan(&g.ID, &g.FileName, &g.SheetName, &g.StructuredText, &g.GeneratedText,
		&postingJSON, &createdAt, &updated); err != nil {
		return nil, err
	}

	if postingJSON != "" {
		if err := json.Unmarshal([]byte(postingJSON), &g.JobPosting); err != nil {
			return nil, fmt.Errorf("invalid job posting json for %s: %w", g.ID, err)
		}
	}

	var err error
	if g.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at for %s: %w", g.ID, err)
	}
	if g.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("invalid updated_at for %s: %w", g.ID, err)
	}
	return &g, nil
}

func encodePosting(p model.JobPosting) (string, error) {
	if len(p) == 0 {
		return "", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode job posting: %w", err)
	}
	return string(b), nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("generation %s: %w", id, ErrNotFound)
	}
	return nil
}
