package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobposting/internal/model"
)

// MemoryStore プロセス内だけで保持する履歴ストア（再起動で消える）
type MemoryStore struct {
	generations map[string]*model.Generation
	seq         map[string]int64
	next        int64
	mu          sync.RWMutex
}

// NewMemoryStore メモリストアを作る
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		generations: make(map[string]*model.Generation),
		seq:         make(map[string]int64),
	}
}

// CreateGeneration 履歴を追加する
func (s *MemoryStore) CreateGeneration(g *model.Generation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if _, ok := s.generations[g.ID]; ok {
		return fmt.Errorf("generation %s already exists", g.ID)
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now

	s.next++
	s.seq[g.ID] = s.next
	s.generations[g.ID] = cloneGeneration(g)
	return nil
}

// UpdateGenerationResult フェーズ2の結果を書き込む
func (s *MemoryStore) UpdateGenerationResult(id, generatedText string, posting model.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.generations[id]
	if !ok {
		return fmt.Errorf("generation %s: %w", id, ErrNotFound)
	}
	g.GeneratedText = generatedText
	g.JobPosting = append(model.JobPosting(nil), posting...)
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// GetGeneration 1件取得（コピーを返す）
func (s *MemoryStore) GetGeneration(id string) (*model.Generation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.generations[id]
	if !ok {
		return nil, fmt.Errorf("generation %s: %w", id, ErrNotFound)
	}
	return cloneGeneration(g), nil
}

// ListGenerations 新しい順に最大 limit 件
func (s *MemoryStore) ListGenerations(limit int) ([]*model.Generation, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*model.Generation, 0, len(s.generations))
	for _, g := range s.generations {
		list = append(list, cloneGeneration(g))
	}
	sort.Slice(list, func(i, j int) bool {
		return s.seq[list[i].ID] > s.seq[list[j].ID]
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// DeleteGeneration 1件削除
func (s *MemoryStore) DeleteGeneration(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.generations[id]; !ok {
		return fmt.Errorf("generation %s: %w", id, ErrNotFound)
	}
	delete(s.generations, id)
	delete(s.seq, id)
	return nil
}

// CountGenerations 履歴件数
func (s *MemoryStore) CountGenerations() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.generations), nil
}

// Close 何もしない（SQLite ストアと差し替えられるようにある）
func (s *MemoryStore) Close() error {
	return nil
}

func cloneGeneration(g *model.Generation) *model.Generation {
	c := *g
	c.JobPosting = append(model.JobPosting(nil), g.JobPosting...)
	if len(c.JobPosting) == 0 {
		c.JobPosting = nil
	}
	return &c
}
