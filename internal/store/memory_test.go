package store

import (
	"errors"
	"sync"
	"testing"

	"jobposting/internal/model"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	g := &model.Generation{FileName: "a.xlsx", StructuredText: "雇用形態: 正社員"}
	if err := s.CreateGeneration(g); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CreateGeneration(&model.Generation{ID: g.ID}); err == nil {
		t.Fatalf("duplicate id should fail")
	}

	got, err := s.GetGeneration(g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.StructuredText = "changed"
	again, _ := s.GetGeneration(g.ID)
	if again.StructuredText != "雇用形態: 正社員" {
		t.Fatalf("GetGeneration must return a copy")
	}

	posting := model.NewJobPosting()
	_ = posting.Set("給与", "月給20万円")
	if err := s.UpdateGenerationResult(g.ID, posting.Render(), posting); err != nil {
		t.Fatalf("update: %v", err)
	}
	posting[0].Value = "mutated"
	again, _ = s.GetGeneration(g.ID)
	if !again.Completed() || again.JobPosting.Get("給与") != "月給20万円" || again.JobPosting.Get("タイトル") != "" {
		t.Fatalf("stored result=%+v", again)
	}

	if err := s.DeleteGeneration(g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetGeneration(g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete err=%v", err)
	}
	if err := s.UpdateGenerationResult(g.ID, "", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update after delete err=%v", err)
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	for _, name := range []string{"a", "b", "c"} {
		if err := s.CreateGeneration(&model.Generation{FileName: name}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	list, err := s.ListGenerations(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].FileName != "c" || list[1].FileName != "b" {
		t.Fatalf("list=%v", list)
	}
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.CreateGeneration(&model.Generation{StructuredText: "x"})
		}()
	}
	wg.Wait()

	if n, _ := s.CountGenerations(); n != 20 {
		t.Fatalf("count=%d", n)
	}
}
