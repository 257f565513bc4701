package store

import (
	"errors"
	"path/filepath"
	"testing"

	"jobposting/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := New(filepath.Join(t.TempDir(), "data", "jobposting.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestGenerationLifecycle(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	g := &model.Generation{
		FileName:       "ヒアリングシート.xlsx",
		SheetName:      "求人情報入力シート",
		StructuredText: "雇用形態: 正社員",
	}
	if err := st.CreateGeneration(g); err != nil {
		t.Fatalf("create: %v", err)
	}
	if g.ID == "" || g.CreatedAt.IsZero() {
		t.Fatalf("id/timestamps not assigned: %+v", g)
	}

	got, err := st.GetGeneration(g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.StructuredText != g.StructuredText || got.SheetName != g.SheetName {
		t.Fatalf("unexpected generation: %+v", got)
	}
	if got.Completed() || got.JobPosting != nil {
		t.Fatalf("new generation should have no result: %+v", got)
	}
	if !got.CreatedAt.Equal(g.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", got.CreatedAt, g.CreatedAt)
	}

	posting := model.NewJobPosting()
	_ = posting.Set("雇用形態", "正社員")
	if err := st.UpdateGenerationResult(g.ID, posting.Render(), posting); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err = st.GetGeneration(g.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if !got.Completed() {
		t.Fatalf("generation should be completed")
	}
	if got.JobPosting.Get("雇用形態") != "正社員" || len(got.JobPosting) != len(model.FieldKeys) {
		t.Fatalf("job posting not persisted: %v", got.JobPosting)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Fatalf("updated_at before created_at")
	}

	n, err := st.CountGenerations()
	if err != nil || n != 1 {
		t.Fatalf("count=%d err=%v", n, err)
	}

	if err := st.DeleteGeneration(g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.GetGeneration(g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete err=%v", err)
	}
}

func TestListGenerations_NewestFirst(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	for _, name := range []string{"a.xlsx", "b.xlsx", "c.xlsx"} {
		if err := st.CreateGeneration(&model.Generation{FileName: name, StructuredText: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	list, err := st.ListGenerations(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len=%d", len(list))
	}
	if list[0].FileName != "c.xlsx" || list[1].FileName != "b.xlsx" {
		t.Fatalf("order: %s, %s", list[0].FileName, list[1].FileName)
	}

	all, err := st.ListGenerations(0)
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: len=%d err=%v", len(all), err)
	}
}

func TestMissingGeneration(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	if err := st.UpdateGenerationResult("missing", "x", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update err=%v", err)
	}
	if err := st.DeleteGeneration("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete err=%v", err)
	}
}
