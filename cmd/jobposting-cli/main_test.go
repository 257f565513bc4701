package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"jobposting/internal/model"
)

func writeHearingSheet(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	if err := f.SetSheetName(f.GetSheetName(0), "求人情報入力シート"); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	rows := [][]interface{}{
		{"雇用形態", "正社員"},
		{"勤務開始", 0.375},
		{"休日", "", "…プルダウン選択"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow("求人情報入力シート", cell, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "hearing.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.toml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestFlatten(t *testing.T) {
	out, err := runCLI(t, "flatten", writeHearingSheet(t))
	if err != nil {
		t.Fatalf("flatten: %v\n%s", err, out)
	}
	want := "\n【シート名: 求人情報入力シート】\n雇用形態 | 正社員\n勤務開始 | 9:00\n休日 | （記載なし）\n"
	if out != want {
		t.Fatalf("output mismatch:\n got: %q\nwant: %q", out, want)
	}
}

func TestGenerate_FakeProviderJSON(t *testing.T) {
	out, err := runCLI(t, "--provider", "fake", "generate", "--json", writeHearingSheet(t))
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	var posting model.JobPosting
	if err := json.Unmarshal([]byte(out), &posting); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(posting) != len(model.FieldKeys) {
		t.Fatalf("fields=%d", len(posting))
	}
	if !strings.HasPrefix(out, "{\n  \"タイトル\": \"\"") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestTextify_WritesOutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "structured.txt")
	if _, err := runCLI(t, "--provider", "fake", "textify", "-o", outPath, writeHearingSheet(t)); err != nil {
		t.Fatalf("textify: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "雇用形態 | 正社員") {
		t.Fatalf("structured text=%q", data)
	}
}

func TestMap_FromStdinRendersText(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("雇用形態: 正社員"))
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "config.toml"), "--provider", "fake", "map", "-"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("map: %v", err)
	}
	if !strings.HasPrefix(out.String(), "【タイトル】\n（未入力）\n") {
		t.Fatalf("output=%q", out.String())
	}
}

func TestGenerate_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := runCLI(t, "--provider", "openai", "generate", writeHearingSheet(t)); err == nil {
		t.Fatalf("expected configuration error")
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")
	if _, err := runCLI(t, "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := runCLI(t, "config", "init", path); err == nil {
		t.Fatalf("expected error when file exists")
	}
}
