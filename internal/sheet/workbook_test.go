package sheet_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"jobposting/internal/sheet"
)

func buildWorkbook(t *testing.T, sheets []string, rows map[string][][]interface{}) *bytes.Buffer {
	t.Helper()

	wb := excelize.NewFile()
	t.Cleanup(func() { _ = wb.Close() })
	defaultSheet := wb.GetSheetName(wb.GetActiveSheetIndex())

	for _, name := range sheets {
		if _, err := wb.NewSheet(name); err != nil {
			t.Fatalf("NewSheet %s failed: %v", name, err)
		}
		for i, row := range rows[name] {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			r := row
			if err := wb.SetSheetRow(name, cell, &r); err != nil {
				t.Fatalf("SetSheetRow %s failed: %v", name, err)
			}
		}
	}
	if defaultSheet != "" {
		_ = wb.DeleteSheet(defaultSheet)
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf
}

func TestExtract_SingleInputSheet(t *testing.T) {
	buf := buildWorkbook(t, []string{"求人情報入力シート"}, map[string][][]interface{}{
		"求人情報入力シート": {
			{"雇用形態", "正社員"},
			{"給与", "時給1200円"},
		},
	})

	wb, err := sheet.OpenWorkbook(buf, "hearing.xlsx")
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })

	ext, err := sheet.Extract(wb, sheet.DefaultMarkers())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if ext.TargetSheet != "求人情報入力シート" {
		t.Fatalf("TargetSheet=%q", ext.TargetSheet)
	}
	want := []string{"雇用形態 | 正社員", "給与 | 時給1200円"}
	if got := ext.Block.Sheets[0].Lines; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines=%q, want %q", got, want)
	}
}

func TestExtract_SkipsExampleSheetAndConvertsTimes(t *testing.T) {
	buf := buildWorkbook(t, []string{"求人情報入力シート（記入例）", "求人情報入力シート"}, map[string][][]interface{}{
		"求人情報入力シート（記入例）": {
			{"雇用形態", "派遣社員"},
		},
		"求人情報入力シート": {
			{"勤務時間", 0.375, "〜", 0.75},
			{"休憩", 1},
			{"休日", "", "…プルダウン選択"},
			{"ここがポイント", "社内メモ", "…プルダウン選択"},
		},
	})

	wb, err := sheet.OpenWorkbook(buf, "hearing.xlsx")
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })

	ext, err := sheet.Extract(wb, sheet.DefaultMarkers())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if ext.TargetSheet != "求人情報入力シート" {
		t.Fatalf("TargetSheet=%q", ext.TargetSheet)
	}
	if !reflect.DeepEqual(ext.ExcludedNames, []string{"求人情報入力シート（記入例）"}) {
		t.Fatalf("ExcludedNames=%q", ext.ExcludedNames)
	}
	want := []string{
		"勤務時間 | 9:00 | 〜 | 18:00",
		"休憩 | 1",
		"休日 | （記載なし）",
	}
	if got := ext.Block.Sheets[0].Lines; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines=%q, want %q", got, want)
	}
}

func TestExtract_OnlyExampleSheets(t *testing.T) {
	buf := buildWorkbook(t, []string{"記入例"}, map[string][][]interface{}{
		"記入例": {{"雇用形態", "正社員"}},
	})

	wb, err := sheet.OpenWorkbook(buf, "hearing.xlsx")
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })

	if _, err := sheet.Extract(wb, sheet.DefaultMarkers()); !errors.Is(err, sheet.ErrNoValidSheet) {
		t.Fatalf("err=%v, want ErrNoValidSheet", err)
	}
}

func TestExtract_EmptySheet(t *testing.T) {
	buf := buildWorkbook(t, []string{"求人情報入力シート"}, map[string][][]interface{}{
		"求人情報入力シート": {{"", ""}},
	})

	wb, err := sheet.OpenWorkbook(buf, "hearing.xlsx")
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })

	if _, err := sheet.Extract(wb, sheet.DefaultMarkers()); !errors.Is(err, sheet.ErrEmptyText) {
		t.Fatalf("err=%v, want ErrEmptyText", err)
	}
}

func TestOpenWorkbook_RejectsNonSpreadsheet(t *testing.T) {
	t.Parallel()

	_, err := sheet.OpenWorkbook(bytes.NewReader([]byte("not a workbook")), "hearing.xls")
	if !errors.Is(err, sheet.ErrUnsupportedFormat) {
		t.Fatalf("err=%v, want ErrUnsupportedFormat", err)
	}
}

func TestOpenWorkbook_ShiftJISCSV(t *testing.T) {
	t.Parallel()

	raw := "雇用形態,正社員\n勤務時間,8.5,〜,17.5\n"
	encoded, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), raw)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	wb, err := sheet.OpenWorkbook(bytes.NewReader([]byte(encoded)), "求人情報入力シート.csv")
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	ext, err := sheet.Extract(wb, sheet.DefaultMarkers())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if ext.TargetSheet != "求人情報入力シート" {
		t.Fatalf("TargetSheet=%q", ext.TargetSheet)
	}
	want := []string{"雇用形態 | 正社員", "勤務時間 | 8:30 | 〜 | 17:30"}
	if got := ext.Block.Sheets[0].Lines; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines=%q, want %q", got, want)
	}
}
