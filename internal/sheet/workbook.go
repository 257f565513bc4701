package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Workbook シート名の一覧と行データを提供する
type Workbook interface {
	SheetNames() []string
	Rows(sheetName string) ([]Row, error)
	Close() error
}

// OpenWorkbook アップロードされたファイルを読み込む
// 拡張子 .csv は CSV（UTF-8 / Shift_JIS）、それ以外は Excel ブックとして扱う
func OpenWorkbook(r io.Reader, filename string) (Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".csv" {
		return openCSV(data, filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return &excelWorkbook{file: f}, nil
}

// NewExcelWorkbook excelize の File をそのまま Workbook として使う
func NewExcelWorkbook(f *excelize.File) Workbook {
	return &excelWorkbook{file: f}
}

type excelWorkbook struct {
	file *excelize.File
}

func (w *excelWorkbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Rows 表示書式を適用しない生の値で読む（時刻は 0.333... のまま）
func (w *excelWorkbook) Rows(sheetName string) ([]Row, error) {
	rows, err := w.file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ReadError{SheetName: sheetName, Err: err}
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row(r)
	}
	return out, nil
}

func (w *excelWorkbook) Close() error {
	return w.file.Close()
}

type csvWorkbook struct {
	name string
	rows []Row
}

func openCSV(data []byte, filename string) (Workbook, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("%w: decode csv: %v", ErrUnsupportedFormat, err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %v", ErrUnsupportedFormat, err)
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row(rec)
	}
	base := filepath.Base(filename)
	return &csvWorkbook{
		name: strings.TrimSuffix(base, filepath.Ext(base)),
		rows: rows,
	}, nil
}

func (w *csvWorkbook) SheetNames() []string {
	return []string{w.name}
}

func (w *csvWorkbook) Rows(sheetName string) ([]Row, error) {
	if sheetName != w.name {
		return nil, &ReadError{SheetName: sheetName, Err: fmt.Errorf("sheet does not exist")}
	}
	return w.rows, nil
}

func (w *csvWorkbook) Close() error {
	return nil
}
