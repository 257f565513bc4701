package sheet

import (
	"errors"
	"fmt"
)

var (
	// ErrNoValidSheet 記入例以外のシートが存在しない
	ErrNoValidSheet = errors.New("no valid sheet: every sheet is an example sheet")
	// ErrEmptyText シートからテキストを取り出せなかった
	ErrEmptyText = errors.New("no text could be extracted from the sheet")
	// ErrUnsupportedFormat 読み込めないファイル形式
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
)

// ReadError シート読み込み時のエラー
type ReadError struct {
	SheetName string
	Err       error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read sheet %q: %v", e.SheetName, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
