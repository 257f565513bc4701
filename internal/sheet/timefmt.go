package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCellValue セル値を出力用の文字列にする
// 数値が時刻らしい場合は H:MM 表記に変換する
//   - 0 < n < 1: 1日の割合として扱う（0.333... → 8:00）
//   - 0.1 <= n < 24 で小数部あり: 時間数として扱う（8.5 → 8:30）
//
// それ以外はトリムした元の文字列のまま
func FormatCellValue(raw string) string {
	value := strings.TrimSpace(raw)
	n, ok := parseNumber(value)
	if !ok {
		return value
	}

	switch {
	case n > 0 && n < 1:
		totalHours := n * 24
		hours := math.Floor(totalHours)
		minutes := math.Round((totalHours - hours) * 60)
		return clockString(int(hours), int(minutes))
	case n >= 0.1 && n < 24 && math.Mod(n, 1) != 0:
		hours := math.Floor(n)
		minutes := math.Round((n - hours) * 60)
		return clockString(int(hours), int(minutes))
	}
	return value
}

// clockString 60分への丸めは時に繰り上げる
func clockString(hours, minutes int) string {
	if minutes >= 60 {
		hours += minutes / 60
		minutes %= 60
	}
	return fmt.Sprintf("%d:%02d", hours, minutes)
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
