package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FieldKeys 求人原稿の固定項目（出力順）
var FieldKeys = []string{
	"タイトル",
	"職種詳細",
	"キャッチコピー",
	"県カテゴリー",
	"エリア詳細",
	"最寄駅",
	"アクセス",
	"職種カテゴリー",
	"雇用形態",
	"学歴",
	"仕事内容",
	"給与",
	"待遇",
	"勤務時間",
	"休日",
	"資格",
	"担当営業所",
	"メッセージ",
	"備考（外部非公開情報はここに記載）",
}

// EmptyValueLabel 表示用テキストで空欄の項目に出す文言
const EmptyValueLabel = "（未入力）"

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(FieldKeys))
	for i, k := range FieldKeys {
		m[k] = i
	}
	return m
}()

// IsFieldKey 固定項目のキーか
func IsFieldKey(key string) bool {
	_, ok := fieldIndex[key]
	return ok
}

// Field 項目名と値
type Field struct {
	Key   string
	Value string
}

// JobPosting 求人原稿レコード
// 常に FieldKeys と同じ順序・同じキー集合を持つ
type JobPosting []Field

// NewJobPosting 全項目が空のレコード
func NewJobPosting() JobPosting {
	p := make(JobPosting, len(FieldKeys))
	for i, k := range FieldKeys {
		p[i] = Field{Key: k}
	}
	return p
}

// Get 項目の値（固定項目以外は空文字）
func (p JobPosting) Get(key string) string {
	if i, ok := fieldIndex[key]; ok && i < len(p) && p[i].Key == key {
		return p[i].Value
	}
	for _, f := range p {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Set 固定項目の値を設定する
func (p JobPosting) Set(key, value string) error {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return nil
		}
	}
	return fmt.Errorf("unknown job posting field: %q", key)
}

// Map キー → 値のマップ（順序は失われる）
func (p JobPosting) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, f := range p {
		m[f.Key] = f.Value
	}
	return m
}

// MarshalJSON FieldKeys の順序を保った JSON オブジェクト
func (p JobPosting) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalString(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := marshalString(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 任意の JSON オブジェクトを正規化して読み込む
func (p *JobPosting) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*p, _ = NormalizeJobPosting(raw)
	return nil
}

// Render 表示用テキスト
// 各項目を「【項目名】\n値\n」にして空行区切りで連結する（空白のみの値は未入力扱い）
func (p JobPosting) Render() string {
	parts := make([]string, 0, len(p))
	for _, f := range p {
		value := f.Value
		if strings.TrimSpace(value) == "" {
			value = EmptyValueLabel
		}
		parts = append(parts, "【"+f.Key+"】\n"+value+"\n")
	}
	return strings.Join(parts, "\n")
}

// NormalizeReport 正規化で補った・捨てたキー
type NormalizeReport struct {
	Missing []string
	Extra   []string
}

// Clean 過不足が無かったか
func (r NormalizeReport) Clean() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// NormalizeJobPosting モデル出力のオブジェクトを固定項目のレコードにそろえる
//   - 欠けたキーと null は空文字
//   - 数値・真偽値は文字列化、配列・オブジェクトは JSON 文字列
//   - 固定項目以外のキーは捨てて Extra に記録
func NormalizeJobPosting(raw map[string]any) (JobPosting, NormalizeReport) {
	p := NewJobPosting()
	var report NormalizeReport

	for i, k := range FieldKeys {
		v, ok := raw[k]
		if !ok {
			report.Missing = append(report.Missing, k)
			continue
		}
		p[i].Value = stringify(v)
	}
	for k := range raw {
		if !IsFieldKey(k) {
			report.Extra = append(report.Extra, k)
		}
	}
	sort.Strings(report.Extra)
	return p, report
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		b, err := marshalString(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// marshalString HTML エスケープしない json.Marshal
func marshalString(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
