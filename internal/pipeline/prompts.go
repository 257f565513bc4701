package pipeline

import (
	"fmt"
	"strings"

	"jobposting/internal/model"
)

// DefaultMediaPolicy 媒体ポリシー文書が無いときに使う文言
const DefaultMediaPolicy = "一般的な求人原稿作成のベストプラクティスに従って、魅力的で効果的な求人原稿を作成してください。"

// MaxMediaPolicyRunes プロンプトに埋め込む媒体ポリシーの最大文字数
const MaxMediaPolicyRunes = 10000

const textifySystemPrompt = `あなたはExcelデータを読みやすいテキスト形式に整理する専門家です。
Excelデータの内容を、構造化された読みやすいテキスト形式に変換してください。

【重要なルール】
1. Excelデータに記載されている情報をすべて抽出してください
2. ただし、「ここがポイント」セクションは、顧客の要望により、いかなる場合も完全に無視し、テキスト化しないでください（出力から完全に除外してください）。
3. データが「|」で区切られている場合：
   - 最初の値が項目名、2番目以降が値です
   - 複数の値がある場合は、すべての値を含めてください

【出力形式】
- 各項目を「項目名: 値」の形式で記載してください
- 関連する情報はグループ化して記載してください
- 「休日」の項目で内容が「日」となっている場合は「年間休日」として解釈してください
- 勤務時間が小数の場合（例: 8.5）は、時間形式（例: 8:30）に変換してください`

const textifyUserTemplate = `以下のExcelデータを読みやすいテキスト形式に変換してください。
Excelデータには「|」で区切られた値が含まれています。最初の値が項目名、2番目以降が値です。

【重要】
- 全ての情報を漏れなく抽出してください
- 「ここがポイント」セクションは完全に無視し、出力に含めないでください。
- 時間表記（例：8:30、17:00）はそのまま保持してください
- 「休日」という項目で「年間休日」という値がある場合は、「年間休日: 値」として記載してください
- 全ての項目について、目を通したことがわかるように記載してください（値が空欄でも項目名は記載、ただし「ここがポイント」は除く）

Excelデータ:
%s

上記のExcelデータを分析し、すべての情報を「項目名: 値」の形式で整理してください。値が複数ある場合は、すべての値を含めてください。`

const mapSystemHeader = `あなたは求人情報を整理し、魅力的な求人原稿を作成する専門家です。テキスト化された求人情報から情報を抽出し、以下の指定された項目にマッピングしてください。

【媒体ポリシー（参考資料）】
以下の媒体ポリシーを参考にして、魅力的で効果的な求人原稿を作成してください：

%s

【重要】
- 上記の媒体ポリシーを参考にしながら、各項目を魅力的な求人原稿として作成してください
- ポリシーに違反しない範囲で、求職者にとって魅力的で分かりやすい表現を使用してください
- 各項目は読みやすく、訴求力のある文章にしてください
- 特に「キャッチコピー」と「仕事内容」は、求職者が「この仕事をしてみたい」と思えるような魅力的な表現を心がけてください

【出力形式】
以下のJSON形式で出力してください。情報がない項目は空文字列（""）にしてください。
項目の順番は、関連性のある項目をまとめて配置しています：

`

const mapRulesHeader = `【マッピングルール（詳細定義）】
Excelデータの各項目を以下のようにマッピングしてください。各項目は媒体ポリシーを参考にしながら、魅力的で効果的な求人原稿として作成してください。
`

const mapSystemFooter = `【重要】
- Excelデータに存在する情報のみを抽出してください
- 情報がない項目は必ず空文字列（""）にしてください
- 推測や補完は行わず、Excelデータに記載されている情報のみを使用してください（「タイトル」「キャッチコピー」の生成は除く）
- 媒体ポリシーを参考にしながら、各項目を魅力的な求人原稿として作成してください
- 出力は必ずJSON形式のみで、マークダウンコードブロックや説明文は一切含めないでください
- 出力の最初と最後に余計なテキストを付けず、JSONオブジェクトのみを出力してください`

const mapUserTemplate = `以下のテキスト化された求人情報を、指定された%d項目にマッピングしてJSON形式で出力してください。

テキスト化された求人情報:
%s

上記の情報を分析し、指定された%d項目にマッピングしてJSON形式で出力してください。`

// mappingRules 項目ごとのマッピング指示（1項目1ルール）
var mappingRules = map[string][]string{
	"タイトル": {
		"ヒアリングシートには「タイトル」フィールドは存在しないため、仕事内容と職種を組み合わせて生成してください",
		"形式：「仕事内容の要約」＋「職種」の形でコンパクトに作成",
		"例：「遊技機基板の製造・検査業務（製造・組立・検査）」",
		"長くなりすぎないよう、簡潔にまとめてください",
	},
	"職種詳細": {
		"「業種」フィールドや「仕事内容」から職種の詳細を抽出してください",
		"例：「工場系（製造・組立・検査等）」",
	},
	"キャッチコピー": {
		"Excelデータのテキストを読み込んで、訴求すべきポイントを箇条書きで生成してください",
		"例：「・未経験OK！3日でマスターできる\\n・重いものを持たない軽作業\\n・マニュアル完備で安心」",
		"3〜5個程度のポイントを箇条書きで記載してください",
		"求職者にとって魅力的で、応募したくなるような表現を心がけてください",
	},
	"県カテゴリー": {
		"「就業先住所」から都道府県のみを抽出してください",
		"例：「栃木県鹿沼市...」→「栃木県」",
		"都道府県名のみで、市区町村は含めないでください",
	},
	"エリア詳細": {
		"「就業先住所」から都道府県を除いた市区町村などの詳細情報を抽出してください",
		"例：「鹿沼市村井町226-1」→「鹿沼市」または「鹿沼市村井町」",
	},
	"最寄駅": {
		"ヒアリングシートの「交通手段①」「交通手段②」から駅名を抽出してください",
		"例：「東武日光線 新鹿沼駅」→「新鹿沼駅」",
		"路線名は含めず、駅名のみを抽出してください",
	},
	"アクセス": {
		"ヒアリングシートの「交通手段①」「交通手段②」「交通手段その他」からアクセス情報を抽出してください",
		"例：「東武日光線 新鹿沼駅 車2分 徒歩8分」",
		"路線名、駅名、アクセス方法をまとめて記載してください",
	},
	"職種カテゴリー": {
		"「タイトル」を生成した際に使用した職種の部分をここに入れてください",
		"例：タイトルが「遊技機基板の製造・検査業務（製造・組立・検査）」の場合、「製造・組立・検査」を職種カテゴリーに入れる",
	},
	"雇用形態": {
		"「雇用形態」フィールドの値をそのまま使用してください",
		"例：「派遣社員」「正社員」「パート・アルバイト」など",
	},
	"学歴": {
		"Excelデータに学歴情報があれば抽出、なければ空文字列（\"\"）にしてください",
	},
	"仕事内容": {
		"「仕事内容」「■業務内容」フィールドの値を基に、できるだけわかりやすい文章で仕事内容を生成してください",
		"箇条書きではなく、読みやすい文章形式で記載してください",
		"Excelデータの内容を整理して、自然で魅力的な文章にしてください",
	},
	"給与": {
		"「給与」フィールドの値をそのまま使用してください",
		"例：「時給1200円」「月給20万円」など",
	},
	"待遇": {
		"「待遇」フィールドから福利厚生にあたる部分を記載してください",
		"例：「社会保障完備、制服貸与、休憩室、個人ロッカーあり」",
		"福利厚生に関する情報のみを抽出してください",
	},
	"勤務時間": {
		"ヒアリングシートの勤務時間に関する情報があれば記載、なければ空文字列（\"\"）にしてください",
	},
	"休日": {
		"ヒアリングシートの休日に関する情報があれば記載、なければ空文字列（\"\"）にしてください",
	},
	"資格": {
		"条件に資格が必須であればここに記載してください",
		"必須でない資格は記載しないでください",
	},
	"担当営業所": {
		"「営業所名」フィールドに記載があればそのまま使用してください",
		"記載がなければ空文字列（\"\"）にしてください",
		"例：「宇都宮営業所」",
	},
	"メッセージ": {
		"この項目は手入力用のため、常に空文字列（\"\"）にしてください",
	},
	"備考（外部非公開情報はここに記載）": {
		"Excelデータに内部情報や補足情報があれば記載、なければ空文字列（\"\"）にしてください",
	},
}

// TruncateMediaPolicy 空なら既定文言、長すぎれば先頭 MaxMediaPolicyRunes 文字
func TruncateMediaPolicy(policy string) string {
	policy = strings.TrimSpace(policy)
	if policy == "" {
		return DefaultMediaPolicy
	}
	r := []rune(policy)
	if len(r) > MaxMediaPolicyRunes {
		r = r[:MaxMediaPolicyRunes]
	}
	return string(r)
}

func buildTextifyUserPrompt(excelData string) string {
	return fmt.Sprintf(textifyUserTemplate, excelData)
}

func buildMapSystemPrompt(mediaPolicy string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, mapSystemHeader, TruncateMediaPolicy(mediaPolicy))

	sb.WriteString("{\n")
	for i, k := range model.FieldKeys {
		sb.WriteString(`  "` + k + `": ""`)
		if i < len(model.FieldKeys)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString(mapRulesHeader)
	for i, k := range model.FieldKeys {
		fmt.Fprintf(&sb, "\n%d. %s:\n", i+1, k)
		for _, rule := range mappingRules[k] {
			sb.WriteString("   - " + rule + "\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(mapSystemFooter)
	return sb.String()
}

func buildMapUserPrompt(structuredText string) string {
	n := len(model.FieldKeys)
	return fmt.Sprintf(mapUserTemplate, n, structuredText, n)
}
