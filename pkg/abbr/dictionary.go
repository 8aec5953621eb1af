package abbr

import (
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// MaxPhraseLen 特例词的最大长度（字符数），也是分词时的最大前瞻窗口
const MaxPhraseLen = 4

// builtinSpecialCases 内置特例词库：地名、专有名词等逐字取首字母会出错的词
var builtinSpecialCases = map[string]string{
	// 地名（含多音字）
	"重庆": "CQ",
	"厦门": "XM",
	"朝阳": "CY",
	"长安": "CA",
	"长沙": "CS",
	"西藏": "XZ",
	"乐山": "LS",
	"青岛": "QD",
	"宁波": "NB",
	"长春": "CC",
	"保定": "BD",
	"贵阳": "GY",
	"六安": "LA",
	"台州": "TZ",
	"黄山": "HS",

	// 专有名词（含多音字）
	"重案": "ZA",
	"重量": "ZL",
	"重复": "CF",
	"行程": "XC",
	"长发": "CF",
	"调和": "TH",
	"大夫": "DF",
	"地道": "DD",
	"本事": "BS",

	"哪吒": "NZ",
	"单于": "CY",
	"可汗": "KH",
	"吐蕃": "TB",
	"龟兹": "QC",
	"大宛": "DW",
	"月氏": "YZ",
	"镐京": "HJ",
	"会稽": "KJ",
	"阿房": "AP",
}

// SpecialCaseTable 特例词库，构造后只读
type SpecialCaseTable struct {
	entries map[string]string
	maxLen  int
}

// NewSpecialCaseTable 校验并复制词条，返回只读词库
func NewSpecialCaseTable(entries map[string]string) (*SpecialCaseTable, error) {
	t := &SpecialCaseTable{entries: make(map[string]string, len(entries))}
	for phrase, abbreviation := range entries {
		if err := ValidatePhrase(phrase, abbreviation); err != nil {
			return nil, err
		}
		t.entries[phrase] = abbreviation
		if n := utf8.RuneCountInString(phrase); n > t.maxLen {
			t.maxLen = n
		}
	}
	return t, nil
}

// BuiltinSpecialCases 返回内置特例词库
func BuiltinSpecialCases() *SpecialCaseTable {
	t, err := NewSpecialCaseTable(builtinSpecialCases)
	if err != nil {
		panic("invalid builtin special cases: " + err.Error())
	}
	return t
}

// ValidatePhrase 检查特例词条：词长 1~4 个字符，不能以空白、标点或符号开头，
// 缩写只能由大写字母和数字组成且不长于词条
func ValidatePhrase(phrase, abbreviation string) error {
	if !utf8.ValidString(phrase) {
		return errors.Newf("phrase %q is not valid UTF-8", phrase)
	}
	n := utf8.RuneCountInString(phrase)
	if n < 1 || n > MaxPhraseLen {
		return errors.Newf("phrase %q must be 1-%d characters long, got %d", phrase, MaxPhraseLen, n)
	}
	if first, _ := utf8.DecodeRuneInString(phrase); isDropped(foldWidth(first)) {
		return errors.Newf("phrase %q must not start with whitespace, punctuation or a symbol", phrase)
	}
	if abbreviation == "" {
		return errors.Newf("abbreviation for phrase %q is empty", phrase)
	}
	if len(abbreviation) > n {
		return errors.Newf("abbreviation %q is longer than phrase %q", abbreviation, phrase)
	}
	for _, r := range abbreviation {
		if !(r >= 'A' && r <= 'Z') && !isDigit(r) {
			return errors.Newf("abbreviation %q for phrase %q must contain only A-Z and 0-9", abbreviation, phrase)
		}
	}
	return nil
}

// Merge 返回一个新词库，overrides 中的词条覆盖同名词条
func (t *SpecialCaseTable) Merge(overrides map[string]string) (*SpecialCaseTable, error) {
	merged := make(map[string]string, len(t.entries)+len(overrides))
	for k, v := range t.entries {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return NewSpecialCaseTable(merged)
}

// Len 词条数量
func (t *SpecialCaseTable) Len() int {
	return len(t.entries)
}

// MaxLen 最长词条的字符数
func (t *SpecialCaseTable) MaxLen() int {
	return t.maxLen
}

// Entries 返回词条副本
func (t *SpecialCaseTable) Entries() map[string]string {
	out := make(map[string]string, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}

// Lookup 从 pos 开始按长度 maxLen→1 依次尝试精确匹配，返回第一个命中的缩写和匹配长度
func (t *SpecialCaseTable) Lookup(text []rune, pos, maxLen int) (string, int, bool) {
	if maxLen > t.maxLen {
		maxLen = t.maxLen
	}
	if remaining := len(text) - pos; maxLen > remaining {
		maxLen = remaining
	}
	for l := maxLen; l >= 1; l-- {
		if abbreviation, ok := t.entries[string(text[pos:pos+l])]; ok {
			return abbreviation, l, true
		}
	}
	return "", 0, false
}
