package abbr

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Transcriber 拼音查询服务：给定一个字符，按优先级返回候选读音，未知字符返回空
type Transcriber interface {
	Readings(r rune) []string
}

// TranscriberFunc 函数形式的 Transcriber
type TranscriberFunc func(r rune) []string

func (f TranscriberFunc) Readings(r rune) []string { return f(r) }

// ReadingSelector 多音字取舍策略，从候选读音中选出一个
type ReadingSelector func(readings []string) string

// FirstReading 默认策略：取拼音服务返回的第一个候选
func FirstReading(readings []string) string {
	if len(readings) == 0 {
		return ""
	}
	return readings[0]
}

// RetroflexRule 翘舌音前缀及其合并后的声母
type RetroflexRule struct {
	Prefix  string
	Initial string
}

// DefaultZeroInitials 零声母映射表
func DefaultZeroInitials() map[string]string {
	return map[string]string{
		"a": "A", "o": "O", "e": "E",
		"ai": "A", "ei": "E", "ou": "O",
	}
}

// DefaultRetroflex 翘舌音转换表，按 zh、ch、sh 顺序检查
func DefaultRetroflex() []RetroflexRule {
	return []RetroflexRule{
		{Prefix: "zh", Initial: "z"},
		{Prefix: "ch", Initial: "c"},
		{Prefix: "sh", Initial: "s"},
	}
}

// Resolver 单字声母解析器
type Resolver struct {
	transcriber  Transcriber
	selector     ReadingSelector
	zeroInitials map[string]string
	retroflex    []RetroflexRule
}

// NewResolver 创建声母解析器，nil 的表和策略使用默认值
func NewResolver(t Transcriber, selector ReadingSelector, zeroInitials map[string]string, retroflex []RetroflexRule) *Resolver {
	if selector == nil {
		selector = FirstReading
	}
	if zeroInitials == nil {
		zeroInitials = DefaultZeroInitials()
	}
	if retroflex == nil {
		retroflex = DefaultRetroflex()
	}
	return &Resolver{
		transcriber:  t,
		selector:     selector,
		zeroInitials: zeroInitials,
		retroflex:    retroflex,
	}
}

// Resolve 返回字符的声母（大写）。
// 数字原样保留，拉丁字母转大写保留，空白、标点和符号返回空串；
// 没有可用读音的其他字符返回 *UnsupportedCharacterError。
func (r *Resolver) Resolve(c rune) (string, error) {
	c = foldWidth(c)
	switch {
	case isDigit(c):
		return string(c), nil
	case c < unicode.MaxASCII && unicode.IsLetter(c):
		return strings.ToUpper(string(c)), nil
	case isDropped(c):
		return "", nil
	}
	if r.transcriber == nil {
		return "", &UnsupportedCharacterError{Char: c}
	}
	syllable := StripTone(r.selector(r.transcriber.Readings(c)))
	if syllable == "" {
		return "", &UnsupportedCharacterError{Char: c}
	}
	return strings.ToUpper(r.initialOf(syllable)), nil
}

// initialOf 零声母整音节优先，其次翘舌音前缀，最后取首字母
func (r *Resolver) initialOf(syllable string) string {
	if initial, ok := r.zeroInitials[syllable]; ok {
		return initial
	}
	for _, rule := range r.retroflex {
		if strings.HasPrefix(syllable, rule.Prefix) {
			return rule.Initial
		}
	}
	return syllable[:1]
}

// StripTone 去除声调，只保留小写字母 a-z，例如 "zhòng" -> "zhong"，"lǘ" -> "lu"
func StripTone(reading string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.ToLower(reading))
	if err != nil {
		s = reading
	}
	var b strings.Builder
	for _, c := range s {
		if c >= 'a' && c <= 'z' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// foldWidth 全角数字和字母转为半角
func foldWidth(c rune) rune {
	if c < unicode.MaxASCII {
		return c
	}
	folded := []rune(width.Fold.String(string(c)))
	if len(folded) == 1 && folded[0] < unicode.MaxASCII {
		return folded[0]
	}
	return c
}

// isDropped 空白、标点、符号和控制字符不产生输出
func isDropped(c rune) bool {
	return unicode.IsSpace(c) || unicode.IsPunct(c) || unicode.IsSymbol(c) || unicode.IsControl(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
