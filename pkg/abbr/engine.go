// Package abbr 把中文文本转换为拼音首字母缩写，并可选地转换为九宫格按键数字。
//
// 分词是确定性的贪婪最长匹配：在每个位置先用特例词库按 4→1 的长度尝试匹配，
// 未命中时退回单字声母解析。已消费的字符不会回溯，因此前面的选择可能挡住
// 从下一个位置开始的更长特例词，这是已知限制。
package abbr

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Result 一次转换的结果
type Result struct {
	Abbreviation string `json:"abbreviation"`
	Original     string `json:"original"`
	KeypadDigits string `json:"keypad_digits,omitempty"`
}

// Engine 缩写引擎，构造后只读，可并发使用
type Engine struct {
	specialCases *SpecialCaseTable
	resolver     *Resolver
	keypad       *KeypadEncoder
}

type options struct {
	specialCases *SpecialCaseTable
	selector     ReadingSelector
	zeroInitials map[string]string
	retroflex    []RetroflexRule
	keypad       map[rune]byte
}

// Option 引擎构造选项
type Option func(*options)

// WithSpecialCases 替换特例词库
func WithSpecialCases(t *SpecialCaseTable) Option {
	return func(o *options) { o.specialCases = t }
}

// WithReadingSelector 替换多音字取舍策略
func WithReadingSelector(s ReadingSelector) Option {
	return func(o *options) { o.selector = s }
}

// WithZeroInitials 替换零声母映射表
func WithZeroInitials(m map[string]string) Option {
	return func(o *options) { o.zeroInitials = m }
}

// WithRetroflex 替换翘舌音转换表
func WithRetroflex(rules []RetroflexRule) Option {
	return func(o *options) { o.retroflex = rules }
}

// WithKeypadLayout 替换按键布局
func WithKeypadLayout(layout map[rune]byte) Option {
	return func(o *options) { o.keypad = layout }
}

// NewEngine 创建缩写引擎
func NewEngine(t Transcriber, opts ...Option) *Engine {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.specialCases == nil {
		o.specialCases = BuiltinSpecialCases()
	}
	return &Engine{
		specialCases: o.specialCases,
		resolver:     NewResolver(t, o.selector, o.zeroInitials, o.retroflex),
		keypad:       NewKeypadEncoder(o.keypad),
	}
}

// SpecialCases 当前使用的特例词库
func (e *Engine) SpecialCases() *SpecialCaseTable {
	return e.specialCases
}

// Convert 把文本转换为缩写，Original 为原始输入
func (e *Engine) Convert(text string) (Result, error) {
	if text == "" {
		return Result{}, ErrEmptyInput
	}
	chars := []rune(text)
	var b strings.Builder
	b.Grow(len(chars))
	for pos := 0; pos < len(chars); {
		if abbreviation, n, ok := e.specialCases.Lookup(chars, pos, MaxPhraseLen); ok {
			b.WriteString(abbreviation)
			pos += n
			continue
		}
		initial, err := e.resolver.Resolve(chars[pos])
		if err != nil {
			var uce *UnsupportedCharacterError
			if errors.As(err, &uce) {
				uce.Position = pos
			}
			return Result{}, err
		}
		b.WriteString(initial)
		pos++
	}
	return Result{Abbreviation: b.String(), Original: text}, nil
}

// ConvertWithKeypad 转换并附带九宫格按键数字
func (e *Engine) ConvertWithKeypad(text string) (Result, error) {
	res, err := e.Convert(text)
	if err != nil {
		return res, err
	}
	res.KeypadDigits = e.keypad.Encode(res.Abbreviation)
	return res, nil
}

// Encode 把缩写转换为按键数字
func (e *Engine) Encode(abbreviation string) string {
	return e.keypad.Encode(abbreviation)
}
