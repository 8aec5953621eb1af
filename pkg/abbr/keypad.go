package abbr

import "strings"

// DefaultKeypadLayout 电话九宫格布局：2=ABC 3=DEF 4=GHI 5=JKL 6=MNO 7=PQRS 8=TUV 9=WXYZ
func DefaultKeypadLayout() map[rune]byte {
	groups := []string{"ABC", "DEF", "GHI", "JKL", "MNO", "PQRS", "TUV", "WXYZ"}
	layout := make(map[rune]byte, 26)
	for i, letters := range groups {
		for _, l := range letters {
			layout[l] = byte('2' + i)
		}
	}
	return layout
}

// KeypadEncoder 缩写到按键数字的编码器
type KeypadEncoder struct {
	layout map[rune]byte
}

// NewKeypadEncoder 创建编码器，layout 为 nil 时使用默认布局
func NewKeypadEncoder(layout map[rune]byte) *KeypadEncoder {
	if layout == nil {
		layout = DefaultKeypadLayout()
	}
	return &KeypadEncoder{layout: layout}
}

// Encode 字母转为按键数字，数字原样输出，其他字符丢弃
func (k *KeypadEncoder) Encode(abbreviation string) string {
	var b strings.Builder
	b.Grow(len(abbreviation))
	for _, c := range abbreviation {
		if isDigit(c) {
			b.WriteRune(c)
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if d, ok := k.layout[c]; ok {
			b.WriteByte(d)
		}
	}
	return b.String()
}
