package abbr

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrEmptyInput 输入文本为空
var ErrEmptyInput = errors.New("输入内容不能为空")

// UnsupportedCharacterError 表示字符既不在特例词库中，也没有可用的拼音读音
type UnsupportedCharacterError struct {
	Char     rune // 无法处理的字符
	Position int  // 字符在输入中的位置（按 rune 计）
}

func (e *UnsupportedCharacterError) Error() string {
	return fmt.Sprintf("不支持的字符 %q (位置 %d)", e.Char, e.Position)
}
