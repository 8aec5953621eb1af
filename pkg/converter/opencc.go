package converter

import (
	"log"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/liuzl/gocc"
)

// openCCSimplifier 是 Simplifier 的 OpenCC 实现
type openCCSimplifier struct {
	converter *gocc.OpenCC
	logger    *log.Logger
}

// NewOpenCCSimplifier 初始化 OpenCC t2s 转换器
func NewOpenCCSimplifier(logger *log.Logger) (Simplifier, error) {
	converter, err := gocc.New("t2s")
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize OpenCC converter")
	}
	logger.Println("OpenCC converter (t2s) initialized.")
	return &openCCSimplifier{converter: converter, logger: logger}, nil
}

// Simplify 繁体转简体。
// 转换失败或转换后字符数变化时返回原文，保证分词位置与原文一一对应。
func (c *openCCSimplifier) Simplify(text string) string {
	out, err := c.converter.Convert(text)
	if err != nil {
		c.logger.Printf("WARN: Failed to convert text '%s' from Traditional to Simplified: %v", text, err)
		return text
	}
	if utf8.RuneCountInString(out) != utf8.RuneCountInString(text) {
		c.logger.Printf("WARN: Simplified text '%s' changed length from '%s', keeping original.", out, text)
		return text
	}
	return out
}
