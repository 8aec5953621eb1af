package transcriber

import (
	"github.com/mozillazg/go-pinyin"
)

// Pinyin 基于 go-pinyin 内置字典的本地拼音查询
type Pinyin struct {
	args pinyin.Args
}

// NewPinyin 创建本地拼音查询，返回带声调的完整拼音并启用多音字模式
func NewPinyin() *Pinyin {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone
	args.Heteronym = true
	return &Pinyin{args: args}
}

// Readings 返回字符的全部候选读音，顺序与字典一致；非汉字返回空
func (p *Pinyin) Readings(r rune) []string {
	if r <= 0x7f {
		return nil
	}
	return pinyin.SinglePinyin(r, p.args)
}
