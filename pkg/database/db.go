package database

import "time"

// Phrase 用户自定义的特例词条
type Phrase struct {
	Phrase       string
	Abbreviation string
	CreatedAt    time.Time
}

// PhraseStore 定义自定义特例词存储接口
type PhraseStore interface {
	AddPhrase(phrase, abbreviation string) error // 新增或覆盖特例词
	RemovePhrase(phrase string) (bool, error)    // 删除特例词，返回是否存在
	ListPhrases() ([]Phrase, error)              // 按词条排序列出所有特例词
	Close() error                                // 关闭数据库连接
}

// PhraseMap 把词条列表转换为 phrase -> abbreviation 映射
func PhraseMap(phrases []Phrase) map[string]string {
	m := make(map[string]string, len(phrases))
	for _, p := range phrases {
		m[p.Phrase] = p.Abbreviation
	}
	return m
}
