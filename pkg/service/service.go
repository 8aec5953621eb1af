package service

import (
	"log"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/yleoer/abbr/pkg/abbr"
	"github.com/yleoer/abbr/pkg/converter"
	"github.com/yleoer/abbr/pkg/database"
)

// Service 持有当前的缩写引擎快照。
// 引擎本身只读；重新加载时构建新引擎并原子替换。
type Service struct {
	transcriber abbr.Transcriber
	simplifier  converter.Simplifier
	store       database.PhraseStore
	opts        []abbr.Option
	logger      *log.Logger
	engine      atomic.Pointer[abbr.Engine]
}

// New 创建服务并加载一次词库。store 为 nil 时只使用内置词库，simplifier 为 nil 时不做繁简转换。
func New(t abbr.Transcriber, simplifier converter.Simplifier, store database.PhraseStore, logger *log.Logger, opts ...abbr.Option) (*Service, error) {
	if simplifier == nil {
		simplifier = converter.Noop{}
	}
	s := &Service{
		transcriber: t,
		simplifier:  simplifier,
		store:       store,
		opts:        opts,
		logger:      logger,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload 合并内置词库与存储中的自定义词条并发布新引擎，失败时保留旧引擎
func (s *Service) Reload() error {
	table := abbr.BuiltinSpecialCases()
	if s.store != nil {
		phrases, err := s.store.ListPhrases()
		if err != nil {
			s.logger.Printf("ERROR: Failed to load custom phrases, keeping current dictionary: %v", err)
			return errors.Wrap(err, "failed to load custom phrases")
		}
		table, err = table.Merge(s.simplifyPhrases(database.PhraseMap(phrases)))
		if err != nil {
			s.logger.Printf("ERROR: Invalid custom phrases, keeping current dictionary: %v", err)
			return errors.Wrap(err, "failed to merge custom phrases")
		}
	}
	// 合并后的词库放在最后，调用方的选项不能替换它
	opts := append(append([]abbr.Option{}, s.opts...), abbr.WithSpecialCases(table))
	s.engine.Store(abbr.NewEngine(s.transcriber, opts...))
	s.logger.Printf("Dictionary loaded with %d special cases.", table.Len())
	return nil
}

// simplifyPhrases 自定义词条使用与输入相同的繁简转换
func (s *Service) simplifyPhrases(phrases map[string]string) map[string]string {
	out := make(map[string]string, len(phrases))
	for phrase, abbreviation := range phrases {
		out[s.simplifier.Simplify(phrase)] = abbreviation
	}
	return out
}

// Engine 当前引擎快照
func (s *Service) Engine() *abbr.Engine {
	return s.engine.Load()
}

// Convert 先做繁简转换再生成缩写，Original 始终为调用方传入的文本
func (s *Service) Convert(text string, keypad bool) (abbr.Result, error) {
	e := s.Engine()
	normalized := s.simplifier.Simplify(text)

	var res abbr.Result
	var err error
	if keypad {
		res, err = e.ConvertWithKeypad(normalized)
	} else {
		res, err = e.Convert(normalized)
	}
	if err != nil {
		return abbr.Result{}, err
	}
	res.Original = text
	return res, nil
}
