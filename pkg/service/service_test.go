package service

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yleoer/abbr/pkg/abbr"
	"github.com/yleoer/abbr/pkg/database"
)

type memoryStore struct {
	phrases []database.Phrase
	err     error
}

func (m *memoryStore) AddPhrase(phrase, abbreviation string) error {
	m.phrases = append(m.phrases, database.Phrase{Phrase: phrase, Abbreviation: abbreviation})
	return nil
}

func (m *memoryStore) RemovePhrase(phrase string) (bool, error) { return false, nil }

func (m *memoryStore) ListPhrases() ([]database.Phrase, error) { return m.phrases, m.err }

func (m *memoryStore) Close() error { return nil }

type replaceSimplifier map[string]string

func (r replaceSimplifier) Simplify(text string) string {
	for from, to := range r {
		text = strings.ReplaceAll(text, from, to)
	}
	return text
}

var readings = abbr.TranscriberFunc(func(r rune) []string {
	switch r {
	case '号':
		return []string{"hào"}
	case '北':
		return []string{"běi"}
	case '京':
		return []string{"jīng"}
	}
	return nil
})

func newTestLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestServiceConvert(t *testing.T) {
	s, err := New(readings, nil, nil, newTestLogger())
	require.NoError(t, err)

	res, err := s.Convert("重庆1号", true)
	require.NoError(t, err)
	assert.Equal(t, abbr.Result{Abbreviation: "CQ1H", Original: "重庆1号", KeypadDigits: "2714"}, res)

	res, err = s.Convert("重庆1号", false)
	require.NoError(t, err)
	assert.Empty(t, res.KeypadDigits)

	_, err = s.Convert("", false)
	assert.True(t, errors.Is(err, abbr.ErrEmptyInput))
}

func TestServiceSimplifiesButKeepsOriginal(t *testing.T) {
	s, err := New(readings, replaceSimplifier{"慶": "庆"}, nil, newTestLogger())
	require.NoError(t, err)

	res, err := s.Convert("重慶1号", false)
	require.NoError(t, err)
	assert.Equal(t, "CQ1H", res.Abbreviation)
	assert.Equal(t, "重慶1号", res.Original)
}

func TestServiceCustomPhrasesOverrideBuiltin(t *testing.T) {
	store := &memoryStore{}
	s, err := New(readings, nil, store, newTestLogger())
	require.NoError(t, err)

	res, err := s.Convert("重庆北京", false)
	require.NoError(t, err)
	assert.Equal(t, "CQBJ", res.Abbreviation)

	require.NoError(t, store.AddPhrase("重庆", "ZQ"))
	require.NoError(t, store.AddPhrase("北京", "PK"))
	require.NoError(t, s.Reload())

	res, err = s.Convert("重庆北京", false)
	require.NoError(t, err)
	assert.Equal(t, "ZQPK", res.Abbreviation)
}

func TestServiceReloadKeepsEngineOnError(t *testing.T) {
	store := &memoryStore{phrases: []database.Phrase{{Phrase: "北京", Abbreviation: "PK"}}}
	s, err := New(readings, nil, store, newTestLogger())
	require.NoError(t, err)
	before := s.Engine()

	store.err = assert.AnError
	assert.ErrorIs(t, s.Reload(), assert.AnError)
	assert.Same(t, before, s.Engine())

	store.err = nil
	store.phrases = append(store.phrases, database.Phrase{Phrase: "上海", Abbreviation: "sh"})
	assert.Error(t, s.Reload())
	assert.Same(t, before, s.Engine())

	res, err := s.Convert("北京", false)
	require.NoError(t, err)
	assert.Equal(t, "PK", res.Abbreviation)
}

func TestNewFailsWhenStoreFails(t *testing.T) {
	_, err := New(readings, nil, &memoryStore{err: assert.AnError}, newTestLogger())
	assert.Error(t, err)
}

func TestServiceSimplifiesStoredPhrases(t *testing.T) {
	store := &memoryStore{phrases: []database.Phrase{{Phrase: "長沙", Abbreviation: "XX"}}}
	s, err := New(readings, replaceSimplifier{"長": "长"}, store, newTestLogger())
	require.NoError(t, err)

	res, err := s.Convert("長沙", false)
	require.NoError(t, err)
	assert.Equal(t, "XX", res.Abbreviation)
	assert.Equal(t, "長沙", res.Original)

	res, err = s.Convert("长沙", false)
	require.NoError(t, err)
	assert.Equal(t, "XX", res.Abbreviation)
}

func TestServiceSpecialCasesOptionCannotReplaceMergedTable(t *testing.T) {
	empty, err := abbr.NewSpecialCaseTable(nil)
	require.NoError(t, err)
	store := &memoryStore{phrases: []database.Phrase{{Phrase: "北京", Abbreviation: "PK"}}}
	s, err := New(readings, nil, store, newTestLogger(), abbr.WithSpecialCases(empty))
	require.NoError(t, err)

	res, err := s.Convert("北京重庆", false)
	require.NoError(t, err)
	assert.Equal(t, "PKCQ", res.Abbreviation)
}

func TestServiceEngineOptions(t *testing.T) {
	s, err := New(readings, nil, nil, newTestLogger(), abbr.WithKeypadLayout(map[rune]byte{'C': '0'}))
	require.NoError(t, err)
	res, err := s.Convert("重庆", true)
	require.NoError(t, err)
	assert.Equal(t, "0", res.KeypadDigits)
}
