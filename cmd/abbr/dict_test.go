package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPhraseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.txt")
	require.NoError(t, os.WriteFile(path, []byte("# 自定义\n北京 bj\n\n上海\tSH\n"), 0644))

	entries, err := readPhraseFile(path)
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"北京", "BJ"}, {"上海", "SH"}}, entries)
}

func TestReadPhraseFileInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"fields.txt": "北京\n",
		"long.txt":   "中华人民共和国 ZHRMGHG\n",
		"abbr.txt":   "北京 B-J\n",
	}
	for name, content := range tests {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		_, err := readPhraseFile(path)
		assert.Error(t, err, name)
	}
}
