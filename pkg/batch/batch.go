package batch

import (
	"bufio"
	"io"
	"log"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/yleoer/abbr/pkg/server"
	"github.com/yleoer/abbr/pkg/util"
)

// failedMarker 转换失败的行在输出中的缩写位置
const failedMarker = "!"

// Stats 一次批量转换的统计
type Stats struct {
	Converted int
	Failed    int
	Skipped   int
}

// Converter 负责逐行转换文本文件
type Converter struct {
	converter server.Converter
	keypad    bool
	logger    *log.Logger
}

// NewConverter 创建一个新的批量转换器
func NewConverter(c server.Converter, keypad bool, logger *log.Logger) *Converter {
	return &Converter{converter: c, keypad: keypad, logger: logger}
}

// ConvertFile 读取 UTF-8 或 GBK 编码的文件，按输入顺序写出每一行的转换结果
func (b *Converter) ConvertFile(inPath string, out io.Writer) (Stats, error) {
	text, err := util.ReadTextFile(inPath)
	if err != nil {
		return Stats{}, errors.Wrapf(err, "failed to read input file %s", inPath)
	}
	b.logger.Printf("Converting lines from %s...", inPath)
	return b.ConvertLines(util.Lines(text), out)
}

// ConvertLines 空行跳过；转换失败的行记录日志后输出为 "!|原文" 并继续
func (b *Converter) ConvertLines(lines []string, out io.Writer) (Stats, error) {
	var stats Stats
	w := bufio.NewWriter(out)
	for i, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			stats.Skipped++
			continue
		}
		res, err := b.converter.Convert(text, b.keypad)
		var formatted string
		if err != nil {
			b.logger.Printf("  -> WARN: Line %d %q failed: %v", i+1, text, err)
			stats.Failed++
			formatted = failedMarker + "|" + text
		} else {
			stats.Converted++
			formatted = server.FormatResult(res, b.keypad)
		}
		if _, err := w.WriteString(formatted + "\n"); err != nil {
			return stats, errors.Wrap(err, "failed to write output")
		}
	}
	if err := w.Flush(); err != nil {
		return stats, errors.Wrap(err, "failed to write output")
	}
	b.logger.Printf("Batch finished: %d converted, %d failed, %d blank lines skipped.", stats.Converted, stats.Failed, stats.Skipped)
	return stats, nil
}
