package converter

// Simplifier 输入文本的繁简转换接口
type Simplifier interface {
	Simplify(text string) string // 将繁体中文转换为简体，无法转换时返回原文
}

// Noop 不做任何转换
type Noop struct{}

func (Noop) Simplify(text string) string { return text }
