package rag

import (
	"fmt"
	"strings"
)

// defaultPromptHeader 默认的指令头。
const defaultPromptHeader = "You are a helpful assistant. Answer the question using only the " +
	"context provided below. If the context does not contain the answer, say so instead of guessing."

// 上下文围栏标记。下游 LLM 调用层原样使用 Build 的输出，
// 标记必须与消费方的解析约定保持一致。
const (
	contextOpenMarker  = "<context>"
	contextCloseMarker = "</context>"
)

// PromptBuilder 将组装好的上下文包装为最终的 LLM 指令模板。
//
// 纯字符串模板，不含任何排序逻辑：指令头、可选的来源引用说明、
// 围栏内的原始上下文、原始查询。
type PromptBuilder struct {
	header string
}

// PromptOption 配置 PromptBuilder。
type PromptOption func(*PromptBuilder)

// WithHeader 设置指令头。
func WithHeader(header string) PromptOption {
	return func(b *PromptBuilder) {
		b.header = header
	}
}

// NewPromptBuilder 创建 PromptBuilder。
func NewPromptBuilder(opts ...PromptOption) *PromptBuilder {
	b := &PromptBuilder{
		header: defaultPromptHeader,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build 构建最终提示。
func (b *PromptBuilder) Build(contextStr, query string, sources []Source) string {
	var sb strings.Builder

	sb.WriteString(b.header)
	sb.WriteString("\n\n")

	if len(sources) > 0 {
		fmt.Fprintf(&sb, "When answering, cite these %d sources where relevant:\n", len(sources))
		for i, source := range sources {
			fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, source.Title, source.Category)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(contextOpenMarker)
	sb.WriteString("\n")
	sb.WriteString(contextStr)
	sb.WriteString("\n")
	sb.WriteString(contextCloseMarker)
	sb.WriteString("\n\n")

	sb.WriteString("Question: ")
	sb.WriteString(query)

	return sb.String()
}
