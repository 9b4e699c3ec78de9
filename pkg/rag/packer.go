package rag

import (
	"github.com/brandquill/ragcontext/pkg/budget"
)

// BudgetPacker 在 Token 预算内贪心选取块。
type BudgetPacker struct {
	counter budget.TokenCounter
}

// NewBudgetPacker 创建 BudgetPacker。
// counter 为 nil 时使用默认的估算计数器。
func NewBudgetPacker(counter budget.TokenCounter) *BudgetPacker {
	if counter == nil {
		counter = budget.DefaultTokenCounter()
	}
	return &BudgetPacker{counter: counter}
}

// Pack 按输入顺序累积块，直到下一个块会超出 maxTokens 为止。
// 返回选中的前缀和是否发生截断（选中数 < 输入数）。
//
// 这是刻意的贪心前缀选择而非背包最优解：排在后面的小块不会
// 回填被大块撑爆的预算。选择保持分数优先的诚实性，
// 而不是 Token 利用率的最优性。
func (p *BudgetPacker) Pack(chunks []Chunk, maxTokens int) ([]Chunk, bool) {
	selected := make([]Chunk, 0, len(chunks))
	used := 0

	for _, chunk := range chunks {
		tokens := chunk.Tokens(p.counter)
		if used+tokens > maxTokens {
			break
		}
		selected = append(selected, chunk)
		used += tokens
	}

	return selected, len(selected) < len(chunks)
}
