package rag

// PerDocumentLimiter 限制每个来源文档保留的块数量。
type PerDocumentLimiter struct{}

// NewPerDocumentLimiter 创建 PerDocumentLimiter。
func NewPerDocumentLimiter() *PerDocumentLimiter {
	return &PerDocumentLimiter{}
}

// Limit 每个文档最多保留 maxPerDocument 个块。
//
// 输入必须已按分数降序排列：按 DocumentID 分组后每个文档保留
// 分数顺序中最先遇到的 maxPerDocument 个块。输出保持输入的
// 相对顺序（文档按首次出现的顺序，文档内按分数顺序）。
// maxPerDocument <= 0 表示不限制。
func (l *PerDocumentLimiter) Limit(chunks []Chunk, maxPerDocument int) []Chunk {
	if maxPerDocument <= 0 {
		result := make([]Chunk, len(chunks))
		copy(result, chunks)
		return result
	}

	counts := make(map[int64]int, len(chunks))
	result := make([]Chunk, 0, len(chunks))

	for _, chunk := range chunks {
		if counts[chunk.DocumentID] >= maxPerDocument {
			continue
		}
		counts[chunk.DocumentID]++
		result = append(result, chunk)
	}

	return result
}
