package rag

import (
	"sort"
)

// SourceCiter 将选中的块聚合为去重的来源引用列表。
type SourceCiter struct{}

// NewSourceCiter 创建 SourceCiter。
func NewSourceCiter() *SourceCiter {
	return &SourceCiter{}
}

// Cite 按 DocumentID 分组：每组的分数取贡献块中的最高分，
// ChunkCount 为贡献块数量。输出按分数降序排列。
func (c *SourceCiter) Cite(chunks []Chunk) []Source {
	index := make(map[int64]int, len(chunks))
	sources := make([]Source, 0, len(chunks))

	for _, chunk := range chunks {
		if i, ok := index[chunk.DocumentID]; ok {
			sources[i].ChunkCount++
			if chunk.Score > sources[i].Score {
				sources[i].Score = chunk.Score
			}
			continue
		}

		index[chunk.DocumentID] = len(sources)
		sources = append(sources, Source{
			ID:         chunk.DocumentID,
			Title:      chunk.DocumentTitle,
			Category:   chunk.Category,
			Score:      chunk.Score,
			ChunkCount: 1,
		})
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Score > sources[j].Score
	})

	return sources
}
