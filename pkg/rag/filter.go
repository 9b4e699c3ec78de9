package rag

import (
	"fmt"
)

// FilterOptions 相关性过滤选项
type FilterOptions struct {
	// MinScore 最低相关性分数，低于此值的块被丢弃
	MinScore float64
	// MinChunkLength 最短文本长度（字符数），更短的块被丢弃
	MinChunkLength int
	// Categories 类别白名单；非空时不在其中的块被丢弃
	Categories []Category
	// CategoryBoosts 类别加权（类别 -> 乘数）；加权后分数上限 1.0，
	// 并按新分数重新降序排列
	CategoryBoosts map[Category]float64
}

// RelevanceFilter 按分数、长度和类别过滤块，并应用可选的类别加权。
type RelevanceFilter struct{}

// NewRelevanceFilter 创建 RelevanceFilter。
func NewRelevanceFilter() *RelevanceFilter {
	return &RelevanceFilter{}
}

// Filter 过滤并返回新的块列表，不修改输入。
//
// 应用了 CategoryBoosts 时分数可能改变相对顺序，
// 因此加权后会重新按分数降序排列；下游阶段依赖该排序。
//
// 加权在每次调用时应用一次：对已加权的输出再次 Filter
// 会重复加权（分数上限仍为 1.0）。幂等性仅在未配置
// CategoryBoosts 时成立，流水线中每个请求只过滤一次。
func (f *RelevanceFilter) Filter(chunks []Chunk, opts FilterOptions) []Chunk {
	kept := make([]Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if passed, _ := f.Validate(chunk, opts); !passed {
			continue
		}

		if opts.CategoryBoosts != nil {
			if boost, ok := opts.CategoryBoosts[chunk.Category]; ok {
				chunk.Score = chunk.Score * boost
				if chunk.Score > 1.0 {
					chunk.Score = 1.0
				}
			}
		}

		kept = append(kept, chunk)
	}

	if opts.CategoryBoosts != nil {
		kept = sortByScore(kept)
	}

	return kept
}

// Validate 检查单个块是否通过过滤条件。
//
// 返回第一个未通过的条件，检查顺序固定为
// 分数 -> 长度 -> 类别，保证诊断信息确定。
func (f *RelevanceFilter) Validate(chunk Chunk, opts FilterOptions) (bool, string) {
	if chunk.Score < opts.MinScore {
		return false, fmt.Sprintf("score %.2f below minimum %.2f", chunk.Score, opts.MinScore)
	}

	if len(chunk.Text) < opts.MinChunkLength {
		return false, fmt.Sprintf("length %d below minimum %d", len(chunk.Text), opts.MinChunkLength)
	}

	if len(opts.Categories) > 0 {
		if _, ok := categorySet(opts.Categories)[chunk.Category]; !ok {
			return false, fmt.Sprintf("category %q not in allowed set", chunk.Category)
		}
	}

	return true, ""
}

// categorySet 将类别列表转换为集合。
func categorySet(categories []Category) map[Category]struct{} {
	set := make(map[Category]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	return set
}
