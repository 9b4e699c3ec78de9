package rag

import (
	"context"
	"sort"
)

// SearchHit 上游检索引擎返回的单条命中
//
// 由嵌入/检索子系统提供，已按相关性降序排列。
type SearchHit struct {
	// Text 命中的文本内容
	Text string `json:"text"`
	// DocumentID 所属文档 ID
	DocumentID int64 `json:"document_id"`
	// DocumentTitle 所属文档标题
	DocumentTitle string `json:"document_title"`
	// ChunkIndex 块在文档中的位置
	ChunkIndex int `json:"chunk_index"`
	// Score 相关性分数 (0-1)
	Score float64 `json:"score"`
	// Category 块类别
	Category Category `json:"category"`
	// StartPosition 起始字符偏移（可选）
	StartPosition *int `json:"start_position,omitempty"`
	// EndPosition 结束字符偏移（可选）
	EndPosition *int `json:"end_position,omitempty"`
}

// SearchOptions 检索选项
type SearchOptions struct {
	// Limit 返回的最大命中数
	Limit int
	// Threshold 最低相关性分数
	Threshold float64
	// Categories 类别过滤；非空时只返回这些类别
	Categories []Category
	// DocumentIDs 文档过滤；非空时只在这些文档内检索
	DocumentIDs []int64
	// SemanticWeight 混合检索时语义通道的权重
	SemanticWeight float64
	// KeywordWeight 混合检索时关键词通道的权重
	KeywordWeight float64
}

// SearchProvider 上游检索引擎的接口契约。
//
// 嵌入计算和向量索引不属于本子系统；组装管道只依赖这一接口。
// 实现必须返回按分数降序排列的命中，且调用失败时原样返回错误
// （本子系统不重试也不吞掉检索错误）。
type SearchProvider interface {
	// Search 检索与查询相关的块
	Search(ctx context.Context, userID, query string, opts SearchOptions) ([]SearchHit, error)
}

// StaticProvider 内存中的静态检索提供者（用于测试和示例）。
//
// 直接持有预先打分的命中，按选项过滤后返回。
type StaticProvider struct {
	hits []SearchHit
}

// NewStaticProvider 创建 StaticProvider。
func NewStaticProvider(hits []SearchHit) *StaticProvider {
	return &StaticProvider{hits: hits}
}

// Search 按选项过滤并返回命中。
func (p *StaticProvider) Search(_ context.Context, _ string, _ string, opts SearchOptions) ([]SearchHit, error) {
	allowed := categorySet(opts.Categories)
	docs := make(map[int64]struct{}, len(opts.DocumentIDs))
	for _, id := range opts.DocumentIDs {
		docs[id] = struct{}{}
	}

	results := make([]SearchHit, 0, len(p.hits))
	for _, hit := range p.hits {
		if hit.Score < opts.Threshold {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[hit.Category]; !ok {
				continue
			}
		}
		if len(docs) > 0 {
			if _, ok := docs[hit.DocumentID]; !ok {
				continue
			}
		}
		results = append(results, hit)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}

// HybridProvider 混合检索提供者。
//
// 将语义通道和关键词通道的结果按权重加权融合：
// 两个通道都命中的块取加权分数之和（上限 1.0），
// 只在单通道命中的块取该通道的加权分数。
type HybridProvider struct {
	semantic SearchProvider
	keyword  SearchProvider
}

// NewHybridProvider 创建 HybridProvider。
func NewHybridProvider(semantic, keyword SearchProvider) *HybridProvider {
	return &HybridProvider{
		semantic: semantic,
		keyword:  keyword,
	}
}

// Search 从两个通道检索并融合结果。
func (p *HybridProvider) Search(ctx context.Context, userID, query string, opts SearchOptions) ([]SearchHit, error) {
	semWeight := opts.SemanticWeight
	kwWeight := opts.KeywordWeight
	if semWeight <= 0 && kwWeight <= 0 {
		semWeight, kwWeight = 0.7, 0.3
	}

	// 通道内不做阈值过滤，融合后的分数才是最终分数
	legOpts := opts
	legOpts.Threshold = 0

	semHits, err := p.semantic.Search(ctx, userID, query, legOpts)
	if err != nil {
		return nil, err
	}

	kwHits, err := p.keyword.Search(ctx, userID, query, legOpts)
	if err != nil {
		return nil, err
	}

	type chunkKey struct {
		documentID int64
		chunkIndex int
	}

	scores := make(map[chunkKey]float64)
	hits := make(map[chunkKey]SearchHit)
	order := make([]chunkKey, 0, len(semHits)+len(kwHits))

	merge := func(legHits []SearchHit, weight float64) {
		for _, hit := range legHits {
			key := chunkKey{documentID: hit.DocumentID, chunkIndex: hit.ChunkIndex}
			if _, ok := hits[key]; !ok {
				hits[key] = hit
				order = append(order, key)
			}
			scores[key] += hit.Score * weight
		}
	}

	merge(semHits, semWeight)
	merge(kwHits, kwWeight)

	results := make([]SearchHit, 0, len(order))
	for _, key := range order {
		hit := hits[key]
		hit.Score = scores[key]
		if hit.Score > 1.0 {
			hit.Score = 1.0
		}
		if hit.Score < opts.Threshold {
			continue
		}
		results = append(results, hit)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}

// 编译时接口检查
var _ SearchProvider = (*StaticProvider)(nil)
var _ SearchProvider = (*HybridProvider)(nil)
