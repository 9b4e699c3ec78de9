// Package rag 提供检索上下文组装（RAG context assembly）功能
package rag

import (
	"sort"

	"github.com/brandquill/ragcontext/pkg/budget"
)

// Category 知识块类别
type Category string

const (
	// CategoryGeneral 通用内容
	CategoryGeneral Category = "general"
	// CategoryProducts 产品信息
	CategoryProducts Category = "products"
	// CategoryOffers 优惠与活动
	CategoryOffers Category = "offers"
	// CategoryBrand 品牌信息
	CategoryBrand Category = "brand"
	// CategoryAudience 受众画像
	CategoryAudience Category = "audience"
	// CategoryCompetitors 竞品信息
	CategoryCompetitors Category = "competitors"
	// CategoryContent 内容素材
	CategoryContent Category = "content"
)

// Categories 返回所有合法类别。
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryProducts,
		CategoryOffers,
		CategoryBrand,
		CategoryAudience,
		CategoryCompetitors,
		CategoryContent,
	}
}

// IsValid 返回类别是否合法。
func (c Category) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryProducts, CategoryOffers, CategoryBrand,
		CategoryAudience, CategoryCompetitors, CategoryContent:
		return true
	default:
		return false
	}
}

// Chunk 一个被检索到的文本块
//
// 批处理不变式：进入过滤/打包前，同一批块按 Score 降序排列；
// 除显式重排（如类别加权后）外，下游各阶段保持该顺序。
type Chunk struct {
	// Text 块的文本内容
	Text string `json:"text"`
	// DocumentID 所属文档 ID（同一用户内唯一）
	DocumentID int64 `json:"document_id"`
	// DocumentTitle 所属文档的显示名称
	DocumentTitle string `json:"document_title"`
	// ChunkIndex 块在文档中的位置（从 0 开始）
	ChunkIndex int `json:"chunk_index"`
	// Score 相关性分数 (0-1)，越高越相关
	Score float64 `json:"score"`
	// Category 块的类别
	Category Category `json:"category"`
	// StartPosition 在原文档中的起始字符偏移（可选）
	StartPosition *int `json:"start_position,omitempty"`
	// EndPosition 在原文档中的结束字符偏移（可选）
	EndPosition *int `json:"end_position,omitempty"`
	// EstimatedTokens 预计算的 Token 数缓存；0 表示未设置
	EstimatedTokens int `json:"estimated_tokens,omitempty"`
}

// Tokens 返回块的 Token 数。
// 优先使用 EstimatedTokens 缓存，否则用计数器现算。
func (c Chunk) Tokens(counter budget.TokenCounter) int {
	if c.EstimatedTokens > 0 {
		return c.EstimatedTokens
	}
	return counter.Count(c.Text)
}

// Source 按文档聚合的来源引用
//
// 每次组装调用临时生成，本子系统不持久化。
type Source struct {
	// ID 文档 ID
	ID int64 `json:"id"`
	// Title 文档标题
	Title string `json:"title"`
	// Category 文档类别
	Category Category `json:"category"`
	// Score 贡献块中的最高分数
	Score float64 `json:"score"`
	// ChunkCount 贡献块数量
	ChunkCount int `json:"chunk_count"`
}

// ContextResult 一次组装调用的完整输出
type ContextResult struct {
	// Context 格式化后的上下文字符串
	Context string `json:"context"`
	// Sources 来源列表（按分数降序）
	Sources []Source `json:"sources"`
	// TokensUsed Context 的估算 Token 数
	TokensUsed int `json:"tokens_used"`
	// ChunksIncluded 最终选中的块数量
	ChunksIncluded int `json:"chunks_included"`
	// Truncated 预算是否截断了可用块
	Truncated bool `json:"truncated"`
}

// sortByScore 返回按分数降序排列的副本。
// 稳定排序：同分块保持输入相对顺序。
func sortByScore(chunks []Chunk) []Chunk {
	sorted := make([]Chunk, len(chunks))
	copy(sorted, chunks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}
