package rag

// Options 上下文组装选项
//
// 所有字段都有默认值。每次 Assemble 调用开始时解析一次，
// 之后不可变地传给各阶段，不存在跨调用的共享可变状态。
type Options struct {
	// Categories 类别过滤；非空时只检索这些类别
	Categories []Category
	// DocumentIDs 文档过滤；非空时只在这些文档内检索
	DocumentIDs []int64
	// Threshold 最低相关性分数
	Threshold float64
	// MaxChunks 最终上下文包含的最大块数
	MaxChunks int
	// MaxTokens 上下文的 Token 预算
	MaxTokens int
	// IncludeSources 是否生成来源引用列表
	IncludeSources bool
	// Hybrid 是否使用混合检索（语义 + 关键词）
	Hybrid bool
	// SemanticWeight 混合检索时语义通道权重
	SemanticWeight float64
	// KeywordWeight 混合检索时关键词通道权重
	KeywordWeight float64
	// MinChunkLength 过滤掉短于此长度（字符数）的块
	MinChunkLength int
	// CategoryBoosts 类别加权（类别 -> 乘数）
	CategoryBoosts map[Category]float64
	// Dedupe 是否去除近似重复块
	Dedupe bool
	// SimilarityThreshold 近似重复判定的 Jaccard 相似度阈值
	SimilarityThreshold float64
}

// DefaultOptions 返回默认组装选项。
func DefaultOptions() Options {
	return Options{
		Threshold:           0.6,
		MaxChunks:           10,
		MaxTokens:           4000,
		IncludeSources:      true,
		SemanticWeight:      0.7,
		KeywordWeight:       0.3,
		MinChunkLength:      20,
		Dedupe:              true,
		SimilarityThreshold: 0.8,
	}
}

// Option 组装选项函数
type Option func(*Options)

// WithCategories 设置类别过滤。
func WithCategories(categories ...Category) Option {
	return func(o *Options) {
		o.Categories = categories
	}
}

// WithDocumentIDs 设置文档过滤。
func WithDocumentIDs(ids ...int64) Option {
	return func(o *Options) {
		o.DocumentIDs = ids
	}
}

// WithThreshold 设置最低相关性分数。
func WithThreshold(threshold float64) Option {
	return func(o *Options) {
		o.Threshold = threshold
	}
}

// WithMaxChunks 设置最大块数。
func WithMaxChunks(n int) Option {
	return func(o *Options) {
		o.MaxChunks = n
	}
}

// WithMaxTokens 设置 Token 预算。
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithSources 设置是否生成来源引用。
func WithSources(include bool) Option {
	return func(o *Options) {
		o.IncludeSources = include
	}
}

// WithHybrid 启用混合检索并设置通道权重。
func WithHybrid(semanticWeight, keywordWeight float64) Option {
	return func(o *Options) {
		o.Hybrid = true
		if semanticWeight > 0 {
			o.SemanticWeight = semanticWeight
		}
		if keywordWeight > 0 {
			o.KeywordWeight = keywordWeight
		}
	}
}

// WithMinChunkLength 设置最短块长度。
func WithMinChunkLength(n int) Option {
	return func(o *Options) {
		o.MinChunkLength = n
	}
}

// WithCategoryBoosts 设置类别加权。
func WithCategoryBoosts(boosts map[Category]float64) Option {
	return func(o *Options) {
		o.CategoryBoosts = boosts
	}
}

// WithDedupe 设置是否去重及相似度阈值。
func WithDedupe(enabled bool, similarityThreshold float64) Option {
	return func(o *Options) {
		o.Dedupe = enabled
		if similarityThreshold > 0 {
			o.SimilarityThreshold = similarityThreshold
		}
	}
}

// resolveOptions 应用选项函数，返回本次调用的最终配置。
func resolveOptions(opts []Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
