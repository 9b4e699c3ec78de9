package config

// AssemblyConfig 上下文组装配置
type AssemblyConfig struct {
	// Threshold 相关性得分下限
	// 默认: 0.6, 范围: [0, 1]
	Threshold float64 `koanf:"threshold"`
	// MaxChunks 最终上下文的最大块数
	// 默认: 10
	MaxChunks int `koanf:"max_chunks"`
	// MaxTokens 上下文 Token 预算
	// 默认: 4000
	MaxTokens int `koanf:"max_tokens"`
	// MinChunkLength 块文本最小字符数
	// 默认: 20
	MinChunkLength int `koanf:"min_chunk_length"`
	// SimilarityThreshold 去重的 Jaccard 相似度阈值
	// 默认: 0.8, 范围: (0, 1]
	SimilarityThreshold float64 `koanf:"similarity_threshold"`
	// MaxPerDocument 每个文档最多保留的块数
	// 默认: 3
	MaxPerDocument int `koanf:"max_per_document"`
	// MinDocuments 多样化阶段的目标文档数
	// 默认: 3
	MinDocuments int `koanf:"min_documents"`
	// SemanticWeight 混合检索中语义得分的权重
	// 默认: 0.7
	SemanticWeight float64 `koanf:"semantic_weight"`
	// KeywordWeight 混合检索中关键词得分的权重
	// 默认: 0.3
	KeywordWeight float64 `koanf:"keyword_weight"`
	// IncludeSources 是否在结果中包含来源列表
	// 默认: true
	IncludeSources *bool `koanf:"include_sources"`
	// Dedupe 是否启用去重
	// 默认: true
	Dedupe *bool `koanf:"dedupe"`
	// BudgetProfile 默认预算档位（模型名）
	// 默认: "gpt-4o-mini"
	BudgetProfile string `koanf:"budget_profile"`
}

// Validate 验证组装配置
func (c *AssemblyConfig) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return ErrInvalidThreshold
	}
	if c.MaxChunks < 1 {
		return ErrInvalidMaxChunks
	}
	if c.MaxTokens < 1 {
		return ErrInvalidMaxTokens
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return ErrInvalidSimilarity
	}
	if c.SemanticWeight < 0 || c.KeywordWeight < 0 {
		return ErrInvalidWeights
	}
	return nil
}

// WithDefaults 返回带默认值的配置
func (c AssemblyConfig) WithDefaults() AssemblyConfig {
	if c.Threshold == 0 {
		c.Threshold = 0.6
	}
	if c.MaxChunks == 0 {
		c.MaxChunks = 10
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 4000
	}
	if c.MinChunkLength == 0 {
		c.MinChunkLength = 20
	}
	if c.SimilarityThreshold == 0 {
		c.SimilarityThreshold = 0.8
	}
	if c.MaxPerDocument == 0 {
		c.MaxPerDocument = 3
	}
	if c.MinDocuments == 0 {
		c.MinDocuments = 3
	}
	if c.SemanticWeight == 0 && c.KeywordWeight == 0 {
		c.SemanticWeight = 0.7
		c.KeywordWeight = 0.3
	}
	if c.IncludeSources == nil {
		v := true
		c.IncludeSources = &v
	}
	if c.Dedupe == nil {
		v := true
		c.Dedupe = &v
	}
	if c.BudgetProfile == "" {
		c.BudgetProfile = "gpt-4o-mini"
	}
	return c
}
