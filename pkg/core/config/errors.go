package config

import "errors"

// 配置验证相关错误
var (
	// ErrInvalidThreshold 相关性阈值无效
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")
	// ErrInvalidMaxChunks 块数上限无效
	ErrInvalidMaxChunks = errors.New("max chunks must be positive")
	// ErrInvalidMaxTokens Token 预算无效
	ErrInvalidMaxTokens = errors.New("max tokens must be positive")
	// ErrInvalidSimilarity 相似度阈值无效
	ErrInvalidSimilarity = errors.New("similarity threshold must be in (0, 1]")
	// ErrInvalidWeights 混合检索权重无效
	ErrInvalidWeights = errors.New("search weights must be non-negative")
)
