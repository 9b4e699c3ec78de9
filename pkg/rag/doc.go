// Package rag 为 LLM 提示组装有 Token 上限、按相关性排序、
// 无近似重复的检索上下文切片。
//
// 组装流水线按固定顺序执行：
//
//   - SearchProvider：调用上游检索引擎获取候选块（语义或混合）
//   - RelevanceFilter：按分数/长度/类别过滤，应用可选类别加权
//   - PerDocumentLimiter：限制每个文档的块数
//   - Deduplicator：按词集 Jaccard 相似度去除近似重复
//   - Diversifier：保证覆盖足够多的来源文档
//   - BudgetPacker：在 Token 预算内贪心选取
//   - SourceCiter：聚合去重的来源引用列表
//
// 嵌入计算、向量索引和 LLM 调用均不属于本包：检索引擎只以
// SearchProvider 接口出现，PromptBuilder 的输出由调用方自行
// 交给 LLM 层。
//
// # 基本用法
//
//	assembler, err := rag.NewContextAssembler(provider)
//	if err != nil {
//	    return err
//	}
//
//	result, err := assembler.Assemble(ctx, userID, "主打产品有哪些卖点？",
//	    rag.WithThreshold(0.65),
//	    rag.WithMaxTokens(4000),
//	)
//
// result.Context 是可直接注入提示的上下文字符串，
// result.Sources 是按分数排序的来源引用。
//
// # 混合检索
//
// 配置关键词通道后可启用混合检索：
//
//	assembler, err := rag.NewContextAssembler(semanticProvider,
//	    rag.WithKeywordProvider(keywordProvider),
//	)
//	result, err := assembler.Assemble(ctx, userID, query,
//	    rag.WithHybrid(0.7, 0.3),
//	)
//
// # 提示构建
//
//	prompt := rag.NewPromptBuilder().Build(result.Context, query, result.Sources)
package rag
