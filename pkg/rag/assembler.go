package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brandquill/ragcontext/pkg/budget"
	"github.com/brandquill/ragcontext/pkg/core/errors"
	"github.com/brandquill/ragcontext/pkg/otel"
)

// ChunkSeparator 上下文中块与块之间的分隔符。
const ChunkSeparator = "\n\n---\n\n"

// DefaultMaxPerDocument 每个文档默认保留的最大块数。
const DefaultMaxPerDocument = 3

// DefaultMinDocuments 多样化阶段默认的目标文档数。
const DefaultMinDocuments = 3

// ContextAssembler 上下文组装器。
//
// 将上游检索结果依次经过相关性过滤、逐文档限额、去重、
// 多样化和预算打包，产出可引用的上下文字符串与来源列表。
// 除检索调用外全部为纯内存同步变换，调用间无共享可变状态。
type ContextAssembler struct {
	provider SearchProvider
	keyword  SearchProvider

	counter     budget.TokenCounter
	planner     *budget.Planner
	filter      *RelevanceFilter
	limiter     *PerDocumentLimiter
	dedupe      *Deduplicator
	diversifier *Diversifier
	packer      *BudgetPacker
	citer       *SourceCiter

	tracer  otel.Tracer
	metrics otel.Metrics

	maxPerDocument int
	minDocuments   int
}

// AssemblerOption 配置 ContextAssembler。
type AssemblerOption func(*ContextAssembler)

// WithKeywordProvider 设置混合检索的关键词通道。
// 未设置时 Hybrid 选项退化为纯语义检索。
func WithKeywordProvider(keyword SearchProvider) AssemblerOption {
	return func(a *ContextAssembler) {
		a.keyword = keyword
	}
}

// WithTokenCounter 设置 Token 计数器。
func WithTokenCounter(counter budget.TokenCounter) AssemblerOption {
	return func(a *ContextAssembler) {
		a.counter = counter
	}
}

// WithPlanner 设置预算规划器。
func WithPlanner(planner *budget.Planner) AssemblerOption {
	return func(a *ContextAssembler) {
		a.planner = planner
	}
}

// WithMaxPerDocument 设置每个文档保留的最大块数。
func WithMaxPerDocument(n int) AssemblerOption {
	return func(a *ContextAssembler) {
		a.maxPerDocument = n
	}
}

// WithMinDocuments 设置多样化阶段的目标文档数。
func WithMinDocuments(n int) AssemblerOption {
	return func(a *ContextAssembler) {
		a.minDocuments = n
	}
}

// WithTracer 设置追踪器。
func WithTracer(tracer otel.Tracer) AssemblerOption {
	return func(a *ContextAssembler) {
		a.tracer = tracer
	}
}

// WithMetrics 设置指标收集器。
func WithMetrics(metrics otel.Metrics) AssemblerOption {
	return func(a *ContextAssembler) {
		a.metrics = metrics
	}
}

// NewContextAssembler 创建 ContextAssembler。
func NewContextAssembler(provider SearchProvider, opts ...AssemblerOption) (*ContextAssembler, error) {
	if provider == nil {
		return nil, errors.ErrProviderRequired
	}

	a := &ContextAssembler{
		provider:       provider,
		counter:        budget.DefaultTokenCounter(),
		planner:        budget.NewPlanner(),
		filter:         NewRelevanceFilter(),
		limiter:        NewPerDocumentLimiter(),
		dedupe:         NewDeduplicator(),
		diversifier:    NewDiversifier(),
		citer:          NewSourceCiter(),
		tracer:         otel.NewNoopTracer(),
		metrics:        otel.NewNoopMetrics(),
		maxPerDocument: DefaultMaxPerDocument,
		minDocuments:   DefaultMinDocuments,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.packer = NewBudgetPacker(a.counter)

	return a, nil
}

// Assemble 为查询组装上下文。
//
// 流水线按固定顺序执行：检索（请求 2 倍 MaxChunks 的候选）->
// 相关性过滤 -> 逐文档限额 -> 去重 -> 多样化 -> 扣除格式化开销 ->
// 预算打包 -> 格式化 -> 来源引用。
//
// 检索结果为空时直接返回空结果（不是错误）；检索失败原样向
// 调用方传播，重试策略由调用方负责。
func (a *ContextAssembler) Assemble(ctx context.Context, userID, query string, opts ...Option) (*ContextResult, error) {
	options := resolveOptions(opts)
	requestID := uuid.New().String()
	start := time.Now()

	ctx, span := a.tracer.Start(ctx, "ragcontext.assemble",
		otel.WithAttributes(
			otel.RequestID(requestID),
			otel.QueryLength(len(query)),
			otel.Hybrid(options.Hybrid),
		),
	)
	defer span.End()

	hits, err := a.search(ctx, userID, query, options)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otel.StatusError, "search failed")
		a.metrics.Counter(otel.MetricSearchFailures).Add(ctx, 1)
		return nil, fmt.Errorf("search provider: %w", err)
	}

	if len(hits) == 0 {
		span.AddEvent("no candidates")
		return emptyResult(), nil
	}

	chunks := a.chunksFromHits(hits)
	chunks = sortByScore(chunks)

	chunks = a.filter.Filter(chunks, FilterOptions{
		MinScore:       options.Threshold,
		MinChunkLength: options.MinChunkLength,
		Categories:     options.Categories,
		CategoryBoosts: options.CategoryBoosts,
	})
	chunks = a.limiter.Limit(chunks, a.maxPerDocument)
	if options.Dedupe {
		chunks = a.dedupe.Deduplicate(chunks, options.SimilarityThreshold)
	}

	minDocs := a.minDocuments
	if len(chunks) < minDocs {
		minDocs = len(chunks)
	}
	available := a.diversifier.Diversify(chunks, minDocs)

	capped := available
	if options.MaxChunks > 0 && len(capped) > options.MaxChunks {
		capped = capped[:options.MaxChunks]
	}

	overhead := budget.EstimateOverhead(len(capped), options.IncludeSources)
	ceiling := options.MaxTokens - overhead
	if ceiling < 0 {
		ceiling = 0
	}

	packed, _ := a.packer.Pack(capped, ceiling)

	contextStr := formatContext(packed)
	result := &ContextResult{
		Context:        contextStr,
		Sources:        []Source{},
		TokensUsed:     a.counter.Count(contextStr),
		ChunksIncluded: len(packed),
		Truncated:      len(packed) < len(available),
	}
	if options.IncludeSources && len(packed) > 0 {
		result.Sources = a.citer.Cite(packed)
	}

	span.SetAttributes(
		otel.Candidates(len(hits)),
		otel.ChunksIncluded(result.ChunksIncluded),
		otel.TokensUsed(result.TokensUsed),
		otel.Truncated(result.Truncated),
	)
	a.metrics.Histogram(otel.MetricAssemblyDuration).Record(ctx, float64(time.Since(start).Milliseconds()))
	a.metrics.Histogram(otel.MetricAssemblyTokens).Record(ctx, float64(result.TokensUsed))
	a.metrics.Counter(otel.MetricAssemblyTotal).Add(ctx, 1)
	if result.Truncated {
		a.metrics.Counter(otel.MetricAssemblyTruncated).Add(ctx, 1)
	}

	return result, nil
}

// AssembleForProfile 按命名预算档位组装上下文。
//
// 将档位解析出的可用上下文 Token 数作为 MaxTokens；
// 配置错误（可用数 <= 0）时产生零结果而非报错。
func (a *ContextAssembler) AssembleForProfile(ctx context.Context, userID, query, profile string, opts ...Option) (*ContextResult, error) {
	b := a.planner.Resolve(profile, 0)
	available := budget.Available(b)
	if available < 0 {
		available = 0
	}

	opts = append(opts, WithMaxTokens(available))
	return a.Assemble(ctx, userID, query, opts...)
}

// search 按选项选择检索通道并执行检索。
func (a *ContextAssembler) search(ctx context.Context, userID, query string, options Options) ([]SearchHit, error) {
	provider := a.provider
	if options.Hybrid && a.keyword != nil {
		provider = NewHybridProvider(a.provider, a.keyword)
	}

	return provider.Search(ctx, userID, query, SearchOptions{
		Limit:          options.MaxChunks * 2,
		Threshold:      options.Threshold,
		Categories:     options.Categories,
		DocumentIDs:    options.DocumentIDs,
		SemanticWeight: options.SemanticWeight,
		KeywordWeight:  options.KeywordWeight,
	})
}

// chunksFromHits 将检索命中转换为块记录，并附加 Token 数缓存。
// 多余或缺失的字段在这一边界处理，下游只看到固定字段集。
func (a *ContextAssembler) chunksFromHits(hits []SearchHit) []Chunk {
	chunks := make([]Chunk, len(hits))
	for i, hit := range hits {
		category := hit.Category
		if !category.IsValid() {
			category = CategoryGeneral
		}
		chunks[i] = Chunk{
			Text:            hit.Text,
			DocumentID:      hit.DocumentID,
			DocumentTitle:   hit.DocumentTitle,
			ChunkIndex:      hit.ChunkIndex,
			Score:           hit.Score,
			Category:        category,
			StartPosition:   hit.StartPosition,
			EndPosition:     hit.EndPosition,
			EstimatedTokens: a.counter.Count(hit.Text),
		}
	}
	return chunks
}

// formatContext 将块格式化为最终上下文字符串。
// 每个块带 [标题 (类别)] 前缀，块之间用固定分隔符连接。
func formatContext(chunks []Chunk) string {
	if len(chunks) == 0 {
		return ""
	}

	blocks := make([]string, len(chunks))
	for i, chunk := range chunks {
		blocks[i] = fmt.Sprintf("[%s (%s)]\n%s", chunk.DocumentTitle, chunk.Category, chunk.Text)
	}

	return strings.Join(blocks, ChunkSeparator)
}

// emptyResult 返回空的组装结果。
func emptyResult() *ContextResult {
	return &ContextResult{
		Context:        "",
		Sources:        []Source{},
		TokensUsed:     0,
		ChunksIncluded: 0,
		Truncated:      false,
	}
}
