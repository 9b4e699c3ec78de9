package rag

import (
	"context"
	"time"

	"github.com/brandquill/ragcontext/pkg/otel"
)

// TracedProvider 为检索提供者附加追踪与指标的装饰器。
//
// 每次检索生成一个 span，记录候选数量与耗时，失败时标记错误状态。
// 被包装的提供者无需感知可观测性。
type TracedProvider struct {
	provider SearchProvider
	tracer   otel.Tracer
	metrics  otel.Metrics
	name     string
}

// TracedProviderOption 配置 TracedProvider
type TracedProviderOption func(*TracedProvider)

// WithTracedProviderTracer 设置追踪器
func WithTracedProviderTracer(tracer otel.Tracer) TracedProviderOption {
	return func(p *TracedProvider) {
		p.tracer = tracer
	}
}

// WithTracedProviderMetrics 设置指标收集器
func WithTracedProviderMetrics(metrics otel.Metrics) TracedProviderOption {
	return func(p *TracedProvider) {
		p.metrics = metrics
	}
}

// WithTracedProviderName 设置提供者名称（用于指标属性）
func WithTracedProviderName(name string) TracedProviderOption {
	return func(p *TracedProvider) {
		p.name = name
	}
}

// NewTracedProvider 创建带追踪的检索提供者
func NewTracedProvider(provider SearchProvider, opts ...TracedProviderOption) *TracedProvider {
	tp := &TracedProvider{
		provider: provider,
		tracer:   otel.NewNoopTracer(),
		metrics:  otel.NewNoopMetrics(),
		name:     "provider",
	}

	for _, opt := range opts {
		opt(tp)
	}

	return tp
}

// Search 执行检索并记录追踪与指标
func (p *TracedProvider) Search(ctx context.Context, userID, query string, opts SearchOptions) ([]SearchHit, error) {
	ctx, span := p.tracer.Start(ctx, "ragcontext.search",
		otel.WithAttributes(
			otel.QueryLength(len(query)),
		),
	)
	defer span.End()

	start := time.Now()
	hits, err := p.provider.Search(ctx, userID, query, opts)
	duration := time.Since(start)

	p.metrics.Counter(otel.MetricSearchTotal).Add(ctx, 1,
		otel.NewAttr("provider", p.name),
	)
	p.metrics.Histogram(otel.MetricSearchDuration).Record(ctx, float64(duration.Milliseconds()),
		otel.NewAttr("provider", p.name),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otel.StatusError, err.Error())
		p.metrics.Counter(otel.MetricSearchFailures).Add(ctx, 1,
			otel.NewAttr("provider", p.name),
		)
		return nil, err
	}

	span.SetAttributes(otel.Candidates(len(hits)))
	span.SetStatus(otel.StatusOK, "")
	return hits, nil
}

// compile-time interface check
var _ SearchProvider = (*TracedProvider)(nil)
