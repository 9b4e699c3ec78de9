package rag_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/brandquill/ragcontext/pkg/budget"
	cerrors "github.com/brandquill/ragcontext/pkg/core/errors"
	"github.com/brandquill/ragcontext/pkg/otel"
	"github.com/brandquill/ragcontext/pkg/rag"
)

// paddedHit builds a hit with a unique leading word and exactly
// 400 characters of text (100 tokens under the 4-char estimator).
func paddedHit(doc int64, title string, score float64) rag.SearchHit {
	word := fmt.Sprintf("keyword%d", doc)
	text := word + " " + strings.Repeat("x", 400-len(word)-1)
	return rag.SearchHit{
		Text:          text,
		DocumentID:    doc,
		DocumentTitle: title,
		ChunkIndex:    0,
		Score:         score,
		Category:      rag.CategoryGeneral,
	}
}

func TestNewContextAssembler_RequiresProvider(t *testing.T) {
	_, err := rag.NewContextAssembler(nil)
	if !errors.Is(err, cerrors.ErrProviderRequired) {
		t.Fatalf("expected ErrProviderRequired, got %v", err)
	}
}

func TestContextAssembler_EmptyResults(t *testing.T) {
	assembler, err := rag.NewContextAssembler(rag.NewStaticProvider(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := assembler.Assemble(context.Background(), "user-1", "anything")
	if err != nil {
		t.Fatalf("empty search results should not be an error, got %v", err)
	}

	if result.Context != "" || result.ChunksIncluded != 0 || result.TokensUsed != 0 {
		t.Fatalf("expected zero-valued result, got %+v", result)
	}
	if result.Truncated {
		t.Fatal("expected no truncation for empty result")
	}
	if result.Sources == nil || len(result.Sources) != 0 {
		t.Fatalf("expected empty non-nil sources, got %v", result.Sources)
	}
}

func TestContextAssembler_Assemble(t *testing.T) {
	provider := rag.NewStaticProvider([]rag.SearchHit{
		paddedHit(1, "Product Catalog", 0.95),
		paddedHit(2, "Brand Guide", 0.90),
		paddedHit(3, "Audience Notes", 0.85),
		paddedHit(4, "Campaign Brief", 0.80),
	})

	assembler, err := rag.NewContextAssembler(provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := assembler.Assemble(context.Background(), "user-1", "what products do we sell")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ChunksIncluded != 4 {
		t.Fatalf("expected all 4 chunks included, got %d", result.ChunksIncluded)
	}
	if result.Truncated {
		t.Fatal("expected no truncation inside the default budget")
	}
	if result.TokensUsed > 4000 {
		t.Fatalf("tokens used %d exceed the 4000 budget", result.TokensUsed)
	}
	if len(result.Sources) != 4 {
		t.Fatalf("expected 4 sources, got %d", len(result.Sources))
	}
	if result.Sources[0].Title != "Product Catalog" {
		t.Fatalf("expected highest-scored source first, got %q", result.Sources[0].Title)
	}

	// Highest-scored chunk leads the formatted context
	if !strings.HasPrefix(result.Context, "[Product Catalog (general)]") {
		t.Fatalf("unexpected context prefix: %q", result.Context[:40])
	}
	if !strings.Contains(result.Context, "\n\n---\n\n") {
		t.Fatal("expected chunk separator in context")
	}
}

func TestContextAssembler_BudgetTruncation(t *testing.T) {
	provider := rag.NewStaticProvider([]rag.SearchHit{
		paddedHit(1, "Doc 1", 0.95),
		paddedHit(2, "Doc 2", 0.90),
		paddedHit(3, "Doc 3", 0.85),
		paddedHit(4, "Doc 4", 0.80),
		paddedHit(5, "Doc 5", 0.75),
	})

	assembler, err := rag.NewContextAssembler(provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 370 tokens minus formatting overhead (4 separators, 5
	// headers, sources block = 120) leaves 250 for the five
	// 100-token chunks: exactly two fit.
	result, err := assembler.Assemble(context.Background(), "user-1", "query",
		rag.WithMaxTokens(370),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ChunksIncluded != 2 {
		t.Fatalf("expected exactly 2 chunks, got %d", result.ChunksIncluded)
	}
	if !result.Truncated {
		t.Fatal("expected truncated flag")
	}
	if result.TokensUsed > 370 {
		t.Fatalf("tokens used %d exceed the 370 budget", result.TokensUsed)
	}
	if len(result.Sources) != 2 {
		t.Fatalf("expected sources only for included chunks, got %d", len(result.Sources))
	}
}

func TestContextAssembler_CategoryBoost(t *testing.T) {
	general := paddedHit(1, "General Notes", 0.8)
	brand := paddedHit(2, "Brand Guide", 0.5)
	brand.Category = rag.CategoryBrand

	assembler, err := rag.NewContextAssembler(rag.NewStaticProvider([]rag.SearchHit{general, brand}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := assembler.Assemble(context.Background(), "user-1", "query",
		rag.WithThreshold(0.4),
		rag.WithCategoryBoosts(map[rag.Category]float64{rag.CategoryBrand: 2.0}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The boosted brand chunk (0.5*2.0 capped at 1.0) outranks
	// the unboosted 0.8 general chunk.
	if !strings.HasPrefix(result.Context, "[Brand Guide (brand)]") {
		t.Fatalf("expected boosted chunk first, context starts %q", result.Context[:40])
	}
	if result.Sources[0].ID != 2 {
		t.Fatalf("expected boosted source first, got %d", result.Sources[0].ID)
	}
}

func TestContextAssembler_PerDocumentCap(t *testing.T) {
	hits := make([]rag.SearchHit, 0, 6)
	for i := 0; i < 5; i++ {
		hit := paddedHit(1, "Doc 1", 0.95-float64(i)*0.01)
		hit.ChunkIndex = i
		// Distinct word sets so deduplication keeps them all
		hit.Text = fmt.Sprintf("unique%d ", i) + strings.Repeat(fmt.Sprintf("word%d ", i), 20)
		hits = append(hits, hit)
	}
	hits = append(hits, paddedHit(2, "Doc 2", 0.7))

	assembler, err := rag.NewContextAssembler(rag.NewStaticProvider(hits))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := assembler.Assemble(context.Background(), "user-1", "query")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// At most 3 chunks per document plus the second document
	if result.ChunksIncluded != 4 {
		t.Fatalf("expected 4 chunks after per-document cap, got %d", result.ChunksIncluded)
	}
	for _, source := range result.Sources {
		if source.ChunkCount > 3 {
			t.Fatalf("document %d contributed %d chunks, cap is 3", source.ID, source.ChunkCount)
		}
	}
}

func TestContextAssembler_SearchError(t *testing.T) {
	wantErr := errors.New("engine offline")
	assembler, err := rag.NewContextAssembler(&failingProvider{err: wantErr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = assembler.Assemble(context.Background(), "user-1", "query")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected search error propagated, got %v", err)
	}
}

func TestContextAssembler_HybridSearch(t *testing.T) {
	semanticHit := paddedHit(1, "Doc 1", 1.0)
	keywordHit := semanticHit

	assembler, err := rag.NewContextAssembler(
		rag.NewStaticProvider([]rag.SearchHit{semanticHit}),
		rag.WithKeywordProvider(rag.NewStaticProvider([]rag.SearchHit{keywordHit})),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := assembler.Assemble(context.Background(), "user-1", "query",
		rag.WithHybrid(0.7, 0.3),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ChunksIncluded != 1 {
		t.Fatalf("expected fused hit included once, got %d chunks", result.ChunksIncluded)
	}
	if result.Sources[0].Score != 1.0 {
		t.Fatalf("expected fused score 1.0, got %.2f", result.Sources[0].Score)
	}
}

func TestContextAssembler_MisconfiguredBudget(t *testing.T) {
	provider := rag.NewStaticProvider([]rag.SearchHit{
		paddedHit(1, "Doc 1", 0.95),
	})

	planner := budget.NewPlanner(budget.WithProfile("broken", budget.Budget{
		Total:    100,
		System:   90,
		Response: 50,
	}))

	assembler, err := rag.NewContextAssembler(provider, rag.WithPlanner(planner))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Available tokens are negative; the assembler clamps to zero
	// and produces an empty truncated result instead of an error.
	result, err := assembler.AssembleForProfile(context.Background(), "user-1", "query", "broken")
	if err != nil {
		t.Fatalf("expected zero result instead of error, got %v", err)
	}

	if result.ChunksIncluded != 0 || result.Context != "" {
		t.Fatalf("expected empty context, got %+v", result)
	}
	if !result.Truncated {
		t.Fatal("expected truncated flag when budget cannot fit anything")
	}
}

func TestContextAssembler_Metrics(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()

	assembler, err := rag.NewContextAssembler(
		rag.NewStaticProvider([]rag.SearchHit{paddedHit(1, "Doc 1", 0.95)}),
		rag.WithMetrics(metrics),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := assembler.Assemble(context.Background(), "user-1", "query"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := metrics.GetCounterValue(otel.MetricAssemblyTotal); got != 1 {
		t.Fatalf("expected 1 assembly counted, got %d", got)
	}
	if values := metrics.GetHistogramValues(otel.MetricAssemblyTokens); len(values) != 1 {
		t.Fatalf("expected 1 token histogram sample, got %d", len(values))
	}
}
