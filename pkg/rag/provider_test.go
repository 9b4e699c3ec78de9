package rag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brandquill/ragcontext/pkg/rag"
)

func TestStaticProvider_Search(t *testing.T) {
	provider := rag.NewStaticProvider([]rag.SearchHit{
		{Text: "a", DocumentID: 1, Score: 0.5, Category: rag.CategoryGeneral},
		{Text: "b", DocumentID: 2, Score: 0.9, Category: rag.CategoryProducts},
		{Text: "c", DocumentID: 3, Score: 0.7, Category: rag.CategoryBrand},
	})

	hits, err := provider.Search(context.Background(), "user-1", "query", rag.SearchOptions{
		Threshold: 0.6,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("expected 2 hits above threshold, got %d", len(hits))
	}
	if hits[0].Score < hits[1].Score {
		t.Fatal("expected hits sorted by score descending")
	}
}

func TestStaticProvider_Filters(t *testing.T) {
	provider := rag.NewStaticProvider([]rag.SearchHit{
		{Text: "a", DocumentID: 1, Score: 0.9, Category: rag.CategoryProducts},
		{Text: "b", DocumentID: 2, Score: 0.9, Category: rag.CategoryBrand},
		{Text: "c", DocumentID: 3, Score: 0.9, Category: rag.CategoryProducts},
	})

	hits, err := provider.Search(context.Background(), "user-1", "query", rag.SearchOptions{
		Categories:  []rag.Category{rag.CategoryProducts},
		DocumentIDs: []int64{1, 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].DocumentID != 1 {
		t.Fatalf("expected document 1, got %d", hits[0].DocumentID)
	}
}

func TestStaticProvider_Limit(t *testing.T) {
	provider := rag.NewStaticProvider([]rag.SearchHit{
		{DocumentID: 1, Score: 0.9},
		{DocumentID: 2, Score: 0.8},
		{DocumentID: 3, Score: 0.7},
	})

	hits, err := provider.Search(context.Background(), "user-1", "query", rag.SearchOptions{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
}

func TestHybridProvider_WeightedFusion(t *testing.T) {
	semantic := rag.NewStaticProvider([]rag.SearchHit{
		{DocumentID: 1, ChunkIndex: 0, Score: 1.0},
		{DocumentID: 2, ChunkIndex: 0, Score: 1.0},
	})
	keyword := rag.NewStaticProvider([]rag.SearchHit{
		{DocumentID: 1, ChunkIndex: 0, Score: 1.0},
	})

	hybrid := rag.NewHybridProvider(semantic, keyword)

	hits, err := hybrid.Search(context.Background(), "user-1", "query", rag.SearchOptions{
		SemanticWeight: 0.7,
		KeywordWeight:  0.3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("expected 2 fused hits, got %d", len(hits))
	}

	// Document 1 hits both legs: 1.0*0.7 + 1.0*0.3 = 1.0.
	// Document 2 hits only the semantic leg: 0.7.
	if hits[0].DocumentID != 1 || hits[0].Score != 1.0 {
		t.Fatalf("unexpected top hit: %+v", hits[0])
	}
	if hits[1].DocumentID != 2 || hits[1].Score != 0.7 {
		t.Fatalf("unexpected second hit: %+v", hits[1])
	}
}

func TestHybridProvider_ThresholdAfterFusion(t *testing.T) {
	semantic := rag.NewStaticProvider([]rag.SearchHit{
		{DocumentID: 1, ChunkIndex: 0, Score: 1.0},
		{DocumentID: 2, ChunkIndex: 0, Score: 1.0},
	})
	keyword := rag.NewStaticProvider([]rag.SearchHit{
		{DocumentID: 1, ChunkIndex: 0, Score: 1.0},
	})

	hybrid := rag.NewHybridProvider(semantic, keyword)

	// The 0.75 threshold is applied to the fused score, dropping
	// the semantic-only document (0.7) even though its raw leg
	// score was 1.0.
	hits, err := hybrid.Search(context.Background(), "user-1", "query", rag.SearchOptions{
		Threshold:      0.75,
		SemanticWeight: 0.7,
		KeywordWeight:  0.3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 1 {
		t.Fatalf("expected 1 hit above fused threshold, got %d", len(hits))
	}
	if hits[0].DocumentID != 1 {
		t.Fatalf("expected document 1, got %d", hits[0].DocumentID)
	}
}

type failingProvider struct {
	err error
}

func (p *failingProvider) Search(context.Context, string, string, rag.SearchOptions) ([]rag.SearchHit, error) {
	return nil, p.err
}

func TestHybridProvider_PropagatesErrors(t *testing.T) {
	wantErr := errors.New("leg down")
	semantic := rag.NewStaticProvider(nil)
	keyword := &failingProvider{err: wantErr}

	hybrid := rag.NewHybridProvider(semantic, keyword)

	_, err := hybrid.Search(context.Background(), "user-1", "query", rag.SearchOptions{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected leg error propagated, got %v", err)
	}
}
