package rag_test

import (
	"testing"

	"github.com/brandquill/ragcontext/pkg/rag"
)

func TestSourceCiter_Cite(t *testing.T) {
	citer := rag.NewSourceCiter()

	chunks := []rag.Chunk{
		{DocumentID: 1, DocumentTitle: "Product Catalog", Category: rag.CategoryProducts, Score: 0.7},
		{DocumentID: 2, DocumentTitle: "Brand Guide", Category: rag.CategoryBrand, Score: 0.8},
		{DocumentID: 1, DocumentTitle: "Product Catalog", Category: rag.CategoryProducts, Score: 0.9},
	}

	sources := citer.Cite(chunks)

	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}

	// Source score is the maximum over contributing chunks, so
	// document 1 (0.9) sorts before document 2 (0.8).
	if sources[0].ID != 1 {
		t.Fatalf("expected document 1 first, got %d", sources[0].ID)
	}
	if sources[0].Score != 0.9 {
		t.Fatalf("expected max score 0.9, got %.2f", sources[0].Score)
	}
	if sources[0].ChunkCount != 2 {
		t.Fatalf("expected 2 contributing chunks, got %d", sources[0].ChunkCount)
	}
	if sources[0].Title != "Product Catalog" {
		t.Fatalf("unexpected title %q", sources[0].Title)
	}

	if sources[1].ID != 2 || sources[1].ChunkCount != 1 {
		t.Fatalf("unexpected second source: %+v", sources[1])
	}
}

func TestSourceCiter_Empty(t *testing.T) {
	citer := rag.NewSourceCiter()

	sources := citer.Cite(nil)
	if len(sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(sources))
	}
}
