package rag_test

import (
	"testing"

	"github.com/brandquill/ragcontext/pkg/rag"
)

func TestPerDocumentLimiter_Limit(t *testing.T) {
	limiter := rag.NewPerDocumentLimiter()

	chunks := []rag.Chunk{
		{DocumentID: 1, ChunkIndex: 0, Score: 0.95},
		{DocumentID: 1, ChunkIndex: 1, Score: 0.90},
		{DocumentID: 2, ChunkIndex: 0, Score: 0.88},
		{DocumentID: 1, ChunkIndex: 2, Score: 0.85},
		{DocumentID: 1, ChunkIndex: 3, Score: 0.80},
		{DocumentID: 1, ChunkIndex: 4, Score: 0.75},
	}

	limited := limiter.Limit(chunks, 3)

	if len(limited) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(limited))
	}

	// Document 1 keeps its three highest-scored chunks
	doc1 := 0
	for _, chunk := range limited {
		if chunk.DocumentID == 1 {
			doc1++
			if chunk.ChunkIndex > 2 {
				t.Fatalf("expected lowest-scored chunks dropped, kept index %d", chunk.ChunkIndex)
			}
		}
	}
	if doc1 != 3 {
		t.Fatalf("expected 3 chunks from document 1, got %d", doc1)
	}

	// Relative order is preserved
	if limited[2].DocumentID != 2 {
		t.Fatalf("expected document 2 chunk to stay in position, got document %d", limited[2].DocumentID)
	}
}

func TestPerDocumentLimiter_NoLimit(t *testing.T) {
	limiter := rag.NewPerDocumentLimiter()

	chunks := []rag.Chunk{
		{DocumentID: 1, ChunkIndex: 0},
		{DocumentID: 1, ChunkIndex: 1},
		{DocumentID: 1, ChunkIndex: 2},
	}

	limited := limiter.Limit(chunks, 0)
	if len(limited) != 3 {
		t.Fatalf("expected all chunks with limit 0, got %d", len(limited))
	}

	limited = limiter.Limit(chunks, -1)
	if len(limited) != 3 {
		t.Fatalf("expected all chunks with negative limit, got %d", len(limited))
	}
}

func TestPerDocumentLimiter_Empty(t *testing.T) {
	limiter := rag.NewPerDocumentLimiter()

	limited := limiter.Limit(nil, 3)
	if len(limited) != 0 {
		t.Fatalf("expected empty result, got %d chunks", len(limited))
	}
}
