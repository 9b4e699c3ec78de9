package rag_test

import (
	"testing"

	"github.com/brandquill/ragcontext/pkg/rag"
)

func TestDeduplicator_RemovesNearDuplicates(t *testing.T) {
	dedupe := rag.NewDeduplicator()

	// Input is sorted by score descending, so the higher-scored
	// member of a duplicate pair is kept.
	chunks := []rag.Chunk{
		{Text: "The quick brown fox jumps over the lazy dog", DocumentID: 1, Score: 0.9},
		{Text: "quick brown fox jumps over lazy dog", DocumentID: 2, Score: 0.8},
		{Text: "Our refund policy covers all purchases within thirty days", DocumentID: 3, Score: 0.7},
	}

	result := dedupe.Deduplicate(chunks, 0.8)

	if len(result) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(result))
	}
	if result[0].DocumentID != 1 {
		t.Fatalf("expected higher-scored duplicate kept, got document %d", result[0].DocumentID)
	}
	if result[1].DocumentID != 3 {
		t.Fatalf("expected distinct chunk kept, got document %d", result[1].DocumentID)
	}
}

func TestDeduplicator_KeepsDistinctChunks(t *testing.T) {
	dedupe := rag.NewDeduplicator()

	chunks := []rag.Chunk{
		{Text: "Premium subscription includes unlimited storage and priority support", Score: 0.9},
		{Text: "Our brand voice is friendly, concise and avoids technical jargon", Score: 0.8},
		{Text: "Summer campaign targets urban commuters aged twenty to thirty", Score: 0.7},
	}

	result := dedupe.Deduplicate(chunks, 0.8)

	if len(result) != 3 {
		t.Fatalf("expected all distinct chunks kept, got %d", len(result))
	}
}

func TestDeduplicator_IdenticalText(t *testing.T) {
	dedupe := rag.NewDeduplicator()

	chunks := []rag.Chunk{
		{Text: "Exactly the same sentence about shipping times", DocumentID: 1, Score: 0.9},
		{Text: "Exactly the same sentence about shipping times", DocumentID: 2, Score: 0.5},
	}

	result := dedupe.Deduplicate(chunks, 0.8)

	if len(result) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(result))
	}
	if result[0].DocumentID != 1 {
		t.Fatalf("expected first occurrence kept, got document %d", result[0].DocumentID)
	}
}

func TestDeduplicator_ShortWordsOnly(t *testing.T) {
	dedupe := rag.NewDeduplicator()

	// Words shorter than three characters produce empty word sets,
	// which compare as identical.
	chunks := []rag.Chunk{
		{Text: "a b c", DocumentID: 1, Score: 0.9},
		{Text: "x y z", DocumentID: 2, Score: 0.8},
	}

	result := dedupe.Deduplicate(chunks, 0.8)

	if len(result) != 1 {
		t.Fatalf("expected degenerate chunks to collapse, got %d", len(result))
	}
}

func TestDeduplicator_Empty(t *testing.T) {
	dedupe := rag.NewDeduplicator()

	result := dedupe.Deduplicate(nil, 0.8)
	if len(result) != 0 {
		t.Fatalf("expected empty result, got %d chunks", len(result))
	}
}
