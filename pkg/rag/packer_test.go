package rag_test

import (
	"testing"

	"github.com/brandquill/ragcontext/pkg/rag"
)

func TestBudgetPacker_GreedyPrefix(t *testing.T) {
	packer := rag.NewBudgetPacker(nil)

	chunks := []rag.Chunk{
		{DocumentID: 1, Score: 0.95, EstimatedTokens: 100},
		{DocumentID: 2, Score: 0.90, EstimatedTokens: 100},
		{DocumentID: 3, Score: 0.85, EstimatedTokens: 100},
		{DocumentID: 4, Score: 0.80, EstimatedTokens: 100},
		{DocumentID: 5, Score: 0.75, EstimatedTokens: 100},
	}

	selected, truncated := packer.Pack(chunks, 250)

	if len(selected) != 2 {
		t.Fatalf("expected exactly 2 chunks in a 250-token budget, got %d", len(selected))
	}
	if !truncated {
		t.Fatal("expected truncated flag when chunks are dropped")
	}
	if selected[0].DocumentID != 1 || selected[1].DocumentID != 2 {
		t.Fatal("expected the highest-scored prefix to be selected")
	}
}

func TestBudgetPacker_AllFit(t *testing.T) {
	packer := rag.NewBudgetPacker(nil)

	chunks := []rag.Chunk{
		{EstimatedTokens: 50},
		{EstimatedTokens: 50},
		{EstimatedTokens: 50},
	}

	selected, truncated := packer.Pack(chunks, 200)

	if len(selected) != 3 {
		t.Fatalf("expected all chunks to fit, got %d", len(selected))
	}
	if truncated {
		t.Fatal("expected no truncation when everything fits")
	}
}

func TestBudgetPacker_NoRefill(t *testing.T) {
	packer := rag.NewBudgetPacker(nil)

	// The small chunk after the oversized one is not back-filled:
	// packing is a strict prefix, not a knapsack.
	chunks := []rag.Chunk{
		{DocumentID: 1, EstimatedTokens: 100},
		{DocumentID: 2, EstimatedTokens: 500},
		{DocumentID: 3, EstimatedTokens: 10},
	}

	selected, truncated := packer.Pack(chunks, 200)

	if len(selected) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(selected))
	}
	if selected[0].DocumentID != 1 {
		t.Fatalf("expected first chunk selected, got document %d", selected[0].DocumentID)
	}
	if !truncated {
		t.Fatal("expected truncated flag")
	}
}

func TestBudgetPacker_ZeroBudget(t *testing.T) {
	packer := rag.NewBudgetPacker(nil)

	chunks := []rag.Chunk{
		{EstimatedTokens: 10},
	}

	selected, truncated := packer.Pack(chunks, 0)

	if len(selected) != 0 {
		t.Fatalf("expected no chunks in a zero budget, got %d", len(selected))
	}
	if !truncated {
		t.Fatal("expected truncated flag for zero budget with input")
	}
}

func TestBudgetPacker_Empty(t *testing.T) {
	packer := rag.NewBudgetPacker(nil)

	selected, truncated := packer.Pack(nil, 100)

	if len(selected) != 0 {
		t.Fatalf("expected empty selection, got %d", len(selected))
	}
	if truncated {
		t.Fatal("expected no truncation for empty input")
	}
}

func TestBudgetPacker_CountsText(t *testing.T) {
	packer := rag.NewBudgetPacker(nil)

	// Without a cached token count the packer falls back to the
	// estimator: 40 characters is 10 tokens.
	chunks := []rag.Chunk{
		{Text: "0123456789012345678901234567890123456789"},
	}

	selected, _ := packer.Pack(chunks, 10)
	if len(selected) != 1 {
		t.Fatalf("expected chunk to fit exactly, got %d selected", len(selected))
	}

	selected, _ = packer.Pack(chunks, 9)
	if len(selected) != 0 {
		t.Fatalf("expected chunk to overflow a 9-token budget, got %d selected", len(selected))
	}
}
