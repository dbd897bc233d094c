package domain

import (
	"context"
	"errors"
	"testing"
)

type stubEmbedder struct {
	result EmbeddingResult
	err    error
	got    []string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	s.got = append(s.got, text)
	return s.result, s.err
}

type stubBatchEmbedder struct {
	stubEmbedder
	batch      BatchEmbeddingResult
	batchTexts []string
}

func (s *stubBatchEmbedder) BatchEmbed(_ context.Context, texts []string) (BatchEmbeddingResult, error) {
	s.batchTexts = texts
	return s.batch, nil
}

type stubHealthEmbedder struct {
	stubEmbedder
	healthErr error
}

func (s *stubHealthEmbedder) HealthCheck(context.Context) error { return s.healthErr }

func TestInstructionEmbedder_PrependsInstruction(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}}
	emb := NewInstructionEmbedder(inner, "query: ")

	result, err := emb.Embed(context.Background(), "quiet streets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.got) != 1 || inner.got[0] != "query: quiet streets" {
		t.Errorf("expected prepended text, got %v", inner.got)
	}
	if len(result.Embedding) != 3 {
		t.Errorf("expected 3-element vector, got %d", len(result.Embedding))
	}
}

func TestInstructionEmbedder_ErrorPropagation(t *testing.T) {
	innerErr := errors.New("provider down")
	emb := NewInstructionEmbedder(&stubEmbedder{err: innerErr}, "query: ")

	_, err := emb.Embed(context.Background(), "hello")
	if !errors.Is(err, innerErr) {
		t.Errorf("expected wrapped inner error, got %v", err)
	}
}

func TestInstructionEmbedder_HealthCheck(t *testing.T) {
	down := errors.New("down")

	withHealth := NewInstructionEmbedder(&stubHealthEmbedder{healthErr: down}, "")
	if err := withHealth.HealthCheck(context.Background()); !errors.Is(err, down) {
		t.Errorf("expected inner health error, got %v", err)
	}

	without := NewInstructionEmbedder(&stubEmbedder{}, "")
	if err := without.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected nil for inner without health check, got %v", err)
	}
}

func TestEmbedAll_UsesBatchWhenAvailable(t *testing.T) {
	inner := &stubBatchEmbedder{batch: BatchEmbeddingResult{
		Embeddings:  [][]float32{{1}, {2}},
		TotalTokens: 7,
	}}

	res, err := EmbedAll(context.Background(), inner, []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.batchTexts) != 2 {
		t.Errorf("expected batch call with 2 texts, got %v", inner.batchTexts)
	}
	if len(inner.got) != 0 {
		t.Errorf("single Embed should not be called, got %v", inner.got)
	}
	if res.TotalTokens != 7 {
		t.Errorf("TotalTokens = %d, want 7", res.TotalTokens)
	}
}

func TestEmbedAll_FallsBackToSingleEmbed(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{1, 0}, PromptTokens: 2, TotalTokens: 3}}

	res, err := EmbedAll(context.Background(), inner, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.got) != 3 {
		t.Errorf("expected 3 Embed calls, got %d", len(inner.got))
	}
	if len(res.Embeddings) != 3 {
		t.Errorf("expected 3 embeddings, got %d", len(res.Embeddings))
	}
	if res.PromptTokens != 6 || res.TotalTokens != 9 {
		t.Errorf("usage = %d/%d, want 6/9", res.PromptTokens, res.TotalTokens)
	}
}

func TestEmbedAll_FallbackError(t *testing.T) {
	innerErr := errors.New("boom")
	_, err := EmbedAll(context.Background(), &stubEmbedder{err: innerErr}, []string{"a"})
	if !errors.Is(err, innerErr) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
