package hoodmatch

import (
	"context"
	"strings"
	"sync/atomic"
)

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}

// keywordEmbedder embeds text as keyword counts plus a bias dimension and counts its calls.
func keywordEmbedder(calls *atomic.Int64, keywords ...string) *mockEmbedder {
	return &mockEmbedder{fn: func(_ context.Context, text string) (EmbeddingResult, error) {
		calls.Add(1)
		lower := strings.ToLower(text)
		vec := make([]float32, len(keywords)+1)
		for i, k := range keywords {
			vec[i] = float32(strings.Count(lower, k))
		}
		vec[len(keywords)] = 0.1
		return EmbeddingResult{Embedding: vec, TotalTokens: 1}, nil
	}}
}
