package embcache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hoodmatch/internal/domain"
)

func TestEmbed_CacheMissThenHit(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{0.1, 0.2, 0.3},
		PromptTokens: 10,
		TotalTokens:  10,
	}}
	ce, ms := newTestCachedEmbedder(t, inner)
	ctx := context.Background()

	first, err := ce.Embed(ctx, "quiet streets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TotalTokens != 10 {
		t.Errorf("miss: TotalTokens = %d, want 10", first.TotalTokens)
	}
	if len(ms.data) != 1 {
		t.Fatalf("expected one cached entry, got %d", len(ms.data))
	}
	for k, ttl := range ms.ttls {
		if !strings.HasPrefix(k, "hoodmatch:emb_cache:") {
			t.Errorf("unexpected key %q", k)
		}
		if ttl != time.Hour {
			t.Errorf("ttl = %v, want 1h", ttl)
		}
	}

	second, err := ce.Embed(ctx, "quiet streets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit: TotalTokens = %d, want 0", second.TotalTokens)
	}
	if len(second.Embedding) != 3 || second.Embedding[2] != 0.3 {
		t.Errorf("hit: unexpected vector %v", second.Embedding)
	}
}

func TestEmbed_InnerError(t *testing.T) {
	innerErr := errors.New("provider down")
	ce, ms := newTestCachedEmbedder(t, &mockEmbedder{err: innerErr})

	_, err := ce.Embed(context.Background(), "x")
	if !errors.Is(err, innerErr) {
		t.Fatalf("expected wrapped inner error, got %v", err)
	}
	if len(ms.data) != 0 {
		t.Error("failed embedding must not be cached")
	}
}

func TestEmbed_StoreErrorsAreNotFatal(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	ce, ms := newTestCachedEmbedder(t, inner)
	ms.getErr = errors.New("get failed")
	ms.setErr = errors.New("set failed")

	res, err := ce.Embed(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embedding) != 1 {
		t.Errorf("unexpected vector %v", res.Embedding)
	}
}

func TestEmbed_CorruptCacheIsMiss(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1, 2}}}
	ce, ms := newTestCachedEmbedder(t, inner)
	ms.data[ce.cacheKey("x")] = []byte{1, 2, 3}

	if _, err := ce.Embed(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected corrupt entry to fall through to inner, calls = %d", inner.calls)
	}
}

func TestCacheKey_DependsOnModel(t *testing.T) {
	a := New(&mockEmbedder{}, newMemStore(), "model-a", 0, nil, zap.NewNop())
	b := New(&mockEmbedder{}, newMemStore(), "model-b", 0, nil, zap.NewNop())

	if a.cacheKey("text") == b.cacheKey("text") {
		t.Error("cache keys must differ across models")
	}
	if a.cacheKey("text") != a.cacheKey("text") {
		t.Error("cache key must be deterministic")
	}
}

func TestBatchEmbed_OnlyMissesReachInner(t *testing.T) {
	inner := &mockBatchEmbedder{mockEmbedder{result: domain.EmbeddingResult{
		Embedding:   []float32{0.5},
		TotalTokens: 4,
	}}}
	ce, ms := newTestCachedEmbedder(t, inner)
	ms.data[ce.cacheKey("cached")] = vectorToCacheBytes([]float32{0.9})

	res, err := ce.BatchEmbed(context.Background(), []string{"a", "cached", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.batchTexts) != 1 || len(inner.batchTexts[0]) != 2 {
		t.Fatalf("expected one inner batch of 2 misses, got %v", inner.batchTexts)
	}
	if res.Embeddings[1][0] != 0.9 {
		t.Errorf("cached slot = %v, want 0.9", res.Embeddings[1])
	}
	if res.Embeddings[0][0] != 0.5 || res.Embeddings[2][0] != 0.5 {
		t.Errorf("miss slots not filled: %v", res.Embeddings)
	}
	if res.TotalTokens != 8 {
		t.Errorf("TotalTokens = %d, want 8", res.TotalTokens)
	}
	if len(ms.data) != 3 {
		t.Errorf("expected misses to be cached, store has %d entries", len(ms.data))
	}
}

func TestBatchEmbed_AllHits(t *testing.T) {
	inner := &mockBatchEmbedder{}
	ce, ms := newTestCachedEmbedder(t, inner)
	ms.data[ce.cacheKey("a")] = vectorToCacheBytes([]float32{1})

	res, err := ce.BatchEmbed(context.Background(), []string{"a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.batchTexts) != 0 {
		t.Error("inner must not be called when everything is cached")
	}
	if res.Embeddings[0][0] != 1 {
		t.Errorf("unexpected vector %v", res.Embeddings[0])
	}
}

func TestBatchEmbed_InnerError(t *testing.T) {
	innerErr := errors.New("down")
	ce, _ := newTestCachedEmbedder(t, &mockBatchEmbedder{mockEmbedder{err: innerErr}})

	_, err := ce.BatchEmbed(context.Background(), []string{"a"})
	if !errors.Is(err, innerErr) {
		t.Fatalf("expected wrapped inner error, got %v", err)
	}
}

func TestCacheMetrics(t *testing.T) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_total"}, []string{"result"})
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	ce := New(inner, newMemStore(), "m", 0, counter, zap.NewNop())

	_, _ = ce.Embed(context.Background(), "x")
	_, _ = ce.Embed(context.Background(), "x")

	if got := testutil.ToFloat64(counter.WithLabelValues("miss")); got != 1 {
		t.Errorf("miss = %v, want 1", got)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("hit")); got != 1 {
		t.Errorf("hit = %v, want 1", got)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	in := []float32{-1.5, 0, 3.25}
	out, err := bytesToVector(vectorToCacheBytes(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}
