package discover

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/kailas-cloud/hoodmatch/internal/domain"
	"github.com/kailas-cloud/hoodmatch/internal/domain/discovery"
	domnb "github.com/kailas-cloud/hoodmatch/internal/domain/neighborhood"
)

// MaxQueryLength is the maximum discovery query length in characters.
const MaxQueryLength = 1024

type entry struct {
	neighborhood domnb.Neighborhood
	vector       []float32
}

// Service ranks neighborhoods by semantic similarity to a free-text query.
type Service struct {
	dataset DatasetReader
	query   domain.Embedder
	docs    domain.Embedder

	mu    sync.Mutex
	index []entry
}

// New creates a discovery service. query and docs may be the same embedder;
// separate ones allow different instruction prefixes. nil embedders disable discovery.
func New(dataset DatasetReader, query, docs domain.Embedder) *Service {
	return &Service{dataset: dataset, query: query, docs: docs}
}

// Enabled reports whether an embedding provider is configured.
func (s *Service) Enabled() bool {
	return s.query != nil && s.docs != nil
}

// Search embeds the query and returns neighborhoods ordered by cosine similarity.
// limit <= 0 returns every neighborhood.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]discovery.Hit, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("discovery: %w", domain.ErrNotImplemented)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidQuery)
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return nil, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}

	index, err := s.ensureIndex(ctx)
	if err != nil {
		return nil, err
	}

	emb, err := s.query.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits := make([]discovery.Hit, len(index))
	for i, e := range index {
		hits[i] = discovery.NewHit(e.neighborhood, cosine(emb.Embedding, e.vector))
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity() > hits[j].Similarity()
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// ensureIndex embeds the dataset once. A failed build is retried on the next call.
func (s *Service) ensureIndex(ctx context.Context) ([]entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		return s.index, nil
	}

	items, err := s.dataset.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list neighborhoods: %w", err)
	}

	texts := make([]string, len(items))
	for i := range items {
		texts[i] = documentText(&items[i])
	}

	res, err := domain.EmbedAll(ctx, s.docs, texts)
	if err != nil {
		return nil, fmt.Errorf("embed neighborhoods: %w", err)
	}
	if len(res.Embeddings) != len(items) {
		return nil, fmt.Errorf("embed neighborhoods: got %d vectors for %d texts: %w",
			len(res.Embeddings), len(items), domain.ErrEmbeddingProviderError)
	}

	index := make([]entry, len(items))
	for i := range items {
		index[i] = entry{neighborhood: items[i], vector: res.Embeddings[i]}
	}
	s.index = index
	return index, nil
}

// documentText is the text embedded for a neighborhood.
func documentText(n *domnb.Neighborhood) string {
	var b strings.Builder
	b.WriteString(n.Name())
	b.WriteString(", ")
	b.WriteString(n.City())
	b.WriteString(", ")
	b.WriteString(n.State())
	b.WriteString(". ")
	b.WriteString(n.Description())
	for _, h := range n.Highlights() {
		b.WriteString(" ")
		b.WriteString(h)
		b.WriteString(".")
	}
	return b.String()
}

// cosine returns the cosine similarity of a and b, 0 if either is zero or lengths differ.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
