package hoodmatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/hoodmatch/internal/db/redis"
	"github.com/kailas-cloud/hoodmatch/internal/domain"
	"github.com/kailas-cloud/hoodmatch/internal/domain/attribute"
	"github.com/kailas-cloud/hoodmatch/internal/domain/discovery"
	dommatch "github.com/kailas-cloud/hoodmatch/internal/domain/match"
	domnb "github.com/kailas-cloud/hoodmatch/internal/domain/neighborhood"
	"github.com/kailas-cloud/hoodmatch/internal/domain/preference"
	"github.com/kailas-cloud/hoodmatch/internal/repository/embcache"
	nbrepo "github.com/kailas-cloud/hoodmatch/internal/repository/neighborhood"
	discoveruc "github.com/kailas-cloud/hoodmatch/internal/usecase/discover"
	healthuc "github.com/kailas-cloud/hoodmatch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/hoodmatch/internal/usecase/match"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = 30 * 24 * time.Hour
	defaultModel            = "default"
)

// Internal interfaces, swapped out in tests.
type matchUseCase interface {
	Match(ctx context.Context, prefs *preference.Preferences, limit int) ([]dommatch.Result, error)
}

type searchUseCase interface {
	Search(ctx context.Context, query string, limit int) ([]discovery.Hit, error)
}

type datasetReader interface {
	List(ctx context.Context) ([]domnb.Neighborhood, error)
	Get(ctx context.Context, id string) (domnb.Neighborhood, error)
}

// Client is the hoodmatch SDK entry point. It is safe for concurrent use.
type Client struct {
	cache     *dbRedis.Store
	dataset   datasetReader
	matchSvc  matchUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New loads the dataset and wires the client.
// The provided context is used for the cache readiness check when WithRedis is set.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{model: defaultModel}
	for _, o := range opts {
		o.apply(cfg)
	}

	dataset, err := loadDataset(cfg.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("hoodmatch: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var cache *dbRedis.Store
	if len(cfg.cacheAddrs) > 0 && cfg.embedder != nil {
		cache, err = connectCache(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	return wireClient(dataset, cache, cfg, obs), nil
}

func loadDataset(path string) (*nbrepo.Repo, error) {
	if path == "" {
		return nbrepo.Default()
	}
	return nbrepo.LoadFile(path)
}

func connectCache(ctx context.Context, cfg *clientConfig) (*dbRedis.Store, error) {
	for _, a := range cfg.cacheAddrs {
		if a == "" {
			return nil, fmt.Errorf("hoodmatch: cache address required")
		}
	}
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.cacheAddrs,
		Password: cfg.cachePassword,
	})
	if err != nil {
		return nil, fmt.Errorf("hoodmatch: create cache store: %w", err)
	}
	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("hoodmatch: cache not ready: %w", err)
	}
	return s, nil
}

func wireClient(dataset *nbrepo.Repo, cache *dbRedis.Store, cfg *clientConfig, obs *observer) *Client {
	// Discovery stays disabled (ErrNotImplemented) without an embedder.
	var emb domain.Embedder
	if cfg.embedder != nil {
		emb = &embedderAdapter{inner: cfg.embedder}
		if cache != nil {
			emb = embcache.New(emb, cache, cfg.model, defaultCacheTTL, nil, zap.NewNop())
		}
	}

	var cachePing healthuc.CachePinger
	if cache != nil {
		cachePing = cache
	}

	return &Client{
		cache:     cache,
		dataset:   dataset,
		matchSvc:  matchuc.New(dataset),
		searchSvc: discoveruc.New(dataset, emb, emb),
		healthSvc: healthuc.New(dataset, cachePing, nil),
		obs:       obs,
	}
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// Match ranks every neighborhood by its weighted score, best first.
// Ties keep dataset order. limit <= 0 returns all neighborhoods.
func (c *Client) Match(ctx context.Context, prefs Preferences, limit int) (_ []ScoredNeighborhood, err error) {
	start := time.Now()
	n := -1
	defer func() { c.obs.observe("match", start, n, err) }()

	p, err := preference.New(map[attribute.Attribute]float64{
		attribute.Safety:         prefs.Safety,
		attribute.Affordability:  prefs.Affordability,
		attribute.Walkability:    prefs.Walkability,
		attribute.SchoolQuality:  prefs.SchoolQuality,
		attribute.ParksTransport: prefs.ParksTransport,
	})
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	results, err := c.matchSvc.Match(ctx, &p, limit)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	out := make([]ScoredNeighborhood, len(results))
	for i := range results {
		nb := results[i].Neighborhood()
		out[i] = ScoredNeighborhood{Neighborhood: toNeighborhood(&nb), TotalScore: results[i].TotalScore()}
	}
	n = len(out)
	return out, nil
}

// Neighborhoods returns the full dataset in its original order.
func (c *Client) Neighborhoods(ctx context.Context) (_ []Neighborhood, err error) {
	start := time.Now()
	n := -1
	defer func() { c.obs.observe("neighborhoods.list", start, n, err) }()

	items, err := c.dataset.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list neighborhoods: %w", err)
	}
	out := make([]Neighborhood, len(items))
	for i := range items {
		out[i] = toNeighborhood(&items[i])
	}
	n = len(out)
	return out, nil
}

// Neighborhood returns one neighborhood by ID or ErrNotFound.
func (c *Client) Neighborhood(ctx context.Context, id string) (_ Neighborhood, err error) {
	start := time.Now()
	defer func() { c.obs.observe("neighborhoods.get", start, -1, err) }()

	nb, err := c.dataset.Get(ctx, id)
	if err != nil {
		return Neighborhood{}, fmt.Errorf("get neighborhood: %w", err)
	}
	return toNeighborhood(&nb), nil
}

// Search ranks neighborhoods by semantic similarity to query.
// Returns ErrNotImplemented unless WithEmbedder was set.
func (c *Client) Search(ctx context.Context, query string, limit int) (_ []SearchHit, err error) {
	start := time.Now()
	n := -1
	defer func() { c.obs.observe("search", start, n, err) }()

	hits, err := c.searchSvc.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	out := make([]SearchHit, len(hits))
	for i := range hits {
		nb := hits[i].Neighborhood()
		out[i] = SearchHit{Neighborhood: toNeighborhood(&nb), Similarity: hits[i].Similarity()}
	}
	n = len(out)
	return out, nil
}

func toNeighborhood(n *domnb.Neighborhood) Neighborhood {
	return Neighborhood{
		ID:             n.ID(),
		Name:           n.Name(),
		City:           n.City(),
		State:          n.State(),
		Safety:         n.Score(attribute.Safety),
		Affordability:  n.Score(attribute.Affordability),
		Walkability:    n.Score(attribute.Walkability),
		SchoolQuality:  n.Score(attribute.SchoolQuality),
		ParksTransport: n.Score(attribute.ParksTransport),
		Description:    n.Description(),
		Highlights:     n.Highlights(),
	}
}

// embedderAdapter wraps public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
