package hoodmatch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	datasetPath string

	embedder Embedder
	model    string

	cacheAddrs    []string
	cachePassword string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithDatasetFile loads neighborhoods from a YAML or Parquet file
// instead of the built-in dataset.
func WithDatasetFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.datasetPath = path
	})
}

// WithEmbedder sets the text embedding provider used by Search.
// Matching works without it.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithEmbeddingModel names the embedding model. The name namespaces cached
// vectors, so change it whenever the embedder starts producing different vectors.
func WithEmbeddingModel(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.model = name
	})
}

// WithRedis caches neighborhood and query embeddings in a Redis or Valkey instance.
// Only used together with WithEmbedder.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
