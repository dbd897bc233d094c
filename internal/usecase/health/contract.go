package health

import "context"

// DatasetCounter reports how many neighborhoods are loaded.
type DatasetCounter interface {
	Len() int
}

// CachePinger checks embedding cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
