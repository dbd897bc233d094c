package match

import (
	"context"

	domnb "github.com/kailas-cloud/hoodmatch/internal/domain/neighborhood"
)

// DatasetReader reads the neighborhood dataset.
type DatasetReader interface {
	List(ctx context.Context) ([]domnb.Neighborhood, error)
}

// Observer receives the outcome of every ranking. Optional.
type Observer interface {
	ObserveMatch(results int, topScore float64)
}
