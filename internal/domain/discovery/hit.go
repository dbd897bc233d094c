package discovery

import "github.com/kailas-cloud/hoodmatch/internal/domain/neighborhood"

// Hit is a neighborhood returned by free-text discovery.
type Hit struct {
	neighborhood neighborhood.Neighborhood
	similarity   float64
}

// NewHit creates a discovery hit.
func NewHit(n neighborhood.Neighborhood, similarity float64) Hit {
	return Hit{neighborhood: n, similarity: similarity}
}

// Neighborhood returns the matched neighborhood.
func (h *Hit) Neighborhood() neighborhood.Neighborhood { return h.neighborhood }

// Similarity returns the cosine similarity between query and neighborhood text.
func (h *Hit) Similarity() float64 { return h.similarity }
