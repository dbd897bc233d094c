package chi

import (
	"github.com/kailas-cloud/hoodmatch/internal/domain/attribute"
	"github.com/kailas-cloud/hoodmatch/internal/domain/discovery"
	dommatch "github.com/kailas-cloud/hoodmatch/internal/domain/match"
	domnb "github.com/kailas-cloud/hoodmatch/internal/domain/neighborhood"
)

// ErrorCode is a machine-readable error code returned in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest             ErrorCode = "bad_request"
	ErrorCodeValidationFailed       ErrorCode = "validation_failed"
	ErrorCodeUnauthorized           ErrorCode = "unauthorized"
	ErrorCodeNotFound               ErrorCode = "not_found"
	ErrorCodeNotImplemented         ErrorCode = "not_implemented"
	ErrorCodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	ErrorCodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Neighborhood is the wire form of a neighborhood record.
type Neighborhood struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Safety         int      `json:"safety"`
	Affordability  int      `json:"affordability"`
	Walkability    int      `json:"walkability"`
	SchoolQuality  int      `json:"schoolQuality"`
	ParksTransport int      `json:"parksTransport"`
	Description    string   `json:"description"`
	Highlights     []string `json:"highlights"`
}

// ScoredNeighborhood is a neighborhood with its weighted match score.
type ScoredNeighborhood struct {
	Neighborhood
	TotalScore float64 `json:"totalScore"`
}

// SearchRequest is the body of POST /neighborhoods/search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit *int   `json:"limit,omitempty"`
}

// SearchHit is a neighborhood with its similarity to a discovery query.
type SearchHit struct {
	Neighborhood
	Similarity float64 `json:"similarity"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func neighborhoodToDTO(n *domnb.Neighborhood) Neighborhood {
	highlights := n.Highlights()
	if highlights == nil {
		highlights = []string{}
	}
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
		Highlights:     highlights,
	}
}

func matchResultToDTO(r *dommatch.Result) ScoredNeighborhood {
	n := r.Neighborhood()
	return ScoredNeighborhood{
		Neighborhood: neighborhoodToDTO(&n),
		TotalScore:   r.TotalScore(),
	}
}

func hitToDTO(h *discovery.Hit) SearchHit {
	n := h.Neighborhood()
	return SearchHit{
		Neighborhood: neighborhoodToDTO(&n),
		Similarity:   h.Similarity(),
	}
}
