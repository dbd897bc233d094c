package hoodmatch

// Preferences holds the relative importance of each attribute.
// Values must be non-negative and at least one must be positive; only ratios matter.
type Preferences struct {
	Safety         float64
	Affordability  float64
	Walkability    float64
	SchoolQuality  float64
	ParksTransport float64
}

// Neighborhood is a rated neighborhood. Ratings are 1-10.
type Neighborhood struct {
	ID             string
	Name           string
	City           string
	State          string
	Safety         int
	Affordability  int
	Walkability    int
	SchoolQuality  int
	ParksTransport int
	Description    string
	Highlights     []string
}

// ScoredNeighborhood is a neighborhood with its weighted score, rounded to one decimal.
type ScoredNeighborhood struct {
	Neighborhood
	TotalScore float64
}

// SearchHit is a neighborhood with its cosine similarity to a search query.
type SearchHit struct {
	Neighborhood
	Similarity float64
}
