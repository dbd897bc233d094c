package match

import "github.com/kailas-cloud/hoodmatch/internal/domain/neighborhood"

// Result is a neighborhood paired with its weighted score.
type Result struct {
	neighborhood neighborhood.Neighborhood
	totalScore   float64
}

// New creates a match result.
func New(n neighborhood.Neighborhood, totalScore float64) Result {
	return Result{neighborhood: n, totalScore: totalScore}
}

// Neighborhood returns the scored neighborhood.
func (r *Result) Neighborhood() neighborhood.Neighborhood { return r.neighborhood }

// TotalScore returns the weighted score, rounded to one decimal place.
func (r *Result) TotalScore() float64 { return r.totalScore }
