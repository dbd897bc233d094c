package match

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/hoodmatch/internal/domain/attribute"
	dommatch "github.com/kailas-cloud/hoodmatch/internal/domain/match"
	domnb "github.com/kailas-cloud/hoodmatch/internal/domain/neighborhood"
	"github.com/kailas-cloud/hoodmatch/internal/domain/preference"
)

// Service ranks neighborhoods against a preference vector.
type Service struct {
	dataset  DatasetReader
	observer Observer
}

// New creates a match service.
func New(dataset DatasetReader) *Service {
	return &Service{dataset: dataset}
}

// WithObserver attaches an observer notified after every ranking.
func (s *Service) WithObserver(o Observer) *Service {
	s.observer = o
	return s
}

// Match scores every neighborhood in the dataset and returns them best first.
// limit > 0 truncates the ranked list; limit <= 0 returns all of it.
func (s *Service) Match(ctx context.Context, prefs *preference.Preferences, limit int) ([]dommatch.Result, error) {
	items, err := s.dataset.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list neighborhoods: %w", err)
	}

	results := Rank(items, prefs)

	if s.observer != nil {
		var top float64
		if len(results) > 0 {
			top = results[0].TotalScore()
		}
		s.observer.ObserveMatch(len(results), top)
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Rank scores items and sorts them by descending score.
// Equal scores keep their dataset order. items is not modified.
func Rank(items []domnb.Neighborhood, prefs *preference.Preferences) []dommatch.Result {
	results := make([]dommatch.Result, len(items))
	for i := range items {
		results[i] = dommatch.New(items[i], CalculateScore(&items[i], prefs))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore() > results[j].TotalScore()
	})
	return results
}

// CalculateScore is the weighted average of the neighborhood's ratings,
// rounded half-up to one decimal place.
func CalculateScore(n *domnb.Neighborhood, prefs *preference.Preferences) float64 {
	var score float64
	for _, a := range attribute.All() {
		score += float64(n.Score(a)) * prefs.Weight(a)
	}
	return roundTenth(score)
}

func roundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
