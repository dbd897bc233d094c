package neighborhood

import (
	"fmt"

	"github.com/kailas-cloud/hoodmatch/internal/domain/attribute"
)

// Neighborhood is an immutable reference record (value object).
type Neighborhood struct {
	id          string
	name        string
	city        string
	state       string
	scores      map[attribute.Attribute]int
	description string
	highlights  []string
}

// New validates and creates a Neighborhood.
// Every attribute must be rated within [attribute.MinRating, attribute.MaxRating].
func New(
	id, name, city, state string,
	scores map[attribute.Attribute]int,
	description string,
	highlights []string,
) (Neighborhood, error) {
	if id == "" {
		return Neighborhood{}, fmt.Errorf("neighborhood ID is required")
	}
	if name == "" {
		return Neighborhood{}, fmt.Errorf("neighborhood %q: name is required", id)
	}
	for a := range scores {
		if !a.IsValid() {
			return Neighborhood{}, fmt.Errorf("neighborhood %q: unknown attribute %q", id, a)
		}
	}
	for _, a := range attribute.All() {
		v, ok := scores[a]
		if !ok {
			return Neighborhood{}, fmt.Errorf("neighborhood %q: %s is required", id, a)
		}
		if v < attribute.MinRating || v > attribute.MaxRating {
			return Neighborhood{}, fmt.Errorf("neighborhood %q: %s must be between %d and %d, got %d",
				id, a, attribute.MinRating, attribute.MaxRating, v)
		}
	}

	return Neighborhood{
		id:          id,
		name:        name,
		city:        city,
		state:       state,
		scores:      cloneScores(scores),
		description: description,
		highlights:  cloneStrings(highlights),
	}, nil
}

// ID returns the neighborhood identifier.
func (n *Neighborhood) ID() string { return n.id }

// Name returns the display name.
func (n *Neighborhood) Name() string { return n.name }

// City returns the city.
func (n *Neighborhood) City() string { return n.city }

// State returns the state code.
func (n *Neighborhood) State() string { return n.state }

// Score returns the rating for an attribute, 0 for unknown attributes.
func (n *Neighborhood) Score(a attribute.Attribute) int { return n.scores[a] }

// Description returns the free-text description.
func (n *Neighborhood) Description() string { return n.description }

// Highlights returns a copy of the ordered highlight list.
func (n *Neighborhood) Highlights() []string { return cloneStrings(n.highlights) }

func cloneScores(m map[attribute.Attribute]int) map[attribute.Attribute]int {
	out := make(map[attribute.Attribute]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
