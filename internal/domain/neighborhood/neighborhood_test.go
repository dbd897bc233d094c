package neighborhood

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/hoodmatch/internal/domain/attribute"
)

func validScores() map[attribute.Attribute]int {
	return map[attribute.Attribute]int{
		attribute.Safety:         8,
		attribute.Affordability:  3,
		attribute.Walkability:    10,
		attribute.SchoolQuality:  7,
		attribute.ParksTransport: 9,
	}
}

func TestNew_Valid(t *testing.T) {
	n, err := New("1", "Greenwich Village", "New York", "NY", validScores(),
		"historic", []string{"parks", "transit"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.ID() != "1" {
		t.Errorf("ID() = %q", n.ID())
	}
	if n.Name() != "Greenwich Village" || n.City() != "New York" || n.State() != "NY" {
		t.Errorf("unexpected identity fields: %q %q %q", n.Name(), n.City(), n.State())
	}
	if n.Score(attribute.Walkability) != 10 {
		t.Errorf("Score(walkability) = %d, want 10", n.Score(attribute.Walkability))
	}
	if got := n.Highlights(); len(got) != 2 || got[0] != "parks" {
		t.Errorf("Highlights() = %v", got)
	}
}

func TestNew_ClonesInputs(t *testing.T) {
	scores := validScores()
	highlights := []string{"a"}

	n, _ := New("1", "name", "c", "s", scores, "d", highlights)

	scores[attribute.Safety] = 1
	highlights[0] = "mutated"

	if n.Score(attribute.Safety) != 8 {
		t.Error("scores mutation leaked into neighborhood")
	}
	if n.Highlights()[0] != "a" {
		t.Error("highlights mutation leaked into neighborhood")
	}

	h := n.Highlights()
	h[0] = "mutated"
	if n.Highlights()[0] != "a" {
		t.Error("Highlights() must return a copy")
	}
}

func TestNew_Invalid(t *testing.T) {
	outOfRange := validScores()
	outOfRange[attribute.SchoolQuality] = 11

	zero := validScores()
	zero[attribute.Safety] = 0

	missing := validScores()
	delete(missing, attribute.ParksTransport)

	unknown := validScores()
	unknown["nightlife"] = 5

	tests := []struct {
		name    string
		id      string
		title   string
		scores  map[attribute.Attribute]int
		wantSub string
	}{
		{"empty id", "", "x", validScores(), "ID is required"},
		{"empty name", "1", "", validScores(), "name is required"},
		{"above max", "1", "x", outOfRange, "schoolQuality must be between 1 and 10"},
		{"below min", "1", "x", zero, "safety must be between 1 and 10"},
		{"missing attribute", "1", "x", missing, "parksTransport is required"},
		{"unknown attribute", "1", "x", unknown, "unknown attribute"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.id, tc.title, "c", "s", tc.scores, "", nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.wantSub)
			}
		})
	}
}
