package neighborhood

import (
	"github.com/kailas-cloud/hoodmatch/internal/domain/attribute"
	domnb "github.com/kailas-cloud/hoodmatch/internal/domain/neighborhood"
)

// datasetFile is the on-disk YAML layout.
type datasetFile struct {
	Neighborhoods []record `yaml:"neighborhoods"`
}

// record mirrors one YAML entry. Ratings are pointers so a missing key is distinguishable from 0.
type record struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	City           string   `yaml:"city"`
	State          string   `yaml:"state"`
	Safety         *int     `yaml:"safety"`
	Affordability  *int     `yaml:"affordability"`
	Walkability    *int     `yaml:"walkability"`
	SchoolQuality  *int     `yaml:"schoolQuality"`
	ParksTransport *int     `yaml:"parksTransport"`
	Description    string   `yaml:"description"`
	Highlights     []string `yaml:"highlights"`
}

func (r *record) toDomain() (domnb.Neighborhood, error) {
	scores := make(map[attribute.Attribute]int, 5)
	set := func(a attribute.Attribute, v *int) {
		if v != nil {
			scores[a] = *v
		}
	}
	set(attribute.Safety, r.Safety)
	set(attribute.Affordability, r.Affordability)
	set(attribute.Walkability, r.Walkability)
	set(attribute.SchoolQuality, r.SchoolQuality)
	set(attribute.ParksTransport, r.ParksTransport)

	//nolint:wrapcheck // caller adds dataset context
	return domnb.New(r.ID, r.Name, r.City, r.State, scores, r.Description, r.Highlights)
}
