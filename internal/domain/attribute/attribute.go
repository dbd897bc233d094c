package attribute

// Attribute is one of the five lifestyle dimensions a neighborhood is rated on.
type Attribute string

// Attribute constants. Values double as JSON field names.
const (
	Safety         Attribute = "safety"
	Affordability  Attribute = "affordability"
	Walkability    Attribute = "walkability"
	SchoolQuality  Attribute = "schoolQuality"
	ParksTransport Attribute = "parksTransport"
)

// Rating bounds for neighborhood attribute scores.
const (
	MinRating = 1
	MaxRating = 10
)

var all = [...]Attribute{Safety, Affordability, Walkability, SchoolQuality, ParksTransport}

// All returns every attribute in canonical order.
// Validation and scoring iterate in this order, so error messages name the first bad field.
func All() []Attribute {
	out := make([]Attribute, len(all))
	copy(out, all[:])
	return out
}

// IsValid checks if the attribute is one of the supported values.
func (a Attribute) IsValid() bool {
	for _, v := range all {
		if v == a {
			return true
		}
	}
	return false
}
