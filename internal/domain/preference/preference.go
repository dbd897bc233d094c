package preference

import (
	"math"

	"github.com/kailas-cloud/hoodmatch/internal/domain"
	"github.com/kailas-cloud/hoodmatch/internal/domain/attribute"
)

// SumField names the whole vector in errors about the total weight.
const SumField = "preferences"

// Preferences is a validated preference vector: relative importance per attribute.
type Preferences struct {
	values map[attribute.Attribute]float64
	sum    float64
	// max and scaled keep Weight finite when sum overflows float64.
	max    float64
	scaled float64
}

// New validates and creates Preferences.
// Values must be finite and non-negative; at least one must be positive.
// Missing attributes are rejected, checked in attribute.All() order.
func New(values map[attribute.Attribute]float64) (Preferences, error) {
	clean := make(map[attribute.Attribute]float64, len(values))
	var sum, peak float64
	for _, a := range attribute.All() {
		v, ok := values[a]
		if !ok {
			return Preferences{}, domain.NewFieldError(string(a), "is required")
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Preferences{}, domain.NewFieldError(string(a), "must be a finite number")
		}
		if v < 0 {
			return Preferences{}, domain.NewFieldError(string(a), "must not be negative")
		}
		clean[a] = v
		sum += v
		peak = math.Max(peak, v)
	}
	if peak <= 0 {
		return Preferences{}, domain.NewFieldError(SumField, "at least one preference must be greater than zero")
	}
	var scaled float64
	for _, a := range attribute.All() {
		scaled += clean[a] / peak
	}
	return Preferences{values: clean, sum: sum, max: peak, scaled: scaled}, nil
}

// Equal returns preferences with every attribute set to the same importance.
func Equal() Preferences {
	values := make(map[attribute.Attribute]float64)
	for _, a := range attribute.All() {
		values[a] = 1
	}
	n := float64(len(values))
	return Preferences{values: values, sum: n, max: 1, scaled: n}
}

// Value returns the raw importance for an attribute.
func (p *Preferences) Value(a attribute.Attribute) float64 { return p.values[a] }

// Sum returns the total of all importance values. It may be +Inf for huge inputs.
func (p *Preferences) Sum() float64 { return p.sum }

// Weight returns the normalized weight for an attribute. Weights sum to 1.
func (p *Preferences) Weight(a attribute.Attribute) float64 {
	return p.values[a] / p.max / p.scaled
}

// Weights returns the normalized weight of every attribute.
func (p *Preferences) Weights() map[attribute.Attribute]float64 {
	out := make(map[attribute.Attribute]float64, len(p.values))
	for a := range p.values {
		out[a] = p.Weight(a)
	}
	return out
}
