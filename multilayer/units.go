package multilayer

import "fmt"

// nanometersPer maps a length unit to the number of nanometers it holds.
var nanometersPer = map[string]float64{
	"nm":       1,
	"um":       1e3,
	"µm":       1e3,
	"micron":   1e3,
	"mm":       1e6,
	"cm":       1e7,
	"m":        1e9,
	"pm":       1e-3,
	"A":        0.1,
	"angstrom": 0.1,
}

// UnitScale returns the factor converting a length in unit to nanometers.
// An empty unit means nanometers.
func UnitScale(unit string) (float64, error) {
	if unit == "" {
		return 1, nil
	}
	scale, ok := nanometersPer[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return scale, nil
}

// ToNanometers returns a new slice holding values converted from unit to nm.
// The input slice is never modified.
func ToNanometers(values []float64, unit string) ([]float64, error) {
	scale, err := UnitScale(unit)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * scale
	}
	return out, nil
}
