// Package multilayer computes reflection, transmission and per-layer absorption of a
// planar multilayer stack illuminated by a monochromatic plane wave, for a whole array
// of wavelengths at once.
//
// Two independent formalisms are provided: a scattering matrix method, where layer and
// interface matrices are cascaded with the Redheffer star product, and the Abeles transfer
// matrix method, whose partial products are also used to reconstruct the internal field
// and derive the power absorbed in each layer.
package multilayer

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrAnisotropic is returned when a solver is asked to handle an anisotropic stack.
	ErrAnisotropic = errors.New("anisotropic structures are not implemented")

	// ErrNoLayers is returned for a structure without layers.
	ErrNoLayers = errors.New("structure has no layers")

	// ErrLayerType is returned when a layer refers to a material index out of range.
	ErrLayerType = errors.New("layer refers to an unknown material")

	// ErrThickness is returned when there is not exactly one thickness per layer.
	ErrThickness = errors.New("one thickness per layer is required")

	// ErrMaterial is returned when a material fails its own Validate check.
	ErrMaterial = errors.New("invalid material")

	// ErrUnknownUnit is returned for a length unit missing from the conversion table.
	ErrUnknownUnit = errors.New("unknown length unit")

	// ErrNoWavelengths is returned when a solver is called with an empty wavelength slice.
	ErrNoWavelengths = errors.New("no wavelengths given")

	// ErrNoPoints is returned when a sweep is asked for fewer than one point.
	ErrNoPoints = errors.New("a sweep needs at least one point")
)

// Polarization selects which of Mu (TE) or Epsilon (TM) drives the boundary conditions.
type Polarization int

const (
	TE Polarization = iota
	TM
)

func (p Polarization) String() string {
	if p == TE {
		return "TE"
	}
	return "TM"
}

// Structure describes the stack: the distinct materials, which material each layer is
// made of (top to bottom) and the thickness of each layer. The first and last layers are
// semi-infinite; the thickness of the first one is ignored.
type Structure struct {
	Materials   []Material
	LayerType   []int
	Unit        string // unit of thicknesses and wavelengths supplied by the caller
	Anisotropic bool

	thickness []float64 // nm, private copy
}

// NewStructure validates the description and returns a Structure. Thicknesses are given
// in unit and copied, so later changes to the caller's slice have no effect.
func NewStructure(materials []Material, layerType []int, thickness []float64, unit string) (*Structure, error) {
	if len(layerType) == 0 {
		return nil, ErrNoLayers
	}
	if len(thickness) != len(layerType) {
		return nil, fmt.Errorf("%w: %d layers, %d thicknesses", ErrThickness, len(layerType), len(thickness))
	}
	for i, t := range layerType {
		if t < 0 || t >= len(materials) {
			return nil, fmt.Errorf("%w: layer %d uses material %d of %d", ErrLayerType, i, t, len(materials))
		}
	}
	for i, m := range materials {
		if v, ok := m.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("material %d: %w", i, err)
			}
		}
	}
	thicknessNm, err := ToNanometers(thickness, unit)
	if err != nil {
		return nil, err
	}

	s := &Structure{
		Materials: append([]Material(nil), materials...),
		LayerType: append([]int(nil), layerType...),
		Unit:      unit,
		thickness: thicknessNm,
	}
	for _, m := range materials {
		if a, ok := m.(interface{ Anisotropic() bool }); ok && a.Anisotropic() {
			s.Anisotropic = true
		}
	}
	return s, nil
}

// NumLayers returns the number of layers, both half-spaces included.
func (s *Structure) NumLayers() int {
	return len(s.LayerType)
}

// Thickness returns a copy of the layer thicknesses in nm.
func (s *Structure) Thickness() []float64 {
	return append([]float64(nil), s.thickness...)
}

// phaseThickness is the thickness used by the solvers: a copy whose first entry is zeroed
// so that the phase reference sits at the top of the first interface.
func (s *Structure) phaseThickness() []float64 {
	h := s.Thickness()
	h[0] = 0
	return h
}

// Polarizability evaluates every material at every wavelength (nm).
// Both returned matrices are len(wavelengths) × len(Materials).
func (s *Structure) Polarizability(wavelengths []float64) (epsilon, mu *mat.CDense) {
	rows, cols := len(wavelengths), len(s.Materials)
	epsilon = mat.NewCDense(rows, cols, nil)
	mu = mat.NewCDense(rows, cols, nil)
	for j, m := range s.Materials {
		for i, wl := range wavelengths {
			epsilon.Set(i, j, m.Permittivity(wl))
			mu.Set(i, j, m.Permeability(wl))
		}
	}
	return epsilon, mu
}

// checkVectorized applies the input contract shared by the three vectorized operations
// and returns the wavelengths converted to nm.
func (s *Structure) checkVectorized(wavelengths []float64) ([]float64, error) {
	if s.Anisotropic {
		return nil, ErrAnisotropic
	}
	if s.NumLayers() == 0 {
		return nil, ErrNoLayers
	}
	if len(wavelengths) == 0 {
		return nil, ErrNoWavelengths
	}
	return ToNanometers(wavelengths, s.Unit)
}
