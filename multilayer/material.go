package multilayer

import (
	"fmt"
	"math/cmplx"
	"sort"
)

// Material is the dispersive optical response of a homogeneous medium.
// Wavelengths are always in nanometers.
type Material interface {
	Permittivity(wavelengthNm float64) complex128
	Permeability(wavelengthNm float64) complex128
}

// Constant is a non-dispersive medium. A zero Mu is read as 1 (non-magnetic).
type Constant struct {
	Epsilon complex128
	Mu      complex128
}

// NewIndex returns the non-magnetic medium with refractive index n (epsilon = n*n).
func NewIndex(n complex128) Constant {
	return Constant{Epsilon: n * n, Mu: 1}
}

func (c Constant) Permittivity(float64) complex128 { return c.Epsilon }

func (c Constant) Permeability(float64) complex128 {
	if c.Mu == 0 {
		return 1
	}
	return c.Mu
}

// Drude is the free-electron model of a metal written with wavelengths
// instead of frequencies:
//
//	eps(λ) = EpsInf - (λ/λp)^2 / (1 + i λ/λγ)
//
// where λp is the plasma wavelength and λγ the wavelength associated with the damping rate.
type Drude struct {
	EpsInf            float64
	PlasmaWavelength  float64 // nm
	DampingWavelength float64 // nm
}

func (d Drude) Permittivity(wavelengthNm float64) complex128 {
	x := wavelengthNm / d.PlasmaWavelength
	return complex(d.EpsInf, 0) - complex(x*x, 0)/complex(1, wavelengthNm/d.DampingWavelength)
}

func (d Drude) Permeability(float64) complex128 { return 1 }

// Tabulated is a measured refractive index n + ik, linearly interpolated between
// samples and clamped to the end values outside the table. A nil K is a lossless table.
type Tabulated struct {
	Wavelength []float64 // nm, ascending
	N          []float64
	K          []float64
}

// Validate checks that N, and K unless nil, have one value per wavelength.
func (t Tabulated) Validate() error {
	if len(t.N) != len(t.Wavelength) {
		return fmt.Errorf("%w: %d wavelengths, %d values of n", ErrMaterial, len(t.Wavelength), len(t.N))
	}
	if t.K != nil && len(t.K) != len(t.Wavelength) {
		return fmt.Errorf("%w: %d wavelengths, %d values of k", ErrMaterial, len(t.Wavelength), len(t.K))
	}
	return nil
}

func (t Tabulated) sample(i int) complex128 {
	if t.K == nil {
		return complex(t.N[i], 0)
	}
	return complex(t.N[i], t.K[i])
}

func (t Tabulated) index(wavelengthNm float64) complex128 {
	last := len(t.Wavelength) - 1
	if last < 0 {
		return 1
	}
	if wavelengthNm <= t.Wavelength[0] {
		return t.sample(0)
	}
	if wavelengthNm >= t.Wavelength[last] {
		return t.sample(last)
	}

	// First sample at or above the requested wavelength
	i := sort.SearchFloat64s(t.Wavelength, wavelengthNm)
	if t.Wavelength[i] == wavelengthNm {
		return t.sample(i)
	}
	w0, w1 := t.Wavelength[i-1], t.Wavelength[i]
	frac := complex((wavelengthNm-w0)/(w1-w0), 0)
	return t.sample(i-1)*(1-frac) + t.sample(i)*frac
}

func (t Tabulated) Permittivity(wavelengthNm float64) complex128 {
	n := t.index(wavelengthNm)
	return n * n
}

func (t Tabulated) Permeability(float64) complex128 { return 1 }

// Function is a non-magnetic medium whose permittivity is computed by a caller supplied function.
type Function func(wavelengthNm float64) complex128

func (f Function) Permittivity(wavelengthNm float64) complex128 { return f(wavelengthNm) }

func (f Function) Permeability(float64) complex128 { return 1 }

// Uniaxial is a birefringent medium with ordinary and extraordinary indices.
// Only its ordinary response is exposed through Material; a Structure holding
// one is flagged anisotropic and the vectorized solvers refuse it.
type Uniaxial struct {
	Ordinary      complex128
	Extraordinary complex128
}

func (u Uniaxial) Permittivity(float64) complex128 { return u.Ordinary * u.Ordinary }

func (u Uniaxial) Permeability(float64) complex128 { return 1 }

// Anisotropic reports whether the two indices differ.
func (u Uniaxial) Anisotropic() bool {
	return cmplx.Abs(u.Ordinary-u.Extraordinary) > 0
}
