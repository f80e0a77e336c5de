package multilayer

import (
	"math/cmplx"
)

// Coefficients are the amplitude and energy coefficients of a stack, one entry per wavelength.
//
// R and T only carry their usual meaning when the substrate is lossless.
type Coefficients struct {
	Reflection    []complex128 // r, phase origin at the first interface
	Transmission  []complex128 // t
	Reflectance   []float64    // R = |r|^2
	Transmittance []float64    // T, flux normalized
}

func newCoefficients(n int) *Coefficients {
	return &Coefficients{
		Reflection:    make([]complex128, n),
		Transmission:  make([]complex128, n),
		Reflectance:   make([]float64, n),
		Transmittance: make([]float64, n),
	}
}

// passThrough is the answer for a stack made of a single medium: nothing is reflected.
func passThrough(n int) *Coefficients {
	c := newCoefficients(n)
	for i := 0; i < n; i++ {
		c.Transmission[i] = 1
		c.Transmittance[i] = 1
	}
	return c
}

func squaredModulus(z complex128) float64 {
	a := cmplx.Abs(z)
	return a * a
}

// ScatteringCoefficients computes r, t, R and T for every wavelength with the scattering
// matrix formalism. Wavelengths are in the structure's unit; incidence is in radians.
func ScatteringCoefficients(s *Structure, wavelengths []float64, incidence float64, pol Polarization) (*Coefficients, error) {
	wl, err := s.checkVectorized(wavelengths)
	if err != nil {
		return nil, err
	}
	if s.NumLayers() == 1 {
		return passThrough(len(wl)), nil
	}
	fl := newFields(s, wl, incidence, pol)
	return scattering(fl, s.phaseThickness()), nil
}

// scattering cascades interface and layer scattering matrices from the top of the stack
// down to the last interface. The phase of the last layer plays no part in r or t.
func scattering(fl *fields, thickness []float64) *Coefficients {
	n, g := fl.numWavelengths(), fl.numLayers()

	total := fillBatch(n, matrix2x2{{0, 1}, {1, 0}})
	for k := 0; k < g-1; k++ {
		total = cascadeBatch(total, layerScattering(fl.gamma[k], thickness[k]))
		total = cascadeBatch(total, interfaceScattering(fl.gf[k], fl.gf[k+1]))
	}

	c := newCoefficients(n)
	for i := 0; i < n; i++ {
		r, t := total[0][0][i], total[1][0][i]
		c.Reflection[i] = r
		c.Transmission[i] = t
		c.Reflectance[i] = squaredModulus(r)
		flux := fl.gamma[g-1][i] * fl.f[0][i] / (fl.gamma[0][i] * fl.f[g-1][i])
		c.Transmittance[i] = real(complex(squaredModulus(t), 0) * flux)
	}
	return c
}

// layerScattering is the pure phase delay across a layer of the given thickness.
func layerScattering(gamma []complex128, thickness float64) batch2x2 {
	b := newBatch(len(gamma))
	h := complex(thickness, 0)
	for i, g := range gamma {
		p := cmplx.Exp(1i * g * h)
		b[0][1][i] = p
		b[1][0][i] = p
	}
	return b
}

// interfaceScattering is the scattering matrix of the interface between a layer with
// admittance b1 and the one below with admittance b2. It is singular when b1+b2 == 0.
func interfaceScattering(b1, b2 []complex128) batch2x2 {
	b := newBatch(len(b1))
	for i := range b1 {
		b.set(i, interfaceMatrix(b1[i], b2[i]))
	}
	return b
}

func interfaceMatrix(b1, b2 complex128) matrix2x2 {
	sum := b1 + b2
	return matrix2x2{
		{(b1 - b2) / sum, 2 * b2 / sum},
		{2 * b1 / sum, (b2 - b1) / sum},
	}
}
