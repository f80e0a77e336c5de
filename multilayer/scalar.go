package multilayer

import (
	"math"
	"math/cmplx"
)

// Coefficient computes r, t, R and T at a single wavelength (in the structure's unit) with
// the scattering matrix formalism. It does the same work as ScatteringCoefficients one
// wavelength at a time and is used by the Spectrum and Angular sweeps.
func Coefficient(s *Structure, wavelength, incidence float64, pol Polarization) (r, t complex128, R, T float64, err error) {
	if s.Anisotropic {
		return 0, 0, 0, 0, ErrAnisotropic
	}
	g := s.NumLayers()
	if g == 0 {
		return 0, 0, 0, 0, ErrNoLayers
	}
	scale, err := UnitScale(s.Unit)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if g == 1 {
		return 0, 1, 0, 1, nil
	}
	wl := wavelength * scale
	thickness := s.phaseThickness()

	epsilon := make([]complex128, len(s.Materials))
	mu := make([]complex128, len(s.Materials))
	for j, m := range s.Materials {
		epsilon[j] = m.Permittivity(wl)
		mu[j] = m.Permeability(wl)
	}

	first, last := s.LayerType[0], s.LayerType[g-1]
	k0 := 2 * math.Pi / wl
	alpha := cmplx.Sqrt(epsilon[first]*mu[first]) * complex(k0, 0) * complex(math.Sin(incidence), 0)

	gamma := make([]complex128, g)
	gf := make([]complex128, g)
	f := make([]complex128, g)
	for k, typ := range s.LayerType {
		gamma[k] = verticalWavevector(epsilon[typ], mu[typ], k0, alpha)
		if pol == TE {
			f[k] = mu[typ]
		} else {
			f[k] = epsilon[typ]
		}
	}
	gamma[0] = incidenceBranch(epsilon[first], mu[first], gamma[0])
	for k := 1; k < g-1; k++ {
		gamma[k] = decayingBranch(gamma[k])
	}
	gamma[g-1] = outgoingBranch(epsilon[last], mu[last], verticalWavevector(epsilon[last], mu[last], k0, alpha))
	for k := range gf {
		gf[k] = gamma[k] / f[k]
	}

	total := matrix2x2{{0, 1}, {1, 0}}
	for k := 0; k < g-1; k++ {
		p := cmplx.Exp(1i * gamma[k] * complex(thickness[k], 0))
		total = cascade(total, matrix2x2{{0, p}, {p, 0}})
		total = cascade(total, interfaceMatrix(gf[k], gf[k+1]))
	}

	r, t = total[0][0], total[1][0]
	R = squaredModulus(r)
	flux := gamma[g-1] * f[0] / (gamma[0] * f[g-1])
	T = real(complex(squaredModulus(t), 0) * flux)
	return r, t, R, T, nil
}
