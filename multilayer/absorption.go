package multilayer

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Absorption is the result of LayerAbsorption.
type Absorption struct {
	Coefficients

	// Absorbed is len_wl × num_layers: the fraction of the incident power absorbed in each
	// layer. The incidence medium is reported as non-absorbing, so column 0 is zero.
	Absorbed *mat.Dense
}

// LayerAbsorption computes the Abeles coefficients and the fraction of the incoming power
// absorbed in every layer, from the Poynting flux at each interface.
func LayerAbsorption(s *Structure, wavelengths []float64, incidence float64, pol Polarization) (*Absorption, error) {
	wl, err := s.checkVectorized(wavelengths)
	if err != nil {
		return nil, err
	}
	n, g := len(wl), s.NumLayers()
	if g == 1 {
		return &Absorption{Coefficients: *passThrough(n), Absorbed: mat.NewDense(n, 1, nil)}, nil
	}

	fl := newFields(s, wl, incidence, pol)
	c, partial := abeles(fl, s.phaseThickness())

	flux := make([][]float64, g)
	for k := range partial {
		e, dze := interfaceField(partial[k], c.Reflection, fl.gf[0])
		flux[k] = poyntingFlux(e, dze, fl.gf[0], pol)
	}
	e, dze := outgoingField(c.Transmission, fl.gf[g-1])
	flux[g-1] = poyntingFlux(e, dze, fl.gf[0], pol)

	absorbed := mat.NewDense(n, g, nil)
	for k := 1; k < g; k++ {
		for i := 0; i < n; i++ {
			absorbed.Set(i, k, math.Abs(flux[k-1][i]-flux[k][i]))
		}
	}
	return &Absorption{Coefficients: *c, Absorbed: absorbed}, nil
}

// interfaceField returns the tangential field and its normal derivative below the layers
// whose product is a, given the solved reflection coefficient.
func interfaceField(a batch2x2, r, gf0 []complex128) (e, dze []complex128) {
	n := len(r)
	e = make([]complex128, n)
	dze = make([]complex128, n)
	for i := 0; i < n; i++ {
		up := r[i] + 1
		down := 1i * gf0[i] * (r[i] - 1)
		e[i] = a[0][0][i]*up + a[0][1][i]*down
		dze[i] = a[1][0][i]*up + a[1][1][i]*down
	}
	return e, dze
}

// outgoingField is the field leaving the stack through the substrate: (t, -i·gf·t).
func outgoingField(t, gfLast []complex128) (e, dze []complex128) {
	e = append([]complex128(nil), t...)
	dze = make([]complex128, len(t))
	for i := range t {
		dze[i] = -1i * gfLast[i] * t[i]
	}
	return e, dze
}

// poyntingFlux is the normal energy flux normalized by the incident one.
func poyntingFlux(e, dze, gf0 []complex128, pol Polarization) []float64 {
	out := make([]float64, len(e))
	for i := range e {
		if pol == TE {
			out[i] = real(-1i * e[i] * cmplx.Conj(dze[i]) / gf0[i])
		} else {
			out[i] = real(1i * cmplx.Conj(e[i]) * dze[i] / gf0[i])
		}
	}
	return out
}
