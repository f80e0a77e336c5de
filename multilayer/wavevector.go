package multilayer

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// fields holds the per-layer quantities of one vectorized solve. Slices indexed by layer
// hold one value per wavelength, so gamma[k][i] is the vertical wavevector of layer k at
// wavelength i. Shapes never change during a solve:
//
//	k0, alpha      len_wl
//	gamma, f, gf   num_layers × len_wl
type fields struct {
	k0    []float64
	alpha []complex128   // horizontal wavevector, identical in every layer
	gamma [][]complex128 // vertical wavevector, branch resolved
	f     [][]complex128 // Mu for TE, Epsilon for TM
	gf    [][]complex128 // layer admittance gamma/f
}

func (fl *fields) numLayers() int { return len(fl.gamma) }

func (fl *fields) numWavelengths() int { return len(fl.k0) }

// newFields evaluates the materials at the given wavelengths (nm) and resolves the
// vertical wavevector of every layer.
func newFields(s *Structure, wavelengths []float64, incidence float64, pol Polarization) *fields {
	epsilon, mu := s.Polarizability(wavelengths)
	return wavevectors(epsilon, mu, s.LayerType, wavelengths, incidence, pol)
}

// wavevectors implements the branch rules on (len_wl × num_materials) material arrays.
// Shapes are not validated: epsilon and mu must have one row per wavelength and one
// column per material referenced by layerType.
func wavevectors(epsilon, mu *mat.CDense, layerType []int, wavelengths []float64, incidence float64, pol Polarization) *fields {
	n, g := len(wavelengths), len(layerType)
	fl := &fields{
		k0:    make([]float64, n),
		alpha: make([]complex128, n),
		gamma: make([][]complex128, g),
		f:     make([][]complex128, g),
		gf:    make([][]complex128, g),
	}

	first, last := layerType[0], layerType[g-1]
	sinInc := complex(math.Sin(incidence), 0)
	for i, wl := range wavelengths {
		fl.k0[i] = 2 * math.Pi / wl
		fl.alpha[i] = cmplx.Sqrt(epsilon.At(i, first)*mu.At(i, first)) * complex(fl.k0[i], 0) * sinInc
	}

	for k, t := range layerType {
		gamma := make([]complex128, n)
		f := make([]complex128, n)
		for i := range wavelengths {
			e, m := epsilon.At(i, t), mu.At(i, t)
			gamma[i] = verticalWavevector(e, m, fl.k0[i], fl.alpha[i])
			if pol == TE {
				f[i] = m
			} else {
				f[i] = e
			}
		}
		fl.gamma[k], fl.f[k] = gamma, f
	}

	// Incidence medium: negative index media take the opposite branch.
	for i := range wavelengths {
		fl.gamma[0][i] = incidenceBranch(epsilon.At(i, first), mu.At(i, first), fl.gamma[0][i])
	}

	// Interior layers: evanescent waves must decay along the propagation direction.
	for k := 1; k < g-1; k++ {
		for i := range wavelengths {
			fl.gamma[k][i] = decayingBranch(fl.gamma[k][i])
		}
	}

	// Substrate: outgoing wave condition, recomputed from alpha.
	for i := range wavelengths {
		e, m := epsilon.At(i, last), mu.At(i, last)
		fl.gamma[g-1][i] = outgoingBranch(e, m, verticalWavevector(e, m, fl.k0[i], fl.alpha[i]))
	}

	for k := range layerType {
		gf := make([]complex128, n)
		for i := range gf {
			gf[i] = fl.gamma[k][i] / fl.f[k][i]
		}
		fl.gf[k] = gf
	}
	return fl
}

// verticalWavevector is the principal root of eps*mu*k0^2 - alpha^2.
func verticalWavevector(epsilon, mu complex128, k0 float64, alpha complex128) complex128 {
	kk := complex(k0*k0, 0)
	return cmplx.Sqrt(epsilon*mu*kk - alpha*alpha)
}

func negativeIndex(epsilon, mu complex128) bool {
	return real(epsilon) < 0 && real(mu) < 0
}

func incidenceBranch(epsilon, mu, gamma complex128) complex128 {
	if negativeIndex(epsilon, mu) {
		return -gamma
	}
	return gamma
}

func decayingBranch(gamma complex128) complex128 {
	if imag(gamma) < 0 {
		return -gamma
	}
	return gamma
}

func outgoingBranch(epsilon, mu, gamma complex128) complex128 {
	if negativeIndex(epsilon, mu) && real(gamma) != 0 {
		return -gamma
	}
	return gamma
}
