package multilayer

import "math/cmplx"

// TransferMatrixCoefficients computes r, t, R and T for every wavelength with the Abeles
// transfer matrix formalism. It gives the same results as ScatteringCoefficients but can
// overflow for thick absorbing layers.
func TransferMatrixCoefficients(s *Structure, wavelengths []float64, incidence float64, pol Polarization) (*Coefficients, error) {
	wl, err := s.checkVectorized(wavelengths)
	if err != nil {
		return nil, err
	}
	if s.NumLayers() == 1 {
		return passThrough(len(wl)), nil
	}
	fl := newFields(s, wl, incidence, pol)
	c, _ := abeles(fl, s.phaseThickness())
	return c, nil
}

// abeles multiplies the layer matrices of the g-1 finite layers in stack order and returns
// the coefficients together with the partial products: partial[k] is the product of the
// matrices of layers 0..k, partial[g-2] is the global matrix.
func abeles(fl *fields, thickness []float64) (*Coefficients, []batch2x2) {
	n, g := fl.numWavelengths(), fl.numLayers()

	partial := make([]batch2x2, g-1)
	for k := 0; k < g-1; k++ {
		m := layerTransfer(fl.gamma[k], fl.gf[k], thickness[k])
		if k == 0 {
			partial[k] = m
			continue
		}
		partial[k] = mulBatch(m, partial[k-1])
	}

	global := partial[g-2]
	gf0, gfLast := fl.gf[0], fl.gf[g-1]
	c := newCoefficients(n)
	for i := 0; i < n; i++ {
		a, b := global[0][0][i], global[0][1][i]
		cc, d := global[1][0][i], global[1][1][i]
		amb := a - 1i*gf0[i]*b
		apb := a + 1i*gf0[i]*b
		cmd := cc - 1i*gf0[i]*d
		cpd := cc + 1i*gf0[i]*d

		r := -(cmd + 1i*gfLast[i]*amb) / (cpd + 1i*gfLast[i]*apb)
		t := a*(r+1) + 1i*gf0[i]*b*(r-1)
		c.Reflection[i] = r
		c.Transmission[i] = t
		c.Reflectance[i] = squaredModulus(r)
		c.Transmittance[i] = real(complex(squaredModulus(t), 0) * gfLast[i] / gf0[i])
	}
	return c, partial
}

// layerTransfer is the Abeles matrix of one layer:
//
//	[ cos(γh)      -sin(γh)/gf ]
//	[ gf·sin(γh)    cos(γh)    ]
func layerTransfer(gamma, gf []complex128, thickness float64) batch2x2 {
	b := newBatch(len(gamma))
	h := complex(thickness, 0)
	for i := range gamma {
		c := cmplx.Cos(gamma[i] * h)
		s := cmplx.Sin(gamma[i] * h)
		b.set(i, matrix2x2{
			{c, -s / gf[i]},
			{gf[i] * s, c},
		})
	}
	return b
}
