package multilayer

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sweep holds coefficients computed along a wavelength or angle axis.
type Sweep struct {
	Axis []float64
	Coefficients
}

// Linspace returns n evenly spaced values from start to end inclusive.
func Linspace(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, end)
}

// Spectrum calls Coefficient for nPoints wavelengths between wlMin and wlMax
// (structure unit). Incidence is in radians.
func Spectrum(s *Structure, incidence float64, pol Polarization, wlMin, wlMax float64, nPoints int) (*Sweep, error) {
	wl := Linspace(wlMin, wlMax, nPoints)
	if len(wl) == 0 {
		return nil, ErrNoPoints
	}
	sw := &Sweep{Axis: wl, Coefficients: *newCoefficients(len(wl))}
	for i, w := range wl {
		r, t, R, T, err := Coefficient(s, w, incidence, pol)
		if err != nil {
			return nil, err
		}
		sw.Reflection[i], sw.Transmission[i] = r, t
		sw.Reflectance[i], sw.Transmittance[i] = R, T
	}
	return sw, nil
}

// Angular calls Coefficient for nPoints incidence angles between thetaMin and thetaMax.
// Unlike everywhere else, angles are in degrees here; Axis holds them in degrees too.
func Angular(s *Structure, wavelength float64, pol Polarization, thetaMin, thetaMax float64, nPoints int) (*Sweep, error) {
	theta := Linspace(thetaMin, thetaMax, nPoints)
	if len(theta) == 0 {
		return nil, ErrNoPoints
	}
	sw := &Sweep{Axis: theta, Coefficients: *newCoefficients(len(theta))}
	for i, deg := range theta {
		r, t, R, T, err := Coefficient(s, wavelength, deg*math.Pi/180, pol)
		if err != nil {
			return nil, err
		}
		sw.Reflection[i], sw.Transmission[i] = r, t
		sw.Reflectance[i], sw.Transmittance[i] = R, T
	}
	return sw, nil
}
