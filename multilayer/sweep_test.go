package multilayer_test

import (
	"math"
	"testing"

	"github.com/bob-anderson-ok/MultilayerOptics/multilayer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	assert.Nil(t, multilayer.Linspace(1, 2, 0))
	assert.Nil(t, multilayer.Linspace(1, 2, -3))
	assert.Equal(t, []float64{1}, multilayer.Linspace(1, 2, 1))
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, multilayer.Linspace(0, 1, 5))
	assert.Equal(t, []float64{10, 5, 0}, multilayer.Linspace(10, 0, 3))
}

func TestSpectrumMatchesVectorized(t *testing.T) {
	s := lossyStack(t)
	sw, err := multilayer.Spectrum(s, 0.2, multilayer.TM, 400, 900, 26)
	require.NoError(t, err)
	require.Len(t, sw.Axis, 26)
	assert.Equal(t, 400.0, sw.Axis[0])
	assert.Equal(t, 900.0, sw.Axis[25])

	c, err := multilayer.ScatteringCoefficients(s, sw.Axis, 0.2, multilayer.TM)
	require.NoError(t, err)
	for i := range sw.Axis {
		assertComplexInDelta(t, c.Reflection[i], sw.Reflection[i], 1e-12)
		assertComplexInDelta(t, c.Transmission[i], sw.Transmission[i], 1e-12)
		assert.InDelta(t, c.Reflectance[i], sw.Reflectance[i], 1e-12)
		assert.InDelta(t, c.Transmittance[i], sw.Transmittance[i], 1e-12)
	}
}

func TestAngularSweepUsesDegrees(t *testing.T) {
	s := airGlass(t)
	sw, err := multilayer.Angular(s, 600, multilayer.TM, 0, 89, 90)
	require.NoError(t, err)
	require.Len(t, sw.Axis, 90)
	assert.Equal(t, 0.0, sw.Axis[0])
	assert.Equal(t, 89.0, sw.Axis[89])

	// TM reflectance vanishes at the Brewster angle, 56.31° for n = 1.5.
	brewster := math.Atan(1.5) * 180 / math.Pi
	minAt := 0
	for i, r := range sw.Reflectance {
		if r < sw.Reflectance[minAt] {
			minAt = i
		}
	}
	assert.InDelta(t, brewster, sw.Axis[minAt], 0.5)
	assert.Less(t, sw.Reflectance[minAt], 1e-4)

	for i, deg := range sw.Axis {
		r, tt, R, T, err := multilayer.Coefficient(s, 600, deg*math.Pi/180, multilayer.TM)
		require.NoError(t, err)
		assert.Equal(t, r, sw.Reflection[i])
		assert.Equal(t, tt, sw.Transmission[i])
		assert.Equal(t, R, sw.Reflectance[i])
		assert.Equal(t, T, sw.Transmittance[i])
	}
}

func TestSweepErrors(t *testing.T) {
	s := airGlass(t)
	_, err := multilayer.Spectrum(s, 0, multilayer.TE, 400, 800, 0)
	assert.ErrorIs(t, err, multilayer.ErrNoPoints)
	_, err = multilayer.Angular(s, 600, multilayer.TE, 0, 80, 0)
	assert.ErrorIs(t, err, multilayer.ErrNoPoints)

	aniso, err := multilayer.NewStructure(
		[]multilayer.Material{multilayer.NewIndex(1), multilayer.Uniaxial{Ordinary: 1.5, Extraordinary: 1.7}},
		[]int{0, 1}, []float64{0, 0}, "nm",
	)
	require.NoError(t, err)
	_, err = multilayer.Spectrum(aniso, 0, multilayer.TE, 400, 800, 5)
	assert.ErrorIs(t, err, multilayer.ErrAnisotropic)
}

func TestCoefficientOfSingleMedium(t *testing.T) {
	s, err := multilayer.NewStructure([]multilayer.Material{multilayer.NewIndex(1.2)}, []int{0}, []float64{0}, "nm")
	require.NoError(t, err)
	r, tt, R, T, err := multilayer.Coefficient(s, 500, 0.4, multilayer.TE)
	require.NoError(t, err)
	assert.Equal(t, complex128(0), r)
	assert.Equal(t, complex128(1), tt)
	assert.Equal(t, 0.0, R)
	assert.Equal(t, 1.0, T)
}
