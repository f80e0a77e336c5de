package multilayer_test

import (
	"testing"

	"github.com/bob-anderson-ok/MultilayerOptics/multilayer"
	"github.com/stretchr/testify/require"
)

// gold is a Drude approximation of gold in the visible.
var gold = multilayer.Drude{EpsInf: 1, PlasmaWavelength: 137, DampingWavelength: 17700}

func airGlass(t *testing.T) *multilayer.Structure {
	t.Helper()
	s, err := multilayer.NewStructure(
		[]multilayer.Material{multilayer.NewIndex(1), multilayer.NewIndex(1.5)},
		[]int{0, 1},
		[]float64{0, 0},
		"nm",
	)
	require.NoError(t, err)
	return s
}

// braggMirror builds air / (TiO2 / SiO2) x pairs / glass with quarter-wave layers at 600 nm.
func braggMirror(t *testing.T, pairs int) *multilayer.Structure {
	t.Helper()
	materials := []multilayer.Material{
		multilayer.NewIndex(1),
		multilayer.NewIndex(2.3),
		multilayer.NewIndex(1.45),
		multilayer.NewIndex(1.52),
	}
	layers := []int{0}
	thickness := []float64{0}
	for i := 0; i < pairs; i++ {
		layers = append(layers, 1, 2)
		thickness = append(thickness, 600/(4*2.3), 600/(4*1.45))
	}
	layers = append(layers, 3)
	thickness = append(thickness, 0)

	s, err := multilayer.NewStructure(materials, layers, thickness, "nm")
	require.NoError(t, err)
	return s
}

// lossyStack has a metallic film and an absorbing dielectric between glass and water.
func lossyStack(t *testing.T) *multilayer.Structure {
	t.Helper()
	s, err := multilayer.NewStructure(
		[]multilayer.Material{
			multilayer.NewIndex(1.5),
			gold,
			multilayer.NewIndex(2 + 0.1i),
			multilayer.NewIndex(1.33),
		},
		[]int{0, 1, 2, 1, 3},
		[]float64{1000, 30, 150, 10, 500},
		"nm",
	)
	require.NoError(t, err)
	return s
}

func wavelengths(min, max float64, n int) []float64 {
	return multilayer.Linspace(min, max, n)
}
