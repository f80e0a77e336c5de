package spectrum_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bob-anderson-ok/MultilayerOptics/multilayer"
	"github.com/bob-anderson-ok/MultilayerOptics/spectrum"
)

const braggFile = `{
	// Quarter-wave mirror centered at 600 nm
	title: "Bragg mirror",
	unit: "nm",
	materials: [
		{name: "air", index: 1},
		{name: "TiO2", index: 2.3},
		{name: "SiO2", index: [1.45, 0]},
		{name: "gold", drude: {eps_inf: 1, plasma_wavelength: 137, damping_wavelength: 17700}},
	],
	layers: [["air", 0], ["TiO2", 65.2], ["SiO2", 103.4], [1, 65.2], ["gold", 200]],
	polarization: "TM",
	incidence_degrees: 30,
	wavelength_min: 400,
	wavelength_max: 800,
	num_points: 101,
	formalism: "A",
	compute_absorption_bool: true,
	instrument_fwhm: 5,
	output_csv: "bragg.csv",
	window_size_pixels: 0,
	angular: {wavelength: 600, theta_max_degrees: 80},
}`

func parse(t *testing.T, data string) map[string]interface{} {
	t.Helper()
	table, err := spectrum.ParseParameterFile([]byte(data))
	require.NoError(t, err)
	return table
}

func TestValidateFillsSimulation(t *testing.T) {
	var sim spectrum.Simulation
	msg, ok := spectrum.ValidateJsonFileAndFillSimulation(parse(t, braggFile), &sim)
	require.True(t, ok, msg)
	assert.Equal(t, "No problem found in json file", msg)

	assert.Equal(t, "Bragg mirror", sim.Title)
	assert.False(t, sim.ShowInput)
	assert.Equal(t, "nm", sim.Unit)
	assert.Equal(t, multilayer.TM, sim.Polarization)
	assert.Equal(t, 30.0, sim.IncidenceDegrees)
	assert.InDelta(t, math.Pi/6, sim.IncidenceRadians(), 1e-15)
	assert.Equal(t, 101, sim.NumPoints)
	assert.Equal(t, "A", sim.Formalism)
	assert.True(t, sim.ComputeAbsorption)
	assert.Equal(t, 5.0, sim.InstrumentFwhm)
	assert.Equal(t, "bragg.csv", sim.OutputCsv)
	assert.Equal(t, 0, sim.WindowSizePixels)

	require.Len(t, sim.Materials, 4)
	assert.Equal(t, multilayer.NewIndex(2.3), sim.Materials[1].Material)
	assert.Equal(t, multilayer.Drude{EpsInf: 1, PlasmaWavelength: 137, DampingWavelength: 17700}, sim.Materials[3].Material)
	assert.Equal(t, []int{0, 1, 2, 1, 3}, sim.LayerType)
	assert.Equal(t, []float64{0, 65.2, 103.4, 65.2, 200}, sim.Thickness)
	assert.Equal(t, []string{"air", "TiO2", "SiO2", "TiO2", "gold"}, sim.LayerNames())

	wl := sim.Wavelengths()
	require.Len(t, wl, 101)
	assert.Equal(t, 400.0, wl[0])
	assert.Equal(t, 800.0, wl[100])

	assert.True(t, sim.AngularGiven)
	assert.Equal(t, 600.0, sim.AngularWavelength)
	assert.Equal(t, 0.0, sim.ThetaMinDegrees)
	assert.Equal(t, 80.0, sim.ThetaMaxDegrees)
	assert.Equal(t, 90, sim.AngularNumPoints)

	s, err := sim.Structure()
	require.NoError(t, err)
	assert.Equal(t, 5, s.NumLayers())
}

func TestValidateDefaults(t *testing.T) {
	var sim spectrum.Simulation
	msg, ok := spectrum.ValidateJsonFileAndFillSimulation(parse(t, `{
		"materials": [{"index": 1}, {"epsilon": [2.25, 0.1], "mu": 1.2}],
		"layers": [[0, 0], [1, 0]],
		"wavelength_min": 0.4,
		"wavelength_max": 0.8,
		"unit": "um"
	}`), &sim)
	require.True(t, ok, msg)

	assert.Equal(t, multilayer.TE, sim.Polarization)
	assert.Equal(t, "S", sim.Formalism)
	assert.Equal(t, 200, sim.NumPoints)
	assert.Equal(t, 500, sim.WindowSizePixels)
	assert.False(t, sim.ComputeAbsorption)
	assert.False(t, sim.AngularGiven)
	assert.Equal(t, "material 1", sim.Materials[1].Name)
	assert.Equal(t, multilayer.Constant{Epsilon: 2.25 + 0.1i, Mu: 1.2}, sim.Materials[1].Material)
}

func TestValidateDrudeUsesFileUnit(t *testing.T) {
	var sim spectrum.Simulation
	msg, ok := spectrum.ValidateJsonFileAndFillSimulation(parse(t, `{
		"unit": "um",
		"materials": [{"index": 1}, {"drude": {"plasma_wavelength": 0.137, "damping_wavelength": 17.7}}],
		"layers": [[0, 0], [1, 0]],
		"wavelength_min": 0.4, "wavelength_max": 0.8
	}`), &sim)
	require.True(t, ok, msg)
	d, ok := sim.Materials[1].Material.(multilayer.Drude)
	require.True(t, ok)
	assert.InDelta(t, 137, d.PlasmaWavelength, 1e-9)
	assert.InDelta(t, 17700, d.DampingWavelength, 1e-9)
	assert.Equal(t, 1.0, d.EpsInf)
}

func TestValidateInlineTable(t *testing.T) {
	var sim spectrum.Simulation
	msg, ok := spectrum.ValidateJsonFileAndFillSimulation(parse(t, `{
		"materials": [{"index": 1}, {"name": "film", "n_k_table": [[400, 1.5, 0.1], [500, 1.4, 0]]}],
		"layers": [[0, 0], ["film", 0]],
		"wavelength_min": 400, "wavelength_max": 500
	}`), &sim)
	require.True(t, ok, msg)
	tab, ok := sim.Materials[1].Material.(multilayer.Tabulated)
	require.True(t, ok)
	assert.Equal(t, []float64{400, 500}, tab.Wavelength)
	assert.Equal(t, []float64{1.5, 1.4}, tab.N)
	assert.Equal(t, []float64{0.1, 0}, tab.K)
}

func TestValidateReportsProblems(t *testing.T) {
	const stack = `"materials": [{"index": 1}], "layers": [[0, 0]]`
	cases := []struct {
		name string
		file string
		want string
	}{
		{"missing wavelength_min", `{` + stack + `, "wavelength_max": 800}`, "wavelength_min: not found"},
		{"missing wavelength_max", `{` + stack + `, "wavelength_min": 400}`, "wavelength_max: not found"},
		{"wavelength type", `{` + stack + `, "wavelength_min": "400", "wavelength_max": 800}`, "wavelength_min: is not a float64"},
		{"title type", `{` + stack + `, "title": 3, "wavelength_min": 400, "wavelength_max": 800}`, "title: is not a string"},
		{"show input type", `{` + stack + `, "show_input_bool": 1, "wavelength_min": 400, "wavelength_max": 800}`, "show_input_bool: is not a bool"},
		{"polarization", `{` + stack + `, "polarization": "X", "wavelength_min": 400, "wavelength_max": 800}`, `polarization: "X" is not TE or TM`},
		{"formalism", `{` + stack + `, "formalism": "T", "wavelength_min": 400, "wavelength_max": 800}`, `formalism: "T" is not S or A`},
		{"unit", `{` + stack + `, "unit": "inch", "wavelength_min": 400, "wavelength_max": 800}`, `unit: unknown length unit: "inch"`},
		{"no materials", `{"layers": [[0, 0]], "wavelength_min": 400, "wavelength_max": 800}`, "materials: not found"},
		{"no layers", `{"materials": [{"index": 1}], "wavelength_min": 400, "wavelength_max": 800}`, "layers: not found"},
		{"unknown layer material", `{"materials": [{"index": 1}], "layers": [["glass", 0]], "wavelength_min": 400, "wavelength_max": 800}`, "layers[0]: unknown material glass"},
		{"material out of range", `{"materials": [{"index": 1}], "layers": [[2, 0]], "wavelength_min": 400, "wavelength_max": 800}`, "layers[0]: unknown material 2"},
		{"bad pair", `{"materials": [{"index": 1}], "layers": [[0]], "wavelength_min": 400, "wavelength_max": 800}`, "layers[0]: is not a [material, thickness] pair"},
		{"two kinds", `{"materials": [{"index": 1, "epsilon": 2}], "layers": [[0, 0]], "wavelength_min": 400, "wavelength_max": 800}`, "materials[0]: needs exactly one of index, epsilon, drude, uniaxial, table_file, n_k_table"},
		{"zero mu", `{"materials": [{"epsilon": 2, "mu": 0}], "layers": [[0, 0]], "wavelength_min": 400, "wavelength_max": 800}`, "materials[0].mu: must not be zero"},
		{"drude without plasma", `{"materials": [{"drude": {"damping_wavelength": 1}}], "layers": [[0, 0]], "wavelength_min": 400, "wavelength_max": 800}`, "materials[0].drude.plasma_wavelength: not found"},
		{"reversed range", `{` + stack + `, "wavelength_min": 800, "wavelength_max": 400}`, "wavelength_min/wavelength_max: need 0 < wavelength_min <= wavelength_max"},
		{"angular without wavelength", `{` + stack + `, "wavelength_min": 400, "wavelength_max": 800, "angular": {}}`, "angular.wavelength: not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sim spectrum.Simulation
			msg, ok := spectrum.ValidateJsonFileAndFillSimulation(parse(t, tc.file), &sim)
			assert.False(t, ok)
			assert.Equal(t, tc.want, msg)
		})
	}
}

func TestUniaxialMaterialIsRejectedBySolvers(t *testing.T) {
	var sim spectrum.Simulation
	msg, ok := spectrum.ValidateJsonFileAndFillSimulation(parse(t, `{
		"materials": [{"index": 1}, {"uniaxial": [1.5, 1.6]}],
		"layers": [[0, 0], [1, 0]],
		"wavelength_min": 400, "wavelength_max": 500
	}`), &sim)
	require.True(t, ok, msg)
	s, err := sim.Structure()
	require.NoError(t, err)
	_, err = multilayer.ScatteringCoefficients(s, sim.Wavelengths(), 0, sim.Polarization)
	assert.ErrorIs(t, err, multilayer.ErrAnisotropic)
}

func TestLoadMaterialTables(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "film.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("wavelength,n,k\n0.5,1.4,0\n0.4,1.5,0.1\n"), 0o644))

	var sim spectrum.Simulation
	msg, ok := spectrum.ValidateJsonFileAndFillSimulation(parse(t, `{
		"unit": "um",
		"materials": [{"index": 1}, {"name": "film", "table_file": "`+filepath.ToSlash(csvPath)+`"}],
		"layers": [[0, 0], ["film", 0.1], [0, 0]],
		"wavelength_min": 0.4, "wavelength_max": 0.5
	}`), &sim)
	require.True(t, ok, msg)

	_, err := sim.Structure()
	assert.Error(t, err, "table not loaded yet")

	require.NoError(t, sim.LoadMaterialTables())
	tab, ok := sim.Materials[1].Material.(multilayer.Tabulated)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{400, 500}, tab.Wavelength, 1e-9)

	s, err := sim.Structure()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 100, 0}, s.Thickness(), 1e-9)
}

func TestLoadMaterialTablesMissingFile(t *testing.T) {
	sim := spectrum.Simulation{
		Unit:      "nm",
		Materials: []spectrum.MaterialEntry{{Name: "film", TableFile: filepath.Join(t.TempDir(), "none.csv")}},
	}
	err := sim.LoadMaterialTables()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
