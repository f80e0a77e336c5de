// Package spectrum holds everything the MultilayerApp needs around the multilayer solvers:
// parameter file validation, tabulated materials, instrument smoothing, CSV export and plots.
package spectrum

import (
	"fmt"
	"math"

	json "github.com/KevinWang15/go-json5"

	"github.com/bob-anderson-ok/MultilayerOptics/multilayer"
)

// Simulation is filled from a json5 parameter file by ValidateJsonFileAndFillSimulation.
// All lengths are in Unit.
type Simulation struct {
	Title             string
	ShowInput         bool
	Unit              string
	Materials         []MaterialEntry
	LayerType         []int
	Thickness         []float64
	Polarization      multilayer.Polarization
	IncidenceDegrees  float64
	WavelengthMin     float64
	WavelengthMax     float64
	NumPoints         int
	Formalism         string // "S" (scattering matrix) or "A" (Abeles)
	ComputeAbsorption bool
	InstrumentFwhm    float64
	AngularGiven      bool
	AngularWavelength float64
	ThetaMinDegrees   float64
	ThetaMaxDegrees   float64
	AngularNumPoints  int
	OutputCsv         string
	WindowSizePixels  int
}

// MaterialEntry is one element of the materials array. Material is nil until the table
// named by TableFile has been loaded.
type MaterialEntry struct {
	Name      string
	Material  multilayer.Material
	TableFile string
}

// ParseParameterFile parses json(5) data into a generic container.
func ParseParameterFile(data []byte) (map[string]interface{}, error) {
	var jsonTable map[string]interface{}
	err := json.Unmarshal(data, &jsonTable)
	return jsonTable, err
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func ValidateJsonFileAndFillSimulation(jsonTable map[string]interface{}, sim *Simulation) (string, bool) {
	msg := "No problem found in json file" // Initialize msg to presumed success.

	showInput, ok := getLeafValue(jsonTable, "show_input_bool")
	if !ok {
		sim.ShowInput = false
	} else {
		sim.ShowInput, ok = showInput.(bool)
		if !ok {
			msg = "show_input_bool: is not a bool"
			return msg, false
		}
	}

	windowSize, ok := getLeafValue(jsonTable, "window_size_pixels")
	if !ok {
		sim.WindowSizePixels = 500 // Default to 500 pixels if this field is missing
	} else {
		wSize, ok := windowSize.(float64)
		if !ok {
			msg = "window_size_pixels: is not a float64"
			return msg, false
		}
		sim.WindowSizePixels = int(wSize)
	}

	title, ok := getLeafValue(jsonTable, "title")
	if ok {
		sim.Title, ok = title.(string)
		if !ok {
			msg = "title: is not a string"
			return msg, false
		}
	}

	sim.Unit = "nm"
	unit, ok := getLeafValue(jsonTable, "unit")
	if ok {
		sim.Unit, ok = unit.(string)
		if !ok {
			msg = "unit: is not a string"
			return msg, false
		}
	}
	scale, err := multilayer.UnitScale(sim.Unit)
	if err != nil {
		msg = fmt.Sprintf("unit: %v", err)
		return msg, false
	}

	polarization, ok := getLeafValue(jsonTable, "polarization")
	if !ok {
		sim.Polarization = multilayer.TE
	} else {
		pol, ok := polarization.(string)
		if !ok {
			msg = "polarization: is not a string"
			return msg, false
		}
		switch pol {
		case "TE", "te", "s":
			sim.Polarization = multilayer.TE
		case "TM", "tm", "p":
			sim.Polarization = multilayer.TM
		default:
			msg = fmt.Sprintf("polarization: %q is not TE or TM", pol)
			return msg, false
		}
	}

	incidence, ok := getLeafValue(jsonTable, "incidence_degrees")
	if ok { // Defaults to normal incidence
		sim.IncidenceDegrees, ok = incidence.(float64)
		if !ok {
			msg = "incidence_degrees: is not a float64"
			return msg, false
		}
	}

	wlMin, ok := getLeafValue(jsonTable, "wavelength_min")
	if !ok {
		msg = "wavelength_min: not found"
		return msg, false
	}
	sim.WavelengthMin, ok = wlMin.(float64)
	if !ok {
		msg = "wavelength_min: is not a float64"
		return msg, false
	}

	wlMax, ok := getLeafValue(jsonTable, "wavelength_max")
	if !ok {
		msg = "wavelength_max: not found"
		return msg, false
	}
	sim.WavelengthMax, ok = wlMax.(float64)
	if !ok {
		msg = "wavelength_max: is not a float64"
		return msg, false
	}

	if sim.WavelengthMin <= 0 || sim.WavelengthMax < sim.WavelengthMin {
		msg = "wavelength_min/wavelength_max: need 0 < wavelength_min <= wavelength_max"
		return msg, false
	}

	numPts, ok := getLeafValue(jsonTable, "num_points")
	if !ok {
		sim.NumPoints = 200
	} else {
		numberOfPoints, ok := numPts.(float64)
		if !ok {
			msg = "num_points: is not a float64"
			return msg, false
		}
		sim.NumPoints = int(numberOfPoints)
	}

	sim.Formalism = "S"
	formalism, ok := getLeafValue(jsonTable, "formalism")
	if ok {
		sim.Formalism, ok = formalism.(string)
		if !ok {
			msg = "formalism: is not a string"
			return msg, false
		}
		if sim.Formalism != "S" && sim.Formalism != "A" {
			msg = fmt.Sprintf("formalism: %q is not S or A", sim.Formalism)
			return msg, false
		}
	}

	absorption, ok := getLeafValue(jsonTable, "compute_absorption_bool")
	if ok {
		sim.ComputeAbsorption, ok = absorption.(bool)
		if !ok {
			msg = "compute_absorption_bool: is not a bool"
			return msg, false
		}
	}

	fwhm, ok := getLeafValue(jsonTable, "instrument_fwhm")
	if ok {
		sim.InstrumentFwhm, ok = fwhm.(float64)
		if !ok {
			msg = "instrument_fwhm: is not a float64"
			return msg, false
		}
	}

	outputCsv, ok := getLeafValue(jsonTable, "output_csv")
	if ok {
		sim.OutputCsv, ok = outputCsv.(string)
		if !ok {
			msg = "output_csv: is not a string"
			return msg, false
		}
	}

	materials, ok := getLeafValue(jsonTable, "materials")
	if !ok {
		msg = "materials: not found"
		return msg, false
	}
	materialList, ok := materials.([]interface{})
	if !ok || len(materialList) == 0 {
		msg = "materials: is not a non-empty array"
		return msg, false
	}
	sim.Materials = sim.Materials[:0]
	for i, m := range materialList {
		entry, msg, ok := parseMaterial(i, m, scale)
		if !ok {
			return msg, false
		}
		sim.Materials = append(sim.Materials, entry)
	}

	layers, ok := getLeafValue(jsonTable, "layers")
	if !ok {
		msg = "layers: not found"
		return msg, false
	}
	layerList, ok := layers.([]interface{})
	if !ok || len(layerList) == 0 {
		msg = "layers: is not a non-empty array"
		return msg, false
	}
	sim.LayerType, sim.Thickness = sim.LayerType[:0], sim.Thickness[:0]
	for i, l := range layerList {
		pair, ok := l.([]interface{})
		if !ok || len(pair) != 2 {
			msg = fmt.Sprintf("layers[%d]: is not a [material, thickness] pair", i)
			return msg, false
		}
		typ, ok := sim.materialIndex(pair[0])
		if !ok {
			msg = fmt.Sprintf("layers[%d]: unknown material %v", i, pair[0])
			return msg, false
		}
		thickness, ok := pair[1].(float64)
		if !ok {
			msg = fmt.Sprintf("layers[%d]: thickness is not a float64", i)
			return msg, false
		}
		sim.LayerType = append(sim.LayerType, typ)
		sim.Thickness = append(sim.Thickness, thickness)
	}

	// Check to see if an angular group is present --- it is optional
	_, ok = getLeafValue(jsonTable, "angular")
	sim.AngularGiven = ok

	if ok {
		v, ok := getLeafValue(jsonTable, "angular", "wavelength")
		if ok {
			value, ok := v.(float64)
			if ok {
				sim.AngularWavelength = value
			} else {
				msg = "angular.wavelength: is not a float64"
				return msg, false
			}
		} else {
			msg = "angular.wavelength: not found"
			return msg, false
		}

		sim.ThetaMinDegrees = 0
		v, ok = getLeafValue(jsonTable, "angular", "theta_min_degrees")
		if ok {
			value, ok := v.(float64)
			if ok {
				sim.ThetaMinDegrees = value
			} else {
				msg = "angular.theta_min_degrees: is not a float64"
				return msg, false
			}
		}

		sim.ThetaMaxDegrees = 89
		v, ok = getLeafValue(jsonTable, "angular", "theta_max_degrees")
		if ok {
			value, ok := v.(float64)
			if ok {
				sim.ThetaMaxDegrees = value
			} else {
				msg = "angular.theta_max_degrees: is not a float64"
				return msg, false
			}
		}

		sim.AngularNumPoints = 90
		v, ok = getLeafValue(jsonTable, "angular", "num_points")
		if ok {
			value, ok := v.(float64)
			if ok {
				sim.AngularNumPoints = int(value)
			} else {
				msg = "angular.num_points: is not a float64"
				return msg, false
			}
		}
	}

	return msg, true
}

// parseMaterial validates one element of the materials array. Exactly one of index, epsilon
// (with an optional mu), drude, uniaxial, table_file or n_k_table must be present.
func parseMaterial(i int, m interface{}, scale float64) (MaterialEntry, string, bool) {
	var entry MaterialEntry
	key := fmt.Sprintf("materials[%d]", i)

	table, ok := m.(map[string]interface{})
	if !ok {
		return entry, key + ": is not an object", false
	}

	entry.Name = fmt.Sprintf("material %d", i)
	name, ok := getLeafValue(table, "name")
	if ok {
		entry.Name, ok = name.(string)
		if !ok {
			return entry, key + ".name: is not a string", false
		}
	}

	given := 0
	for _, k := range []string{"index", "epsilon", "drude", "uniaxial", "table_file", "n_k_table"} {
		if _, ok := table[k]; ok {
			given++
		}
	}
	if given != 1 {
		return entry, key + ": needs exactly one of index, epsilon, drude, uniaxial, table_file, n_k_table", false
	}

	if v, ok := getLeafValue(table, "index"); ok {
		n, ok := complexValue(v)
		if !ok {
			return entry, key + ".index: is not a float64 or [n, k] pair", false
		}
		entry.Material = multilayer.NewIndex(n)
		return entry, "", true
	}

	if v, ok := getLeafValue(table, "epsilon"); ok {
		eps, ok := complexValue(v)
		if !ok {
			return entry, key + ".epsilon: is not a float64 or [re, im] pair", false
		}
		constant := multilayer.Constant{Epsilon: eps, Mu: 1}
		if v, ok := getLeafValue(table, "mu"); ok {
			constant.Mu, ok = complexValue(v)
			if !ok {
				return entry, key + ".mu: is not a float64 or [re, im] pair", false
			}
			if constant.Mu == 0 {
				return entry, key + ".mu: must not be zero", false
			}
		}
		entry.Material = constant
		return entry, "", true
	}

	if _, ok := getLeafValue(table, "drude"); ok {
		drude := multilayer.Drude{EpsInf: 1}
		if v, ok := getLeafValue(table, "drude", "eps_inf"); ok {
			drude.EpsInf, ok = v.(float64)
			if !ok {
				return entry, key + ".drude.eps_inf: is not a float64", false
			}
		}
		v, ok := getLeafValue(table, "drude", "plasma_wavelength")
		if !ok {
			return entry, key + ".drude.plasma_wavelength: not found", false
		}
		drude.PlasmaWavelength, ok = v.(float64)
		if !ok {
			return entry, key + ".drude.plasma_wavelength: is not a float64", false
		}
		v, ok = getLeafValue(table, "drude", "damping_wavelength")
		if !ok {
			return entry, key + ".drude.damping_wavelength: not found", false
		}
		drude.DampingWavelength, ok = v.(float64)
		if !ok {
			return entry, key + ".drude.damping_wavelength: is not a float64", false
		}
		drude.PlasmaWavelength *= scale
		drude.DampingWavelength *= scale
		entry.Material = drude
		return entry, "", true
	}

	if v, ok := getLeafValue(table, "uniaxial"); ok {
		pair, ok := v.([]interface{})
		if !ok || len(pair) != 2 {
			return entry, key + ".uniaxial: is not an [ordinary, extraordinary] pair", false
		}
		no, ok1 := complexValue(pair[0])
		ne, ok2 := complexValue(pair[1])
		if !ok1 || !ok2 {
			return entry, key + ".uniaxial: indices are not float64 or [n, k] pairs", false
		}
		entry.Material = multilayer.Uniaxial{Ordinary: no, Extraordinary: ne}
		return entry, "", true
	}

	if v, ok := getLeafValue(table, "table_file"); ok {
		entry.TableFile, ok = v.(string)
		if !ok {
			return entry, key + ".table_file: is not a string", false
		}
		return entry, "", true
	}

	v, _ := getLeafValue(table, "n_k_table")
	rows, ok := v.([]interface{})
	if !ok || len(rows) == 0 {
		return entry, key + ".n_k_table: is not a non-empty array", false
	}
	nk := make([][3]float64, len(rows))
	for r, row := range rows {
		values, ok := row.([]interface{})
		if !ok || len(values) != 3 {
			return entry, fmt.Sprintf("%s.n_k_table[%d]: is not a [wavelength, n, k] triple", key, r), false
		}
		for c := range values {
			nk[r][c], ok = values[c].(float64)
			if !ok {
				return entry, fmt.Sprintf("%s.n_k_table[%d]: is not a [wavelength, n, k] triple", key, r), false
			}
		}
	}
	tab, err := tabulatedFromRows(nk, scale)
	if err != nil {
		return entry, fmt.Sprintf("%s.n_k_table: %v", key, err), false
	}
	entry.Material = tab
	return entry, "", true
}

// complexValue accepts a plain number or a [re, im] pair.
func complexValue(v interface{}) (complex128, bool) {
	switch x := v.(type) {
	case float64:
		return complex(x, 0), true
	case []interface{}:
		if len(x) != 2 {
			return 0, false
		}
		re, ok1 := x[0].(float64)
		im, ok2 := x[1].(float64)
		return complex(re, im), ok1 && ok2
	}
	return 0, false
}

// materialIndex resolves a layer's material given by name or by position.
func (sim *Simulation) materialIndex(v interface{}) (int, bool) {
	switch x := v.(type) {
	case string:
		for i, m := range sim.Materials {
			if m.Name == x {
				return i, true
			}
		}
	case float64:
		i := int(x)
		if float64(i) == x && i >= 0 && i < len(sim.Materials) {
			return i, true
		}
	}
	return 0, false
}

// LoadMaterialTables reads every material given by table_file.
func (sim *Simulation) LoadMaterialTables() error {
	for i := range sim.Materials {
		entry := &sim.Materials[i]
		if entry.TableFile == "" || entry.Material != nil {
			continue
		}
		tab, err := LoadMaterialTableFile(entry.TableFile, sim.Unit)
		if err != nil {
			return fmt.Errorf("material %q: %w", entry.Name, err)
		}
		entry.Material = tab
	}
	return nil
}

// Structure builds the stack described by the parameter file.
func (sim *Simulation) Structure() (*multilayer.Structure, error) {
	materials := make([]multilayer.Material, len(sim.Materials))
	for i, m := range sim.Materials {
		if m.Material == nil {
			return nil, fmt.Errorf("material %q: table %q not loaded", m.Name, m.TableFile)
		}
		materials[i] = m.Material
	}
	return multilayer.NewStructure(materials, sim.LayerType, sim.Thickness, sim.Unit)
}

// LayerNames returns the material name of every layer, top to bottom.
func (sim *Simulation) LayerNames() []string {
	names := make([]string, len(sim.LayerType))
	for i, t := range sim.LayerType {
		names[i] = sim.Materials[t].Name
	}
	return names
}

// Wavelengths returns the NumPoints wavelengths of the spectrum, in Unit.
func (sim *Simulation) Wavelengths() []float64 {
	return multilayer.Linspace(sim.WavelengthMin, sim.WavelengthMax, sim.NumPoints)
}

func (sim *Simulation) IncidenceRadians() float64 {
	return sim.IncidenceDegrees * math.Pi / 180
}
