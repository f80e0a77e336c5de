package spectrum_test

import (
	"fmt"
	"log"
	"os"

	"github.com/bob-anderson-ok/MultilayerOptics/multilayer"
	"github.com/bob-anderson-ok/MultilayerOptics/spectrum"
)

// Example demonstrates how the MultilayerApp uses the spectrum package to:
// 1. Validate a parameter file and build the structure
// 2. Compute and smooth a reflection spectrum
// 3. Export it as CSV
func Example() {
	parameters := `{
		title: "Antireflection coating",
		materials: [
			{name: "air", index: 1},
			{name: "MgF2", index: 1.38},
			{name: "glass", index: 1.52},
		],
		layers: [["air", 0], ["MgF2", 100], ["glass", 0]],
		wavelength_min: 400,
		wavelength_max: 800,
		num_points: 5,
		instrument_fwhm: 20,
	}`

	jsonTable, err := spectrum.ParseParameterFile([]byte(parameters))
	if err != nil {
		log.Fatalf("Format error: %v", err)
	}

	var sim spectrum.Simulation
	msg, ok := spectrum.ValidateJsonFileAndFillSimulation(jsonTable, &sim)
	if !ok {
		log.Fatal(msg)
	}
	fmt.Println(msg)
	fmt.Printf("%s: %v in %s, %s polarization\n", sim.Title, sim.LayerNames(), sim.Unit, sim.Polarization)

	s, err := sim.Structure()
	if err != nil {
		log.Fatalf("Failed to build the structure: %v", err)
	}

	wavelengths := sim.Wavelengths()
	c, err := multilayer.ScatteringCoefficients(s, wavelengths, sim.IncidenceRadians(), sim.Polarization)
	if err != nil {
		log.Fatalf("Failed to compute coefficients: %v", err)
	}
	smoothed := spectrum.SmoothCoefficients(c, wavelengths[1]-wavelengths[0], sim.InstrumentFwhm)
	fmt.Printf("Computed %d wavelengths, smoothed %d\n", len(c.Reflectance), len(smoothed.Reflectance))

	df, err := spectrum.Frame("wavelength", wavelengths, smoothed, nil, nil)
	if err != nil {
		log.Fatalf("Failed to build the data frame: %v", err)
	}
	fmt.Println(df.Names())
	fmt.Printf("%d rows, %d columns\n", df.Nrow(), df.Ncol())

	if err := spectrum.WriteCSVFile(os.DevNull, df); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}

	// Output:
	// No problem found in json file
	// Antireflection coating: [air MgF2 glass] in nm, TE polarization
	// Computed 5 wavelengths, smoothed 5
	// [wavelength r_re r_im t_re t_im R T]
	// 5 rows, 7 columns
}
