// Example program demonstrating how to use the multilayer package to:
// 1. Describe a dielectric Bragg mirror on glass
// 2. Compute its spectrum with the scattering matrix and Abeles formalisms
// 3. Compute the absorption of a gold film added under the mirror
// 4. Plot the spectra with the spectrum package
//
// Usage:
//
//	go run main.go
//
// The plots are written to bragg_spectrum.png and bragg_absorption.png in the current directory.
package main

import (
	"fmt"
	"log"
	"math"
	"math/cmplx"
	"time"

	"github.com/bob-anderson-ok/MultilayerOptics/multilayer"
	"github.com/bob-anderson-ok/MultilayerOptics/spectrum"
)

const (
	centerNm = 600.0 // Wavelength at which every layer is a quarter wave thick
	pairs    = 8
)

func main() {
	fmt.Println("Multilayer Example")
	fmt.Println("==================")

	materials := []multilayer.Material{
		multilayer.NewIndex(1),    // air
		multilayer.NewIndex(2.3),  // TiO2
		multilayer.NewIndex(1.45), // SiO2
		multilayer.NewIndex(1.52), // glass
		// gold
		multilayer.Drude{EpsInf: 1, PlasmaWavelength: 137, DampingWavelength: 17700},
	}
	names := []string{"air"}
	layers := []int{0}
	thickness := []float64{0}
	for i := 0; i < pairs; i++ {
		layers = append(layers, 1, 2)
		thickness = append(thickness, centerNm/(4*2.3), centerNm/(4*1.45))
		names = append(names, "TiO2", "SiO2")
	}
	layers = append(layers, 3)
	thickness = append(thickness, 0)
	names = append(names, "glass")

	mirror, err := multilayer.NewStructure(materials, layers, thickness, "nm")
	if err != nil {
		log.Fatalf("Failed to build the mirror: %v", err)
	}
	fmt.Printf("\nBragg mirror: %d pairs, %d layers\n", pairs, mirror.NumLayers())

	wavelengths := multilayer.Linspace(400, 900, 501)
	incidence := 20 * math.Pi / 180

	start := time.Now()
	s, err := multilayer.ScatteringCoefficients(mirror, wavelengths, incidence, multilayer.TE)
	if err != nil {
		log.Fatalf("Scattering matrix computation failed: %v", err)
	}
	fmt.Printf("Scattering matrix spectrum (%d wavelengths) took %s\n", len(wavelengths), time.Since(start))

	start = time.Now()
	a, err := multilayer.TransferMatrixCoefficients(mirror, wavelengths, incidence, multilayer.TE)
	if err != nil {
		log.Fatalf("Abeles computation failed: %v", err)
	}
	fmt.Printf("Abeles spectrum took %s\n", time.Since(start))

	worst := 0.0
	for i := range wavelengths {
		worst = math.Max(worst, cmplx.Abs(s.Reflection[i]-a.Reflection[i]))
	}
	fmt.Printf("Largest difference between the two formalisms: %.2e\n", worst)

	fmt.Println("\nSample spectrum:")
	for i := 0; i < len(wavelengths); i += 50 {
		fmt.Printf("  %6.1f nm  R = %.4f  T = %.4f\n", wavelengths[i], s.Reflectance[i], s.Transmittance[i])
	}

	p, err := spectrum.PlotSpectrum("Bragg mirror at 20° (TE)", wavelengths, s, "nm")
	if err != nil {
		log.Fatalf("Could not make the spectrum plot: %v", err)
	}
	outputPlot := "bragg_spectrum.png"
	if err := spectrum.SavePlot(p, 1200, 500, outputPlot); err != nil {
		log.Printf("Could not save the spectrum plot: %v\n", err)
	} else {
		fmt.Printf("\nSaved spectrum plot to %s\n", outputPlot)
	}

	// Same mirror with a 30 nm gold film between the last SiO2 layer and the glass
	layers = append(layers[:len(layers)-1], 4, 3)
	thickness = append(thickness[:len(thickness)-1], 30, 0)
	names = append(names[:len(names)-1], "gold", "glass")
	lossy, err := multilayer.NewStructure(materials, layers, thickness, "nm")
	if err != nil {
		log.Fatalf("Failed to build the lossy mirror: %v", err)
	}

	start = time.Now()
	abs, err := multilayer.LayerAbsorption(lossy, wavelengths, incidence, multilayer.TE)
	if err != nil {
		log.Fatalf("Absorption computation failed: %v", err)
	}
	fmt.Printf("\nAbsorption computation took %s\n", time.Since(start))

	goldColumn := lossy.NumLayers() - 2
	for i := 0; i < len(wavelengths); i += 100 {
		fmt.Printf("  %6.1f nm  absorbed in gold = %.4f\n", wavelengths[i], abs.Absorbed.At(i, goldColumn))
	}

	p, err = spectrum.PlotAbsorption("Bragg mirror on gold", wavelengths, abs, names, "nm")
	if err != nil {
		log.Fatalf("Could not make the absorption plot: %v", err)
	}
	outputPlot = "bragg_absorption.png"
	if err := spectrum.SavePlot(p, 1200, 500, outputPlot); err != nil {
		log.Printf("Could not save the absorption plot: %v\n", err)
	} else {
		fmt.Printf("Saved absorption plot to %s\n", outputPlot)
	}

	fmt.Println("\nDone!")
}
