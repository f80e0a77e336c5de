package main

import (
	"fmt"
	"image"
	"math"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"gonum.org/v1/gonum/floats"

	"github.com/bob-anderson-ok/MultilayerOptics/multilayer"
	"github.com/bob-anderson-ok/MultilayerOptics/spectrum"
)

// !!!!! This MUST match the app name given in the run configuration !!!!!
const version = "1_0_0"

// result gathers what one run computed, ready for plotting and export.
type result struct {
	wavelengths []float64
	coeffs      *multilayer.Coefficients
	absorption  *multilayer.Absorption // nil unless compute_absorption_bool is set
	angular     *multilayer.Sweep      // nil unless an angular group is given
}

func main() {

	programStart := time.Now()

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: MultilayerApp <parameter-file>")
		os.Exit(1)
	}

	path := args[1]

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w\n", path, err))
		os.Exit(2)
	}

	// Parse json(5) data into a generic container
	jsonTable, err := spectrum.ParseParameterFile(data)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w\n", path, err))
		os.Exit(3)
	}

	var sim spectrum.Simulation
	msg, ok := spectrum.ValidateJsonFileAndFillSimulation(jsonTable, &sim)
	if !ok {
		fmt.Println(msg)
		os.Exit(4)
	}

	// Check for user wanting printout of complete jsonTable
	if sim.ShowInput {
		fmt.Printf("%s", "\nPrintout of  complete jsonTable contents...\n")
		fmt.Println(string(data))
	}

	fmt.Printf("\nVersion %s\n\n", version)

	// Materials given by table_file are read now
	start := time.Now()
	err = sim.LoadMaterialTables()
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read a material table failed: %w\n", err))
		os.Exit(5)
	}

	s, err := sim.Structure()
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tThe structure is invalid: %w\n", err))
		os.Exit(6)
	}
	fmt.Printf("Structure with %d layers built in %s\n", s.NumLayers(), time.Since(start))

	if sim.NumPoints < 1 {
		fmt.Println(fmt.Errorf("\n\tnum_points must be at least 1."))
		os.Exit(7)
	}

	res, err := compute(&sim, s)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tComputation failed: %w", err))
		os.Exit(8)
	}
	report(&sim, res)

	// Spectrometer resolution
	if sim.InstrumentFwhm > 0 && len(res.wavelengths) > 1 {
		start = time.Now()
		step := res.wavelengths[1] - res.wavelengths[0]
		res.coeffs = spectrum.SmoothCoefficients(res.coeffs, step, sim.InstrumentFwhm)
		if res.absorption != nil {
			res.absorption = &multilayer.Absorption{
				Coefficients: *res.coeffs,
				Absorbed:     spectrum.SmoothAbsorbed(res.absorption.Absorbed, step, sim.InstrumentFwhm),
			}
		}
		fmt.Printf("Smoothing with a %g %s instrument function took %s\n", sim.InstrumentFwhm, sim.Unit, time.Since(start))
	}

	if sim.OutputCsv != "" {
		df, err := spectrum.Frame("wavelength", res.wavelengths, res.coeffs, res.absorption, sim.LayerNames())
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tBuilding the output table failed: %w", err))
			os.Exit(9)
		}
		err = spectrum.WriteCSVFile(sim.OutputCsv, df)
		if err != nil {
			fmt.Println(fmt.Errorf("writing of %q failed: %w", sim.OutputCsv, err))
			os.Exit(10)
		}
		fmt.Printf("Wrote %d rows to %s\n", df.Nrow(), sim.OutputCsv)
	}

	images, err := makePlots(&sim, res)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tPlotting failed: %w", err))
		os.Exit(11)
	}

	elapsed := time.Since(programStart)
	fmt.Printf("\nTotal program run time is %s\n", elapsed)

	if sim.WindowSizePixels > 0 && len(images) > 0 {
		showWindows(&sim, images)
	}
}

// compute runs the formalism requested in the parameter file, then the angular sweep.
func compute(sim *spectrum.Simulation, s *multilayer.Structure) (*result, error) {
	res := &result{wavelengths: sim.Wavelengths()}
	incidence := sim.IncidenceRadians()

	start := time.Now()
	var err error
	switch {
	case sim.ComputeAbsorption:
		res.absorption, err = multilayer.LayerAbsorption(s, res.wavelengths, incidence, sim.Polarization)
		if err == nil {
			res.coeffs = &res.absorption.Coefficients
		}
	case sim.Formalism == "A":
		res.coeffs, err = multilayer.TransferMatrixCoefficients(s, res.wavelengths, incidence, sim.Polarization)
	default:
		res.coeffs, err = multilayer.ScatteringCoefficients(s, res.wavelengths, incidence, sim.Polarization)
	}
	if err != nil {
		return nil, err
	}
	fmt.Printf("Calculation of %d wavelengths took %s\n", len(res.wavelengths), time.Since(start))

	if sim.AngularGiven {
		start = time.Now()
		res.angular, err = multilayer.Angular(s, sim.AngularWavelength, sim.Polarization,
			sim.ThetaMinDegrees, sim.ThetaMaxDegrees, sim.AngularNumPoints)
		if err != nil {
			return nil, fmt.Errorf("angular sweep: %w", err)
		}
		fmt.Printf("Calculation of %d angles took %s\n", len(res.angular.Axis), time.Since(start))
	}
	return res, nil
}

func report(sim *spectrum.Simulation, res *result) {
	c := res.coeffs
	iMin, iMax := floats.MinIdx(c.Reflectance), floats.MaxIdx(c.Reflectance)
	fmt.Printf("\nReflectance ranges from %0.4f at %g %s to %0.4f at %g %s\n",
		c.Reflectance[iMin], res.wavelengths[iMin], sim.Unit,
		c.Reflectance[iMax], res.wavelengths[iMax], sim.Unit)
	fmt.Printf("Mean transmittance is %0.4f\n", floats.Sum(c.Transmittance)/float64(len(c.Transmittance)))

	if res.absorption != nil {
		names := sim.LayerNames()
		_, cols := res.absorption.Absorbed.Dims()
		for k := 1; k < cols; k++ {
			peak := 0.0
			for i := range res.wavelengths {
				peak = math.Max(peak, res.absorption.Absorbed.At(i, k))
			}
			fmt.Printf("  layer %d (%s) absorbs up to %0.4f\n", k, names[k], peak)
		}
	}
	fmt.Println()
}

type namedImage struct {
	title string
	img   image.Image
}

// makePlots renders the spectrum, absorption and angular plots, saving each as a png file.
func makePlots(sim *spectrum.Simulation, res *result) ([]namedImage, error) {
	const wPx, hPx = 1200, 500
	var images []namedImage

	base := sim.Title
	if base == "" {
		base = "Multilayer stack"
	}
	title := fmt.Sprintf("%s (%s, %g°)", base, sim.Polarization, sim.IncidenceDegrees)

	p, err := spectrum.PlotSpectrum(title, res.wavelengths, res.coeffs, sim.Unit)
	if err != nil {
		return nil, err
	}
	if err := spectrum.SavePlot(p, wPx, hPx, "spectrum.png"); err != nil {
		return nil, fmt.Errorf("writing of %q failed: %w", "spectrum.png", err)
	}
	images = append(images, namedImage{"Reflectance and transmittance", spectrum.RenderImage(p, wPx, hPx)})

	if res.absorption != nil {
		p, err := spectrum.PlotAbsorption(title, res.wavelengths, res.absorption, sim.LayerNames(), sim.Unit)
		if err != nil {
			return nil, err
		}
		if err := spectrum.SavePlot(p, wPx, hPx, "absorption.png"); err != nil {
			return nil, fmt.Errorf("writing of %q failed: %w", "absorption.png", err)
		}
		images = append(images, namedImage{"Absorption per layer", spectrum.RenderImage(p, wPx, hPx)})
	}

	if res.angular != nil {
		angTitle := fmt.Sprintf("%s at %g %s (%s)", base, sim.AngularWavelength, sim.Unit, sim.Polarization)
		p, err := spectrum.PlotAngular(angTitle, res.angular)
		if err != nil {
			return nil, err
		}
		if err := spectrum.SavePlot(p, wPx, hPx, "angular.png"); err != nil {
			return nil, fmt.Errorf("writing of %q failed: %w", "angular.png", err)
		}
		images = append(images, namedImage{"Angular response", spectrum.RenderImage(p, wPx, hPx)})
	}
	return images, nil
}

func showWindows(sim *spectrum.Simulation, images []namedImage) {
	// We supply an ID (hopefully unique) because we may need to use the preferences API
	myApp := app.NewWithID("com.gmail.ok.anderson.bob.multilayer")

	width := float32(sim.WindowSizePixels) * 2
	height := float32(sim.WindowSizePixels)

	var first fyne.Window
	for _, ni := range images {
		plotImg := canvas.NewImageFromImage(ni.img)
		plotImg.FillMode = canvas.ImageFillContain
		plotImg.SetMinSize(fyne.NewSize(width, height))

		w := myApp.NewWindow(ni.title)
		w.SetContent(container.NewStack(plotImg))
		w.Resize(fyne.NewSize(width, height))
		if first == nil {
			first = w
			w.CenterOnScreen()
			continue
		}
		w.Show()
	}
	first.ShowAndRun()
}
