package spectrum

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"

	// Liberation fonts register automatically on import
	_ "gonum.org/v1/plot/font/liberation"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/bob-anderson-ok/MultilayerOptics/multilayer"
)

// StepTicks places a labeled tick every Step, starting at the first multiple of Step in range.
type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	if t.Step <= 0 {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for i := 0; ; i++ {
		v := start + float64(i)*t.Step
		if v > max+t.Step*1e-9 {
			break
		}
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

// niceStep returns 1, 2 or 5 times a power of ten, close to span/10.
func niceStep(span float64) float64 {
	if span <= 0 {
		return 0
	}
	raw := span / 10
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch r := raw / mag; {
	case r < 1.5:
		return mag
	case r < 3.5:
		return 2 * mag
	case r < 7.5:
		return 5 * mag
	}
	return 10 * mag
}

// newPlot returns an empty plot using Liberation Sans everywhere, with a grid.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()

	// Modify the font fields directly on existing styles
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)

	p.Legend.TextStyle.Font.Typeface = "Liberation"
	p.Legend.TextStyle.Font.Variant = "Sans"
	p.Legend.Top = true

	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid()) // grid + ticks
	return p
}

// energyAxes fixes the vertical axis to [0, 1] with a margin and picks the horizontal ticks.
func energyAxes(p *plot.Plot, axis []float64) {
	p.Y.Min = -0.05
	p.Y.Max = 1.05
	p.Y.Tick.Marker = StepTicks{Step: 0.1, Format: "%.1f"}
	if len(axis) > 1 {
		p.X.Tick.Marker = StepTicks{Step: niceStep(axis[len(axis)-1] - axis[0]), Format: "%g"}
	}
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

// PlotSpectrum draws reflectance and transmittance against wavelength (in unit).
func PlotSpectrum(title string, wavelengths []float64, c *multilayer.Coefficients, unit string) (*plot.Plot, error) {
	p := newPlot(title, fmt.Sprintf("Wavelength (%s)", unit), "Energy coefficient")
	energyAxes(p, wavelengths)
	err := plotutil.AddLines(p,
		"R", xys(wavelengths, c.Reflectance),
		"T", xys(wavelengths, c.Transmittance))
	if err != nil {
		return nil, err
	}
	return p, nil
}

// PlotAbsorption draws one line per layer below the incidence medium, plus the total 1-R-T.
func PlotAbsorption(title string, wavelengths []float64, a *multilayer.Absorption, layerNames []string, unit string) (*plot.Plot, error) {
	p := newPlot(title, fmt.Sprintf("Wavelength (%s)", unit), "Absorbed fraction")
	energyAxes(p, wavelengths)

	_, cols := a.Absorbed.Dims()
	var lines []interface{}
	col := make([]float64, len(wavelengths))
	for k := 1; k < cols; k++ {
		for i := range col {
			col[i] = a.Absorbed.At(i, k)
		}
		name := fmt.Sprintf("layer %d", k)
		if k < len(layerNames) {
			name = fmt.Sprintf("layer %d (%s)", k, layerNames[k])
		}
		lines = append(lines, name, xys(wavelengths, col))
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, err
	}

	total := make([]float64, len(wavelengths))
	for i := range total {
		total[i] = 1 - a.Reflectance[i] - a.Transmittance[i]
	}
	line, err := plotter.NewLine(xys(wavelengths, total))
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 0, G: 0, B: 0, A: 255} // black
	line.Dashes = []vg.Length{
		vg.Points(6), // dash length
		vg.Points(4), // gap length
	}
	p.Add(line)
	p.Legend.Add("1 - R - T", line)
	return p, nil
}

// PlotAngular draws reflectance and transmittance of an angular sweep.
func PlotAngular(title string, sw *multilayer.Sweep) (*plot.Plot, error) {
	p := newPlot(title, "Angle of incidence (degrees)", "Energy coefficient")
	energyAxes(p, sw.Axis)
	err := plotutil.AddLinePoints(p,
		"R", xys(sw.Axis, sw.Reflectance),
		"T", xys(sw.Axis, sw.Transmittance))
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RenderImage draws p into an in-memory image of about wPx × hPx pixels.
func RenderImage(p *plot.Plot, wPx, hPx float64) image.Image {
	// Choose a "virtual" size in vg units and map to pixels via DPI.
	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	dc := draw.New(c)
	p.Draw(dc)

	return c.Image()
}

// SavePlot writes p to filename, sized in pixels at 96 dpi; the format follows the extension.
func SavePlot(p *plot.Plot, wPx, hPx float64, filename string) error {
	const dpi = 96
	return p.Save(vg.Length(wPx)*vg.Inch/dpi, vg.Length(hPx)*vg.Inch/dpi, filename)
}
