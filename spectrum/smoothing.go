package spectrum

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/MultilayerOptics/multilayer"
)

// fwhmToSigma converts the full width at half maximum of a Gaussian to its standard deviation.
var fwhmToSigma = 1 / (2 * math.Sqrt(2*math.Ln2))

// GaussianKernel returns a normalized Gaussian sampled every step, 2*half+1 points long
// with the peak in the middle. half covers four standard deviations. A Gaussian too
// narrow to be sampled is the single point {1}.
func GaussianKernel(fwhm, step float64) []float64 {
	sigma := fwhm * fwhmToSigma / step
	if !(sigma*sigma > 0) {
		return []float64{1}
	}
	half := int(math.Ceil(4 * sigma))
	kernel := make([]float64, 2*half+1)
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)
	return kernel
}

// Smooth convolves a spectrum sampled every step with the Gaussian instrument function of
// the given fwhm (same unit as step). Edges are extended by replicating the end values, so
// the output has the length of the input. A non positive fwhm or step returns a copy.
func Smooth(values []float64, step, fwhm float64) []float64 {
	out := append([]float64(nil), values...)
	if len(values) < 2 || fwhm <= 0 || step <= 0 {
		return out
	}
	kernel := GaussianKernel(fwhm, step)
	if len(kernel) == 1 {
		return out
	}
	return convolveReplicate(values, kernel)
}

// SmoothCoefficients returns a copy of c whose reflectance and transmittance went through
// Smooth. Amplitudes are not measurable and are copied unchanged.
func SmoothCoefficients(c *multilayer.Coefficients, step, fwhm float64) *multilayer.Coefficients {
	return &multilayer.Coefficients{
		Reflection:    append([]complex128(nil), c.Reflection...),
		Transmission:  append([]complex128(nil), c.Transmission...),
		Reflectance:   Smooth(c.Reflectance, step, fwhm),
		Transmittance: Smooth(c.Transmittance, step, fwhm),
	}
}

// SmoothAbsorbed smooths every column (one layer) of an absorption matrix.
func SmoothAbsorbed(absorbed *mat.Dense, step, fwhm float64) *mat.Dense {
	rows, cols := absorbed.Dims()
	out := mat.NewDense(rows, cols, nil)
	col := make([]float64, rows)
	for k := 0; k < cols; k++ {
		mat.Col(col, k, absorbed)
		out.SetCol(k, Smooth(col, step, fwhm))
	}
	return out
}

// convolveReplicate computes the "same" convolution of values with a centered, odd length
// kernel through the real FFT.
func convolveReplicate(values, kernel []float64) []float64 {
	n := len(values)
	half := len(kernel) / 2

	// The padded signal is n+2*half long; the FFT grid must hold the whole linear convolution
	// window we read back from.
	size := nextPow2(n + 2*half)
	fft := fourier.NewFFT(size)

	signal := make([]float64, size)
	for j := 0; j < n+2*half; j++ {
		signal[j] = values[clamp(j-half, 0, n-1)]
	}
	psf := make([]float64, size)
	copy(psf, kernel)

	a := fft.Coefficients(nil, signal)
	b := fft.Coefficients(nil, psf)
	for i := range a {
		a[i] *= b[i]
	}
	full := fft.Sequence(nil, a)

	// Gonum transforms are unnormalized: forward then inverse multiplies by size.
	scale := float64(size)
	out := make([]float64, n)
	for i := range out {
		out[i] = full[i+2*half] / scale
	}
	return out
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
