package spectrum

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/bob-anderson-ok/MultilayerOptics/multilayer"
)

// Frame collects computed coefficients in a data frame: the axis column (named axisName),
// the real and imaginary parts of r and t, R, T and, when a is not nil, one column per
// layer below the incidence medium named A<k>_<material>.
func Frame(axisName string, axis []float64, c *multilayer.Coefficients, a *multilayer.Absorption, layerNames []string) (dataframe.DataFrame, error) {
	n := len(axis)
	if len(c.Reflection) != n {
		return dataframe.DataFrame{}, fmt.Errorf("%d %s values for %d coefficients", n, axisName, len(c.Reflection))
	}

	reR, imR := make([]float64, n), make([]float64, n)
	reT, imT := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		reR[i], imR[i] = real(c.Reflection[i]), imag(c.Reflection[i])
		reT[i], imT[i] = real(c.Transmission[i]), imag(c.Transmission[i])
	}

	columns := []series.Series{
		series.New(axis, series.Float, axisName),
		series.New(reR, series.Float, "r_re"),
		series.New(imR, series.Float, "r_im"),
		series.New(reT, series.Float, "t_re"),
		series.New(imT, series.Float, "t_im"),
		series.New(c.Reflectance, series.Float, "R"),
		series.New(c.Transmittance, series.Float, "T"),
	}

	if a != nil {
		rows, cols := a.Absorbed.Dims()
		if rows != n {
			return dataframe.DataFrame{}, fmt.Errorf("absorption has %d rows for %d %s values", rows, n, axisName)
		}
		for k := 1; k < cols; k++ {
			name := fmt.Sprintf("A%d", k)
			if k < len(layerNames) {
				name += "_" + layerNames[k]
			}
			col := make([]float64, n)
			for i := range col {
				col[i] = a.Absorbed.At(i, k)
			}
			columns = append(columns, series.New(col, series.Float, name))
		}
	}

	df := dataframe.New(columns...)
	return df, df.Err
}

// WriteCSV writes the frame with a header line.
func WriteCSV(w io.Writer, df dataframe.DataFrame) error {
	return df.WriteCSV(w)
}

func WriteCSVFile(path string, df dataframe.DataFrame) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteCSV(f, df)
}
