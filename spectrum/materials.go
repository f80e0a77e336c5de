package spectrum

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	json "github.com/KevinWang15/go-json5"
	"github.com/go-gota/gota/dataframe"

	"github.com/bob-anderson-ok/MultilayerOptics/multilayer"
)

var (
	ErrMissingColumn = errors.New("material table needs wavelength and n columns")
	ErrEmptyTable    = errors.New("material table is empty")
	ErrBadTableValue = errors.New("material table holds a non numeric or non positive value")
)

// LoadMaterialTable reads a CSV table of measured refractive index with a header line.
// The columns wavelength and n are required, k defaults to zero. Wavelengths are in unit
// and rows may come in any order.
func LoadMaterialTable(r io.Reader, unit string) (multilayer.Tabulated, error) {
	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(','),
		dataframe.HasHeader(true))
	if df.Err != nil {
		return multilayer.Tabulated{}, df.Err
	}

	has := map[string]bool{}
	for _, name := range df.Names() {
		has[name] = true
	}
	if !has["wavelength"] || !has["n"] {
		return multilayer.Tabulated{}, fmt.Errorf("%w, found %v", ErrMissingColumn, df.Names())
	}
	if df.Nrow() == 0 {
		return multilayer.Tabulated{}, ErrEmptyTable
	}

	df = df.Arrange(dataframe.Sort("wavelength"))
	if df.Err != nil {
		return multilayer.Tabulated{}, df.Err
	}

	rows := make([][3]float64, df.Nrow())
	wavelength := df.Col("wavelength").Float()
	n := df.Col("n").Float()
	var k []float64
	if has["k"] {
		k = df.Col("k").Float()
	}
	for i := range rows {
		rows[i][0], rows[i][1] = wavelength[i], n[i]
		if k != nil {
			rows[i][2] = k[i]
		}
	}
	scale, err := multilayer.UnitScale(unit)
	if err != nil {
		return multilayer.Tabulated{}, err
	}
	return tabulatedFromRows(rows, scale)
}

// LoadMaterialTableFile reads a material table from a .csv file, or from a json(5) file
// holding an array of [wavelength, n, k] triples.
func LoadMaterialTableFile(path, unit string) (multilayer.Tabulated, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return multilayer.Tabulated{}, err
		}
		defer f.Close()
		return LoadMaterialTable(f, unit)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return multilayer.Tabulated{}, err
	}
	rows, err := parseArrayFormat(data)
	if err != nil {
		return multilayer.Tabulated{}, fmt.Errorf("reading %q: %w", path, err)
	}
	scale, err := multilayer.UnitScale(unit)
	if err != nil {
		return multilayer.Tabulated{}, err
	}
	return tabulatedFromRows(rows, scale)
}

func parseArrayFormat(data []byte) ([][3]float64, error) {
	var triples [][3]float64
	err := json.Unmarshal(data, &triples)
	return triples, err
}

// tabulatedFromRows checks [wavelength, n, k] rows and returns them as a Tabulated material,
// wavelengths multiplied by scale to get nm.
func tabulatedFromRows(rows [][3]float64, scale float64) (multilayer.Tabulated, error) {
	if len(rows) == 0 {
		return multilayer.Tabulated{}, ErrEmptyTable
	}
	tab := multilayer.Tabulated{
		Wavelength: make([]float64, len(rows)),
		N:          make([]float64, len(rows)),
		K:          make([]float64, len(rows)),
	}
	for i, row := range rows {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return multilayer.Tabulated{}, fmt.Errorf("%w: row %d", ErrBadTableValue, i)
			}
		}
		if row[0] <= 0 {
			return multilayer.Tabulated{}, fmt.Errorf("%w: row %d", ErrBadTableValue, i)
		}
		if i > 0 && row[0] <= rows[i-1][0] {
			return multilayer.Tabulated{}, fmt.Errorf("%w: wavelengths must increase, row %d", ErrBadTableValue, i)
		}
		tab.Wavelength[i] = row[0] * scale
		tab.N[i], tab.K[i] = row[1], row[2]
	}
	return tab, nil
}
