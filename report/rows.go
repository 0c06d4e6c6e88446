// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/varbox/basis"
	"github.com/katalvlaran/varbox/calc"
	"github.com/katalvlaran/varbox/matrix"
)

// DefaultPrecision is the number of decimals used for energies and elements.
const DefaultPrecision = 6

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// MatrixRows renders m as a table: a header of quantum numbers followed by
// one row per basis function.
func MatrixRows(m matrix.Matrix, prec int) ([][]string, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("MatrixRows: %w", err)
	}
	rows := make([][]string, 0, m.Rows()+1)
	header := make([]string, 0, m.Cols()+1)
	header = append(header, "")
	for j := 0; j < m.Cols(); j++ {
		header = append(header, "n="+strconv.Itoa(j+1))
	}
	rows = append(rows, header)

	for i := 0; i < m.Rows(); i++ {
		row := make([]string, 0, m.Cols()+1)
		row = append(row, "n="+strconv.Itoa(i+1))
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("MatrixRows: %w", err)
			}
			row = append(row, formatFloat(v, prec))
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// SpectrumRows lists the lowest states levels: energy, the unperturbed
// box energy of the same index, the shift between them and the basis
// function carrying the largest weight.
func SpectrumRows(res *calc.Result, states, prec int) [][]string {
	n := res.Spectrum.Len()
	if states <= 0 || states > n {
		states = n
	}
	rows := [][]string{{"level", "energy", "b=0 energy", "shift", "dominant n"}}
	for k := 0; k < states; k++ {
		e := res.Spectrum.Values[k]
		exact := basis.ExactEnergy(k+1, res.Params.Length, res.Params.Mass)
		v, _ := res.Spectrum.Vector(k)
		rows = append(rows, []string{
			strconv.Itoa(k),
			formatFloat(e, prec),
			formatFloat(exact, prec),
			formatFloat(e-exact, prec),
			strconv.Itoa(dominant(v) + 1),
		})
	}

	return rows
}

// TimingRows lists each stage duration followed by the total.
func TimingRows(ts calc.Timings) [][]string {
	rows := [][]string{{"stage", "duration"}}
	for _, t := range ts {
		rows = append(rows, []string{t.Stage, t.Duration.String()})
	}

	return append(rows, []string{"total", ts.Total().String()})
}

// dominant returns the index of the largest |component|, first one on ties.
func dominant(v []float64) int {
	best := 0
	for i := range v {
		if math.Abs(v[i]) > math.Abs(v[best]) {
			best = i
		}
	}

	return best
}
