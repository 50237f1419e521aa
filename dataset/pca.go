package dataset

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrProjection is returned when the principal components cannot be computed.
var ErrProjection = errors.New("dataset: principal component analysis failed")

// Projection maps rows onto the first two principal components of the data
// it was fitted on.
type Projection struct {
	mean []float64
	// vectors is dim x 2; missing components are zero.
	vectors *mat.Dense
}

// FitPCA computes the two leading principal components of X.
func FitPCA(X [][]float64) (*Projection, error) {
	n := len(X)
	if n == 0 {
		return nil, ErrProjection
	}
	dim := len(X[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: rows have no columns", ErrProjection)
	}
	for i, row := range X {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrProjection, i, len(row), dim)
		}
	}

	data := mat.NewDense(n, dim, nil)
	for i, row := range X {
		data.SetRow(i, row)
	}

	mean := make([]float64, dim)
	for j := range mean {
		mean[j] = stat.Mean(mat.Col(nil, j, data), nil)
	}

	vectors := mat.NewDense(dim, 2, nil)
	if n > 1 {
		var pc stat.PC
		if !pc.PrincipalComponents(data, nil) {
			return nil, ErrProjection
		}
		var all mat.Dense
		pc.VectorsTo(&all)
		_, cols := all.Dims()
		for c := 0; c < min(cols, 2); c++ {
			vectors.SetCol(c, mat.Col(nil, c, &all))
		}
	}

	return &Projection{mean: mean, vectors: vectors}, nil
}

// Transform projects rows onto the fitted components. Columns beyond the
// fitted width are ignored and missing ones are taken at the mean.
func (p *Projection) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	centered := make([]float64, len(p.mean))
	for i, row := range rows {
		for j := range centered {
			centered[j] = 0
			if j < len(row) {
				centered[j] = row[j] - p.mean[j]
			}
		}
		var proj mat.VecDense
		proj.MulVec(p.vectors.T(), mat.NewVecDense(len(centered), centered))
		out[i] = []float64{proj.AtVec(0), proj.AtVec(1)}
	}
	return out
}

// Project2D fits a projection on X and applies it to X.
func Project2D(X [][]float64) ([][]float64, *Projection, error) {
	p, err := FitPCA(X)
	if err != nil {
		return nil, nil, err
	}
	return p.Transform(X), p, nil
}
