package graph

import "fmt"

// matrix is a small row-major dense real matrix. No example repository in
// the retrieved corpus imports a general linear-algebra library (no
// gonum, no cgo BLAS binding); MimoIir's output matrix and freeverb's 2x2
// wet/dry mixer only ever need a fixed-shape matrix-vector product, so
// this is the smallest thing that satisfies that contract without adding
// a dependency nothing else in the pack uses.
type matrix struct {
	rows, cols int
	data       []float64 // row-major, len == rows*cols
}

// newMatrix builds an MxN matrix from row-major data.
func newMatrix(rows, cols int, data []float64) (*matrix, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("graph: matrix expects %d elements for a %dx%d shape, got %d", rows*cols, rows, cols, len(data))
	}
	return &matrix{rows: rows, cols: cols, data: append([]float64(nil), data...)}, nil
}

// mulVec computes dst = m . v, where len(v) == m.cols and len(dst) == m.rows.
func (m *matrix) mulVec(dst, v []float64) {
	for r := 0; r < m.rows; r++ {
		sum := 0.0
		row := m.data[r*m.cols : (r+1)*m.cols]
		for c := 0; c < m.cols; c++ {
			sum += row[c] * v[c]
		}
		dst[r] = sum
	}
}
