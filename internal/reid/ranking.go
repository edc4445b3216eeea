package reid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// argsortRow sorts row in place, nearest first, and returns the original
// gallery index of every sorted position. Ties keep gallery order and NaN
// distances go last.
func argsortRow(row []float64) []int {
	inds := make([]int, len(row))
	if !floats.HasNaN(row) {
		floats.ArgsortStable(row, inds)
		return inds
	}

	for i := range inds {
		inds[i] = i
	}
	orig := make([]float64, len(row))
	copy(orig, row)
	sort.SliceStable(inds, func(a, b int) bool {
		da, db := orig[inds[a]], orig[inds[b]]
		if math.IsNaN(da) {
			return false
		}
		return math.IsNaN(db) || da < db
	})
	for k, j := range inds {
		row[k] = orig[j]
	}
	return inds
}

// rankQuery ranks the gallery for query row i and drops trivial matches:
// gallery items with both the query's id and the query's camera.
func rankQuery[I, C comparable](
	distmat mat.Matrix,
	i int,
	queryID I,
	queryCam C,
	galleryIDs []I,
	galleryCams []C,
) queryRanking {
	row := mat.Row(nil, i, distmat)
	indices := argsortRow(row)

	r := queryRanking{
		yTrue:  make([]bool, 0, len(indices)),
		yScore: make([]float64, 0, len(indices)),
	}
	for k, j := range indices {
		match := galleryIDs[j] == queryID
		if match && galleryCams[j] == queryCam {
			continue
		}
		r.yTrue = append(r.yTrue, match)
		r.yScore = append(r.yScore, -row[k])
	}
	return r
}

// hasMatch reports whether any valid ranked item is a true match.
func (r queryRanking) hasMatch() bool {
	for _, t := range r.yTrue {
		if t {
			return true
		}
	}
	return false
}
