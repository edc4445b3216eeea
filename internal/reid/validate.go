package reid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// validateInputs checks presence and shape of the five evaluator inputs and
// returns the matrix dimensions.
func validateInputs[I, C comparable](
	distmat mat.Matrix,
	queryIDs, galleryIDs []I,
	queryCams, galleryCams []C,
) (m, n int, err error) {
	if distmat == nil {
		return 0, 0, fmt.Errorf("distmat is nil: %w", ErrInvalidInput)
	}
	if d, ok := distmat.(*mat.Dense); ok && d == nil {
		return 0, 0, fmt.Errorf("distmat is a nil *mat.Dense: %w", ErrInvalidInput)
	}
	switch {
	case queryIDs == nil:
		return 0, 0, fmt.Errorf("queryIDs is nil: %w", ErrInvalidInput)
	case galleryIDs == nil:
		return 0, 0, fmt.Errorf("galleryIDs is nil: %w", ErrInvalidInput)
	case queryCams == nil:
		return 0, 0, fmt.Errorf("queryCams is nil: %w", ErrInvalidInput)
	case galleryCams == nil:
		return 0, 0, fmt.Errorf("galleryCams is nil: %w", ErrInvalidInput)
	}

	m, n = distmat.Dims()
	if len(queryIDs) != m {
		return 0, 0, fmt.Errorf("queryIDs has %d entries, distmat has %d rows: %w", len(queryIDs), m, ErrShapeMismatch)
	}
	if len(queryCams) != m {
		return 0, 0, fmt.Errorf("queryCams has %d entries, distmat has %d rows: %w", len(queryCams), m, ErrShapeMismatch)
	}
	if len(galleryIDs) != n {
		return 0, 0, fmt.Errorf("galleryIDs has %d entries, distmat has %d columns: %w", len(galleryIDs), n, ErrShapeMismatch)
	}
	if len(galleryCams) != n {
		return 0, 0, fmt.Errorf("galleryCams has %d entries, distmat has %d columns: %w", len(galleryCams), n, ErrShapeMismatch)
	}
	return m, n, nil
}
