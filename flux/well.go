package flux

import "github.com/ArturSalamatin/convolution/allocator"

// Well derives its flux coefficient elementwise: qzi/perm over S entries,
// one entry per well segment.
type Well[P allocator.Pusher, E allocator.Extractor] struct {
	*Base[P, E]
}

// NewWell wraps a freshly built Base for well-source use.
func NewWell[P allocator.Pusher, E allocator.Extractor](pair allocator.Pair[P, E]) *Well[P, E] {
	return &Well[P, E]{Base: NewBase[P, E](pair)}
}

// PushWell computes calc_coef = qzi/perm elementwise and pushes the result.
func (w *Well[P, E]) PushWell(qzi, perm []float64) {
	coef := make([]float64, len(qzi))
	for i := range qzi {
		coef[i] = qzi[i] / perm[i]
	}
	w.PushCoef(coef)
}
