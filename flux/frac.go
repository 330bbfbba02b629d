package flux

import "github.com/ArturSalamatin/convolution/allocator"

// Frac derives its flux coefficient with a single scalar divisor:
// qzf/value applied elementwise, one entry per fracture node.
type Frac[P allocator.Pusher, E allocator.Extractor] struct {
	*Base[P, E]
}

// NewFrac wraps a freshly built Base for fracture-source use.
func NewFrac[P allocator.Pusher, E allocator.Extractor](pair allocator.Pair[P, E]) *Frac[P, E] {
	return &Frac[P, E]{Base: NewBase[P, E](pair)}
}

// PushFrac computes calc_coef = qzf/value elementwise and pushes the result.
func (f *Frac[P, E]) PushFrac(qzf []float64, value float64) {
	coef := make([]float64, len(qzf))
	for i, q := range qzf {
		coef[i] = q / value
	}
	f.PushCoef(coef)
}
