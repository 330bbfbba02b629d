package flux

import (
	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/internal/contract"
	"github.com/ArturSalamatin/convolution/matvec"
	"gonum.org/v1/gonum/mat"
)

// FluxView is the read side of a flux container, used by Multi to extract
// once and fan the resulting vector out across several kernels.
type FluxView interface {
	AdvanceReadCursor()
	LiveView() *mat.VecDense
	CurrentWindowSize() uint64
}

// Multi convolves one flux snapshot against a fixed set of kernels,
// calling the flux's extract exactly once per Convolve call — critical,
// since a second on_extract would silently corrupt the flux's window
// bookkeeping for every kernel after the first.
//
// original_source fixes the kernel count as a compile-time array size
// (std::array<VectorXd, array_size>); Go generics carry no such
// size parameter, so the count is instead recorded at construction and
// checked on every Convolve call.
type Multi[P allocator.Pusher, E allocator.Extractor] struct {
	Flux    FluxView
	Kernels []KernelView

	arraySize int
}

// NewMulti binds a flux view to a fixed set of kernels. arraySize records
// the expected kernel count so a later mismatch (kernels added or removed
// after construction) is caught rather than silently under- or
// over-convolving.
func NewMulti[P allocator.Pusher, E allocator.Extractor](flux FluxView, kernels []KernelView) *Multi[P, E] {
	return &Multi[P, E]{
		Flux:      flux,
		Kernels:   kernels,
		arraySize: len(kernels),
	}
}

// Convolve extracts the flux exactly once, then convolves the resulting
// live view against every kernel in turn, returning one result vector per
// kernel in the same order.
func (m *Multi[P, E]) Convolve() []*mat.VecDense {
	contract.Check(len(m.Kernels) != m.arraySize, "flux.Multi",
		"kernel set size changed after construction")

	m.Flux.AdvanceReadCursor()
	fview := m.Flux.LiveView()

	results := make([]*mat.VecDense, len(m.Kernels))
	for i, k := range m.Kernels {
		k.AdvanceReadCursor()
		kview := k.LiveView()

		contract.Check(k.CurrentWindowSize() != m.Flux.CurrentWindowSize(), "flux.Multi",
			"kernel and flux live windows disagree in size")

		results[i] = matvec.Convolve(kview, fview)
	}
	return results
}
