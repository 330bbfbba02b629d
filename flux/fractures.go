package flux

import (
	"github.com/ArturSalamatin/convolution/internal/contract"
	"github.com/ArturSalamatin/convolution/internal/fraccontainer"
	"gonum.org/v1/gonum/mat"
)

// FracFlux is the subset of a fracture flux type's API FracturesContainer
// needs: qzf-coefficient push and convolution against a matching kernel.
// Both Frac[P,E] and MainStepFracRing[P,E] satisfy it, mirroring
// original_source's FracturesFluxContainer_t<Allocator_t, Flux_t>, which is
// templated on the same choice between BaseFracFlux and its MainStep
// variant.
type FracFlux interface {
	PushFrac(qzf []float64, value float64)
	Convolve(k KernelView) *mat.VecDense
}

// FracturesContainer round-robins flux pushes across a fixed set of
// fractures and sums each fracture's convolution against its own kernel.
type FracturesContainer[T FracFlux] struct {
	fraccontainer.RoundRobin
	children []T
}

// NewFracturesContainer builds a round-robin container over one flux
// child per fracture.
func NewFracturesContainer[T FracFlux](children []T) *FracturesContainer[T] {
	return &FracturesContainer[T]{
		RoundRobin: fraccontainer.New(len(children)),
		children:   children,
	}
}

// PushCoef pushes into the currently selected fracture and advances to the
// next one in the round robin.
func (c *FracturesContainer[T]) PushCoef(qzf []float64, value float64) {
	c.children[c.CurFracID()].PushFrac(qzf, value)
	c.OnPushCoef()
	c.RoundRobin.Advance()
}

// Convolve requires every fracture to have been pushed this step
// (cur_frac_id == 0); it sums each fracture's convolution against its own
// kernel.
func (c *FracturesContainer[T]) Convolve(kernels []KernelView) *mat.VecDense {
	contract.Check(!c.AtStart(), "flux.FracturesContainer",
		"convolve called before every fracture was pushed this step")

	var result *mat.VecDense
	for f, child := range c.children {
		v := child.Convolve(kernels[f])
		if result == nil {
			result = mat.NewVecDense(v.Len(), nil)
		}
		result.AddVec(result, v)
	}
	c.ClearNeedAdvance()
	return result
}

// FracCount is the number of fractures in the round-robin set.
func (c *FracturesContainer[T]) FracCount() int { return c.RoundRobin.FracCount() }
