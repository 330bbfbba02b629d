// Package regime composes an allocator pair, a kernel, a flux container,
// and a time policy into the four end-to-end simulation regimes:
// ConstStep, MainStep, MixStep, and SmallStep (a pure alias of ConstStep).
// Each regime also owns a per-fracture set of kernels/fluxes, built from a
// list of fracture node counts, mirroring original_source's
// ConstStepFrac/MainStepFrac/MixStepFrac composition.
package regime

import (
	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/flux"
	"github.com/ArturSalamatin/convolution/kernel"
	"github.com/ArturSalamatin/convolution/timepolicy"
	"gonum.org/v1/gonum/mat"
)

// ConstStepWell bundles the well kernel, well flux, and time policy for
// the ConstStep regime.
type ConstStepWell struct {
	Kernel *kernel.Base[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor]
	Flux   *flux.Well[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor]
	Time   *timepolicy.ConstStep
}

// NewConstStepWell builds a ConstStep well regime. gridNodesCount is the
// kernel's row count (G); spatialSize is the well's segment count (S).
func NewConstStepWell(gridNodesCount int, spatialSize, frameTemporalSize, temporalSize uint64, ht float64) *ConstStepWell {
	kPair := allocator.NewConstStepKernel(spatialSize, frameTemporalSize)
	fPair := allocator.NewConstStepFlux(spatialSize, temporalSize, frameTemporalSize)
	return &ConstStepWell{
		Kernel: kernel.NewBase[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor](gridNodesCount, kPair),
		Flux:   flux.NewWell[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor](fPair),
		Time:   timepolicy.NewConstStep(ht),
	}
}

// Convolve runs the well-side convolution for the current step.
func (w *ConstStepWell) Convolve() *mat.VecDense { return w.Flux.Convolve(w.Kernel) }

// constStepFracKernel and constStepFracFlux name the concrete fracture
// kernel/flux types used by ConstStepFrac (and so by SmallStepFrac).
type constStepFracKernel = kernel.Frac[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor]
type constStepFracFlux = flux.Frac[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor]

// ConstStepFrac extends a ConstStep well regime with one kernel/flux pair
// per fracture, sized from a list of per-fracture node counts. The
// fracture kernels and fluxes are round-robin gated: FracKernels.Advance()
// and FracFluxes.Convolve() both panic when a round of pushes is only
// partly done (the round robin is not back at fracture zero).
type ConstStepFrac struct {
	ConstStepWell

	FracKernels *kernel.FracContainer[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor]
	FracFluxes  *flux.FracturesContainer[*constStepFracFlux]
}

// NewConstStepFrac builds a ConstStep regime with fracture support.
// gridNodesCount (G) is shared by the well kernel and every fracture
// kernel, matching original_source's use of one mesh-wide node count
// across all sources; wellSpatialSize is the well's own segment count;
// fracNy holds the per-fracture node counts (the fracture's own S).
func NewConstStepFrac(gridNodesCount int, wellSpatialSize uint64, frameTemporalSize, temporalSize uint64, ht float64, fracNy []int) *ConstStepFrac {
	well := NewConstStepWell(gridNodesCount, wellSpatialSize, frameTemporalSize, temporalSize, ht)

	var fracKernels []*constStepFracKernel
	var fracFluxes []*constStepFracFlux
	for _, ny := range fracNy {
		kp := allocator.NewConstStepKernel(uint64(ny), frameTemporalSize)
		fp := allocator.NewConstStepFlux(uint64(ny), temporalSize, frameTemporalSize)
		fracKernels = append(fracKernels, kernel.NewFrac[*allocator.ConstStepKernelPusher, *allocator.ConstStepKernelExtractor](gridNodesCount, kp))
		fracFluxes = append(fracFluxes, flux.NewFrac[*allocator.ConstStepFluxPusher, *allocator.ConstStepFluxExtractor](fp))
	}

	return &ConstStepFrac{
		ConstStepWell: *well,
		FracKernels:   kernel.NewFracContainer(fracKernels),
		FracFluxes:    flux.NewFracturesContainer(fracFluxes),
	}
}

// fracKernelViews adapts the fracture kernel container's children into the
// []flux.KernelView slice flux.FracturesContainer.Convolve expects, one
// view per fracture in round-robin order.
func fracKernelViews[P allocator.Pusher, E allocator.Extractor](fracs []*kernel.Frac[P, E]) []flux.KernelView {
	views := make([]flux.KernelView, len(fracs))
	for i, f := range fracs {
		views[i] = f
	}
	return views
}

// ConvolveFractures sums every fracture's convolution against its own
// kernel. Panics via contract.Violation if the fracture set was not fully
// pushed this step.
func (c *ConstStepFrac) ConvolveFractures() *mat.VecDense {
	return c.FracFluxes.Convolve(fracKernelViews(c.FracKernels.Fracs()))
}
