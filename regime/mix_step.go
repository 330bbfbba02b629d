package regime

import (
	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/flux"
	"github.com/ArturSalamatin/convolution/kernel"
	"github.com/ArturSalamatin/convolution/timepolicy"
	"gonum.org/v1/gonum/mat"
)

// mixStepFrameTemporalSize is fixed at 1 for the MixStep regime: only a
// single term participates in the convolution, matching original_source's
// MixStepFrac::frame_temporal_size constant.
const mixStepFrameTemporalSize = 1

// MixStepWell bundles the cache-backed well kernel, well flux, and time
// policy for the MixStep regime.
type MixStepWell struct {
	Kernel *kernel.MixStepWell
	Flux   *flux.Well[*allocator.MixStepFluxPusher, *allocator.MixStepFluxExtractor]
	Time   *timepolicy.MixStep
}

// NewMixStepWell builds a MixStep well regime.
func NewMixStepWell(gridNodesCount int, spatialSize, smallStepNmbrPerMainStep uint64, ht float64) *MixStepWell {
	kPair := allocator.NewMixStepKernel(spatialSize, mixStepFrameTemporalSize)
	fPair := allocator.NewMixStepFlux(spatialSize, mixStepFrameTemporalSize)
	return &MixStepWell{
		Kernel: kernel.NewMixStepWell(gridNodesCount, kPair, smallStepNmbrPerMainStep),
		Flux:   flux.NewWell[*allocator.MixStepFluxPusher, *allocator.MixStepFluxExtractor](fPair),
		Time:   timepolicy.NewMixStep(smallStepNmbrPerMainStep, ht),
	}
}

// Convolve runs the well-side convolution for the current step.
func (w *MixStepWell) Convolve() *mat.VecDense { return w.Flux.Convolve(w.Kernel) }

// mixStepFracKernel and mixStepFracFlux name the concrete fracture
// kernel/flux types for the MixStep regime. Unlike the well kernel,
// fracture kernels have no need for MixStepWell's P_cur replay cache —
// original_source's FracKernel<Allocator_t> is templated generically and
// carries no MixStep-specific caching of its own — so fractures use the
// same accumulating kernel.Frac every other regime uses.
type mixStepFracKernel = kernel.Frac[*allocator.MixStepKernelPusher, *allocator.MixStepKernelExtractor]
type mixStepFracFlux = flux.Frac[*allocator.MixStepFluxPusher, *allocator.MixStepFluxExtractor]

// MixStepFrac extends a MixStep well regime with one kernel/flux pair per
// fracture.
type MixStepFrac struct {
	MixStepWell

	FracKernels *kernel.FracContainer[*allocator.MixStepKernelPusher, *allocator.MixStepKernelExtractor]
	FracFluxes  *flux.FracturesContainer[*mixStepFracFlux]
}

// NewMixStepFrac builds a MixStep regime with fracture support.
// gridNodesCount (G) is shared by the well kernel and every fracture
// kernel; mainStep is the coarse time step used to derive the time
// policy's small step.
func NewMixStepFrac(gridNodesCount int, wellSpatialSize uint64, smallStepNmbrPerMainStep uint64, mainStep float64, fracNy []int) *MixStepFrac {
	well := NewMixStepWell(gridNodesCount, wellSpatialSize, smallStepNmbrPerMainStep, mainStep)

	var fracKernels []*mixStepFracKernel
	var fracFluxes []*mixStepFracFlux
	for _, ny := range fracNy {
		kp := allocator.NewMixStepKernel(uint64(ny), mixStepFrameTemporalSize)
		fp := allocator.NewMixStepFlux(uint64(ny), mixStepFrameTemporalSize)
		fracKernels = append(fracKernels, kernel.NewFrac[*allocator.MixStepKernelPusher, *allocator.MixStepKernelExtractor](gridNodesCount, kp))
		fracFluxes = append(fracFluxes, flux.NewFrac[*allocator.MixStepFluxPusher, *allocator.MixStepFluxExtractor](fp))
	}

	return &MixStepFrac{
		MixStepWell: *well,
		FracKernels: kernel.NewFracContainer(fracKernels),
		FracFluxes:  flux.NewFracturesContainer(fracFluxes),
	}
}

// ConvolveFractures sums every fracture's convolution against its own
// kernel. Panics via contract.Violation if the fracture set was not fully
// pushed this step.
func (c *MixStepFrac) ConvolveFractures() *mat.VecDense {
	return c.FracFluxes.Convolve(fracKernelViews(c.FracKernels.Fracs()))
}
