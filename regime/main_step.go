package regime

import (
	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/flux"
	"github.com/ArturSalamatin/convolution/kernel"
	"github.com/ArturSalamatin/convolution/timepolicy"
	"gonum.org/v1/gonum/mat"
)

// mainStepFluxRingChildren builds the small_step_nmbr independent flux
// buffers a MainStepRing averages across, one per small step, each sized
// identically for the given source's spatial size.
func mainStepFluxRingChildren(spatialSize, mainStepNmbr, frameTemporalSize, smallStepNmbr uint64) []*flux.Base[*allocator.MainStepFluxPusher, *allocator.MainStepFluxExtractor] {
	children := make([]*flux.Base[*allocator.MainStepFluxPusher, *allocator.MainStepFluxExtractor], smallStepNmbr)
	for i := range children {
		fPair := allocator.NewMainStepFlux(spatialSize, mainStepNmbr, frameTemporalSize, smallStepNmbr)
		children[i] = flux.NewBase[*allocator.MainStepFluxPusher, *allocator.MainStepFluxExtractor](fPair)
	}
	return children
}

// MainStepWell bundles the well kernel, the MainStep flux averaging ring,
// and time policy for the MainStep regime.
type MainStepWell struct {
	Kernel *kernel.Base[*allocator.MainStepKernelPusher, *allocator.MainStepKernelExtractor]
	Flux   *flux.MainStepWellRing[*allocator.MainStepFluxPusher, *allocator.MainStepFluxExtractor]
	Time   *timepolicy.MainStep
}

// NewMainStepWell builds a MainStep well regime.
func NewMainStepWell(gridNodesCount int, spatialSize, frameTemporalSize, cacheCapacity, smallStepNmbr, mainStepNmbr uint64, ht float64) *MainStepWell {
	kPair := allocator.NewMainStepKernel(spatialSize, frameTemporalSize, cacheCapacity, smallStepNmbr, mainStepNmbr)
	children := mainStepFluxRingChildren(spatialSize, mainStepNmbr, frameTemporalSize, smallStepNmbr)
	return &MainStepWell{
		Kernel: kernel.NewBase[*allocator.MainStepKernelPusher, *allocator.MainStepKernelExtractor](gridNodesCount, kPair),
		Flux:   flux.NewMainStepWellRing(children, int(spatialSize), mainStepNmbr),
		Time:   timepolicy.NewMainStep(ht),
	}
}

// Convolve runs the well-side convolution for the current step.
func (w *MainStepWell) Convolve() *mat.VecDense { return w.Flux.Convolve(w.Kernel) }

// mainStepFracFlux is the fracture-side MainStep flux type: a ring, not a
// single buffer, so a fracture's samples get the same small-step
// averaging treatment as the well's.
type mainStepFracFlux = flux.MainStepFracRing[*allocator.MainStepFluxPusher, *allocator.MainStepFluxExtractor]

// MainStepFrac extends a MainStep well regime with one kernel/flux pair
// per fracture.
type MainStepFrac struct {
	MainStepWell

	FracKernels *kernel.FracContainer[*allocator.MainStepKernelPusher, *allocator.MainStepKernelExtractor]
	FracFluxes  *flux.FracturesContainer[*mainStepFracFlux]
}

// NewMainStepFrac builds a MainStep regime with fracture support.
// gridNodesCount (G) is shared by the well kernel and every fracture
// kernel.
func NewMainStepFrac(gridNodesCount int, wellSpatialSize, frameTemporalSize, cacheCapacity, smallStepNmbr, mainStepNmbr uint64, ht float64, fracNy []int) *MainStepFrac {
	well := NewMainStepWell(gridNodesCount, wellSpatialSize, frameTemporalSize, cacheCapacity, smallStepNmbr, mainStepNmbr, ht)

	var fracKernels []*kernel.Frac[*allocator.MainStepKernelPusher, *allocator.MainStepKernelExtractor]
	var fracFluxes []*mainStepFracFlux
	for _, ny := range fracNy {
		kp := allocator.NewMainStepKernel(uint64(ny), frameTemporalSize, cacheCapacity, smallStepNmbr, mainStepNmbr)
		fracKernels = append(fracKernels, kernel.NewFrac[*allocator.MainStepKernelPusher, *allocator.MainStepKernelExtractor](gridNodesCount, kp))

		children := mainStepFluxRingChildren(uint64(ny), mainStepNmbr, frameTemporalSize, smallStepNmbr)
		fracFluxes = append(fracFluxes, flux.NewMainStepFracRing(children, ny, mainStepNmbr))
	}

	return &MainStepFrac{
		MainStepWell: *well,
		FracKernels:  kernel.NewFracContainer(fracKernels),
		FracFluxes:   flux.NewFracturesContainer(fracFluxes),
	}
}

// ConvolveFractures sums every fracture's convolution against its own
// kernel. Panics via contract.Violation if the fracture set was not fully
// pushed this step.
func (c *MainStepFrac) ConvolveFractures() *mat.VecDense {
	return c.FracFluxes.Convolve(fracKernelViews(c.FracKernels.Fracs()))
}
