package flux

import (
	"github.com/ArturSalamatin/convolution/allocator"
	"github.com/ArturSalamatin/convolution/internal/contract"
	"github.com/ArturSalamatin/convolution/matvec"
	"gonum.org/v1/gonum/mat"
)

// MainStepRing is the MainStep-regime flux container: instead of one flux
// buffer, it holds N = small_step_nmbr independent child buffers, each
// running its own linearly-interpolated average of the pushed samples, plus
// the raw previous sample used to seed that interpolation.
//
// During the first history period every push feeds all N children and
// every extract advances all of their cursors in lockstep. Once the buffer
// has filled (the driver has switched to pushing pre-averaged per-main-step
// samples elsewhere), pushes stop and extract instead rotates a "current
// child" pointer through the ring once per outer step.
type MainStepRing[P allocator.Pusher, E allocator.Extractor] struct {
	children []*Base[P, E]
	prevFlux []float64

	curChild int

	mainStepCounter uint64
	mainStepNmbr    uint64
}

// NewMainStepRing builds a ring over already-constructed child flux
// buffers, one per small step. The current-child pointer starts on the
// last (raw) child, so the first history period's convolutions read
// full-resolution samples before the ring ever needs to rotate.
func NewMainStepRing[P allocator.Pusher, E allocator.Extractor](children []*Base[P, E], spatialSize int, mainStepNmbr uint64) *MainStepRing[P, E] {
	if len(children) == 0 {
		panic("flux: MainStepRing requires at least one child")
	}
	return &MainStepRing[P, E]{
		children:     children,
		prevFlux:     make([]float64, spatialSize),
		curChild:     len(children) - 1,
		mainStepNmbr: mainStepNmbr,
	}
}

// Push computes ratio-weighted interpolations of x against the previous
// raw sample for every child but the last, gives the last child the raw
// sample, then records x as the new previous sample.
func (m *MainStepRing[P, E]) Push(x []float64) {
	n := len(m.children)
	last := n - 1

	m.children[last].PushCoef(x)

	for k := 0; k < last; k++ {
		ratio := float64(k+1) / float64(n)
		interp := make([]float64, len(x))
		for i := range x {
			interp[i] = ratio*x[i] + (1-ratio)*m.prevFlux[i]
		}
		m.children[k].PushCoef(interp)
	}

	copy(m.prevFlux, x)
}

// Extract advances every child in lockstep during the first history
// period; afterward it rotates the current-child pointer instead, since
// the driver no longer pushes and each outer step consumes the next
// pre-averaged child.
func (m *MainStepRing[P, E]) Extract() {
	if m.mainStepCounter < m.mainStepNmbr {
		m.mainStepCounter++
		for _, c := range m.children {
			c.Pair.Extractor.OnExtract()
		}
		return
	}
	m.curChild = (m.curChild + 1) % len(m.children)
}

// AdvanceReadCursor satisfies the same two-step accessor convention as
// flux.Base and kernel.Base.
func (m *MainStepRing[P, E]) AdvanceReadCursor() { m.Extract() }

// LiveView returns the current child's live window.
func (m *MainStepRing[P, E]) LiveView() *mat.VecDense {
	return m.children[m.curChild].LiveView()
}

// CurrentWindowSize is the current child's live window length.
func (m *MainStepRing[P, E]) CurrentWindowSize() uint64 {
	return m.children[m.curChild].CurrentWindowSize()
}

// At addresses a sample by time index and source segment: readings before
// the first period ends come from the last (raw) child; afterward, from
// the child that received the (nt-1-main_step_nmbr)-th rotation.
func (m *MainStepRing[P, E]) At(nt, segm int) float64 {
	last := len(m.children) - 1
	if nt-1 < int(m.mainStepNmbr) {
		return m.children[last].At(nt, segm)
	}
	idx := (nt - 1 - int(m.mainStepNmbr)) % len(m.children)
	return m.children[idx].At(nt, segm)
}

// Convolve advances the kernel's read cursor and this ring's current
// child in lockstep, then multiplies their live views.
func (m *MainStepRing[P, E]) Convolve(k KernelView) *mat.VecDense {
	k.AdvanceReadCursor()
	kview := k.LiveView()
	m.AdvanceReadCursor()
	fview := m.LiveView()

	contract.Check(k.CurrentWindowSize() != m.CurrentWindowSize(), "flux.MainStepRing",
		"kernel and flux live windows disagree in size")

	return matvec.Convolve(kview, fview)
}

// MainStepWellRing derives the ring's push coefficient the well way:
// qzi/perm elementwise, fed into every child through Push's
// linear-interpolation averaging.
type MainStepWellRing[P allocator.Pusher, E allocator.Extractor] struct {
	*MainStepRing[P, E]
}

// NewMainStepWellRing wraps a freshly built MainStepRing for well-source
// use.
func NewMainStepWellRing[P allocator.Pusher, E allocator.Extractor](children []*Base[P, E], spatialSize int, mainStepNmbr uint64) *MainStepWellRing[P, E] {
	return &MainStepWellRing[P, E]{MainStepRing: NewMainStepRing(children, spatialSize, mainStepNmbr)}
}

// PushWell computes calc_coef = qzi/perm elementwise and pushes it into
// the ring.
func (r *MainStepWellRing[P, E]) PushWell(qzi, perm []float64) {
	coef := make([]float64, len(qzi))
	for i := range qzi {
		coef[i] = qzi[i] / perm[i]
	}
	r.Push(coef)
}

// MainStepFracRing is the fracture-side analog of MainStepWellRing:
// qzf/value elementwise, fed into every child through Push.
type MainStepFracRing[P allocator.Pusher, E allocator.Extractor] struct {
	*MainStepRing[P, E]
}

// NewMainStepFracRing wraps a freshly built MainStepRing for
// fracture-source use.
func NewMainStepFracRing[P allocator.Pusher, E allocator.Extractor](children []*Base[P, E], spatialSize int, mainStepNmbr uint64) *MainStepFracRing[P, E] {
	return &MainStepFracRing[P, E]{MainStepRing: NewMainStepRing(children, spatialSize, mainStepNmbr)}
}

// PushFrac computes calc_coef = qzf/value elementwise and pushes it into
// the ring.
func (r *MainStepFracRing[P, E]) PushFrac(qzf []float64, value float64) {
	coef := make([]float64, len(qzf))
	for i, q := range qzf {
		coef[i] = q / value
	}
	r.Push(coef)
}
