package allocator

import (
	"testing"

	"github.com/ArturSalamatin/convolution/memdesc"
)

// TestMixStepKernelExtractIsNoOpOnCursors is spec.md Scenario D: S=2, T=4.
func TestMixStepKernelExtractIsNoOpOnCursors(t *testing.T) {
	pair := NewMixStepKernel(2, 4)

	for i := 0; i < 7; i++ {
		pair.Pusher.OnPush()
		pair.Extractor.OnExtract()

		if got := pair.Extractor.IdxBegin(); got != 0 {
			t.Fatalf("iteration %d: IdxBegin() = %d, want 0", i, got)
		}
		if got := pair.Extractor.IdxEnd(); got != 8 {
			t.Fatalf("iteration %d: IdxEnd() = %d, want 8 (S*T)", i, got)
		}
	}
}

func TestMixStepKernelPusherClearsNeedAdvance(t *testing.T) {
	pusher := NewMixStepKernelPusher(memdesc.New(2, 4))
	pusher.SetNeedAdvance(true)
	pusher.OnPush()
	if pusher.NeedAdvance() {
		t.Error("NeedAdvance() should be false after OnPush")
	}
}

// TestMixStepFluxPusherStaysPinnedAcrossPushes locks in the fixed [0, S)
// write window spec.md's MixStep flux describes: a single time slab is
// live, so unlike ConstStep/MainStep, a second (and third) push must not
// slide idx_begin toward the front of the buffer.
func TestMixStepFluxPusherStaysPinnedAcrossPushes(t *testing.T) {
	pair := NewMixStepFlux(2, 4)

	for i := 0; i < 3; i++ {
		pair.Pusher.OnPush()
		if got := pair.Pusher.IdxBegin(); got != 0 {
			t.Fatalf("iteration %d: IdxBegin() = %d, want 0", i, got)
		}
		if got := pair.Pusher.IdxEnd(); got != 2 {
			t.Fatalf("iteration %d: IdxEnd() = %d, want 2 (S)", i, got)
		}
	}
}
