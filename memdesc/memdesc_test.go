package memdesc

import "testing"

func TestNew(t *testing.T) {
	d := New(4, 3)
	if d.SpatialSize() != 4 {
		t.Errorf("SpatialSize() = %d, want 4", d.SpatialSize())
	}
	if d.TemporalSize() != 3 {
		t.Errorf("TemporalSize() = %d, want 3", d.TemporalSize())
	}
	if d.AllocatedMemory() != 12 {
		t.Errorf("AllocatedMemory() = %d, want 12", d.AllocatedMemory())
	}
	if d.CurTemporalWindow != 0 {
		t.Errorf("CurTemporalWindow = %d, want 0", d.CurTemporalWindow)
	}
}

func TestNewPanicsOnZero(t *testing.T) {
	cases := []struct {
		name          string
		spatial, temp uint64
	}{
		{"zero spatial", 0, 3},
		{"zero temporal", 4, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("New(%d, %d) did not panic", c.spatial, c.temp)
				}
			}()
			New(c.spatial, c.temp)
		})
	}
}

func TestDescCopyIsIndependent(t *testing.T) {
	d := New(2, 5)
	other := d
	other.CurTemporalWindow = 3
	if d.CurTemporalWindow != 0 {
		t.Errorf("copying a Desc should not affect the original's CurTemporalWindow, got %d", d.CurTemporalWindow)
	}
}
