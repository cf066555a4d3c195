package wigfit

import (
	"math"
	"testing"
)

func TestGaussianKernelTaps(t *testing.T) {
	k := newGaussianKernel(2)

	// Circular footprint of radius 2: 13 taps.
	if len(k.taps) != 13 {
		t.Fatalf("len(taps) = %d, want 13", len(k.taps))
	}
	for _, tap := range k.taps {
		d2 := float64(tap.dx*tap.dx + tap.dy*tap.dy)
		if d2 > 4 {
			t.Errorf("tap (%d, %d) outside radius", tap.dx, tap.dy)
		}
		want := math.Exp(-d2 / 8)
		if math.Abs(tap.weight-want) > 1e-12 {
			t.Errorf("weight(%d, %d) = %v, want %v", tap.dx, tap.dy, tap.weight, want)
		}
	}
}

func TestGaussianKernelCenterHeaviest(t *testing.T) {
	k := newGaussianKernel(5)
	var center float64
	for _, tap := range k.taps {
		if tap.dx == 0 && tap.dy == 0 {
			center = tap.weight
		}
	}
	if center != 1 {
		t.Fatalf("center weight = %v, want 1", center)
	}
	for _, tap := range k.taps {
		if tap.weight > center {
			t.Errorf("tap (%d, %d) weight %v exceeds center", tap.dx, tap.dy, tap.weight)
		}
	}
}

func TestKernelForCaches(t *testing.T) {
	a := kernelFor(7)
	b := kernelFor(7)
	if a != b {
		t.Error("kernelFor returned distinct kernels for the same radius")
	}
	if kernelFor(8) == a {
		t.Error("kernelFor returned the same kernel for different radii")
	}
	if a.radius != 7 {
		t.Errorf("radius = %d, want 7", a.radius)
	}
}
