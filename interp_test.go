package wigfit

import (
	"math"
	"testing"
)

func TestSampleBilinearPixelCenters(t *testing.T) {
	f := NewFrame(2, 1)
	f.SetRGBA(0, 0, 0, 0, 0, 255)
	f.SetRGBA(1, 0, 200, 100, 50, 255)

	tests := []struct {
		name string
		u    float64
		want float64 // red channel
	}{
		{"left center", 0.5, 0},
		{"right center", 1.5, 200},
		{"between centers", 1.0, 100},
		{"left edge clamps", 0.1, 0},
		{"right edge clamps", 1.9, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _, a := sampleBilinear(f, tt.u, 0.5)
			if math.Abs(r-tt.want) > 1e-9 {
				t.Errorf("r = %v, want %v", r, tt.want)
			}
			if math.Abs(a-255) > 1e-9 {
				t.Errorf("a = %v, want 255", a)
			}
		})
	}
}

func TestSampleBilinearOutside(t *testing.T) {
	f := NewFrame(2, 2)
	f.Fill(10, 20, 30, 255)
	for _, p := range []Point{{-0.1, 1}, {1, -0.1}, {2, 1}, {1, 2}} {
		r, g, b, a := sampleBilinear(f, p.X, p.Y)
		if r != 0 || g != 0 || b != 0 || a != 0 {
			t.Errorf("sample at %v = (%v, %v, %v, %v), want transparent", p, r, g, b, a)
		}
	}
	if _, _, _, a := sampleBilinear(NewFrame(0, 0), 0, 0); a != 0 {
		t.Error("empty frame should sample transparent")
	}
}

func TestSampleBilinearUniform(t *testing.T) {
	f := NewFrame(3, 3)
	f.Fill(40, 80, 120, 200)
	r, g, b, a := sampleBilinear(f, 1.3, 2.7)
	got := [4]float64{r, g, b, a}
	want := [4]float64{40, 80, 120, 200}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("uniform sample = %v, want %v", got, want)
			break
		}
	}
}
