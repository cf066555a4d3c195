package wigfit

import (
	"math"
	"testing"
)

func TestIsSkinTone(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    bool
	}{
		{"typical skin", 200, 160, 130, true},
		{"dark skin", 110, 80, 60, true},
		{"too dark red", 60, 40, 20, false},
		{"saturated red", 255, 100, 50, false},
		{"gray", 128, 128, 128, false},
		{"blue", 40, 80, 200, false},
		{"green over red", 100, 150, 50, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSkinTone(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("isSkinTone(%d, %d, %d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestNeutralScalpTone(t *testing.T) {
	r, g, b := NeutralScalpTone()
	if r != 209 || g != 176 || b != 153 {
		t.Errorf("NeutralScalpTone() = (%d, %d, %d), want (209, 176, 153)", r, g, b)
	}
	if !isSkinTone(r, g, b) {
		t.Error("neutral scalp tone should itself read as skin")
	}
}

func TestMidtoneDistance(t *testing.T) {
	if d := midtoneDistance(128, 128, 128); d > 0.01 {
		t.Errorf("midtoneDistance(gray) = %v, want ~0", d)
	}
	want := math.Sqrt(3 * 0.25)
	if d := midtoneDistance(255, 255, 255); math.Abs(d-want) > 0.01 {
		t.Errorf("midtoneDistance(white) = %v, want %v", d, want)
	}
	if midtoneDistance(0, 0, 0) < DefaultGapDeviation {
		t.Error("black should count as a gap color")
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    float64
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 1},
		{255, 0, 0, 0.2126},
		{0, 255, 0, 0.7152},
		{0, 0, 255, 0.0722},
	}
	for _, tt := range tests {
		if got := luminance(tt.r, tt.g, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("luminance(%d, %d, %d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestDarken(t *testing.T) {
	tests := []struct {
		c      uint8
		factor float64
		want   uint8
	}{
		{100, 0.895, 89},
		{255, 1, 255},
		{1, 0.9, 0},
		{0, 0.5, 0},
	}
	for _, tt := range tests {
		if got := darken(tt.c, tt.factor); got != tt.want {
			t.Errorf("darken(%d, %v) = %d, want %d", tt.c, tt.factor, got, tt.want)
		}
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name            string
		edge0, edge1, x float64
		want            float64
	}{
		{"below", 0, 10, -1, 0},
		{"at start", 0, 10, 0, 0},
		{"midpoint", 0, 10, 5, 0.5},
		{"at end", 0, 10, 10, 1},
		{"above", 0, 10, 20, 1},
		{"degenerate below", 5, 5, 4, 0},
		{"degenerate at edge", 5, 5, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := smoothstep(tt.edge0, tt.edge1, tt.x); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("smoothstep(%v, %v, %v) = %v, want %v", tt.edge0, tt.edge1, tt.x, got, tt.want)
			}
		})
	}
}
