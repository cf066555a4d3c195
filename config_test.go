package wigfit

import (
	"math"
	"testing"
	"time"
)

func TestClampVolumeReduction(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"default", 0.7, 0.7},
		{"lower bound", 0.6, 0.6},
		{"upper bound", 0.8, 0.8},
		{"below range", 0.1, 0.6},
		{"above range", 1.5, 0.8},
		{"negative", -2, 0.6},
		{"NaN", math.NaN(), DefaultVolumeReduction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampVolumeReduction(tt.in); got != tt.want {
				t.Errorf("ClampVolumeReduction(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampBlendRadiusAndWidth(t *testing.T) {
	tests := []struct {
		in         int
		wantRadius int
		wantWidth  int
	}{
		{-1, 5, 10},
		{0, 5, 10},
		{4, 5, 10},
		{5, 5, 10},
		{9, 9, 10},
		{10, 10, 10},
		{25, 25, 25},
	}
	for _, tt := range tests {
		if got := ClampBlendRadius(tt.in); got != tt.wantRadius {
			t.Errorf("ClampBlendRadius(%d) = %d, want %d", tt.in, got, tt.wantRadius)
		}
		if got := ClampBlendWidth(tt.in); got != tt.wantWidth {
			t.Errorf("ClampBlendWidth(%d) = %d, want %d", tt.in, got, tt.wantWidth)
		}
	}
}

func TestConfigClamped(t *testing.T) {
	c := Config{
		VolumeReduction: 0.95,
		BlendRadius:     2,
		BlendWidth:      3,
		MaxPoolBuffers:  50,
		MaxPoolBytes:    1 << 40,
	}.Clamped()

	if c.VolumeReduction != MaxVolumeReduction {
		t.Errorf("VolumeReduction = %v, want %v", c.VolumeReduction, MaxVolumeReduction)
	}
	if c.BlendRadius != 5 || c.BlendWidth != 10 {
		t.Errorf("BlendRadius/BlendWidth = %d/%d, want 5/10", c.BlendRadius, c.BlendWidth)
	}
	if c.MaxPoolBuffers != DefaultMaxPoolBuffers || c.MaxPoolBytes != DefaultMaxPoolBytes {
		t.Errorf("pool caps = %d/%d, want defaults", c.MaxPoolBuffers, c.MaxPoolBytes)
	}
	if c.PoolIdleTimeout != 30*time.Second {
		t.Errorf("PoolIdleTimeout = %v, want 30s", c.PoolIdleTimeout)
	}
	if c.FlattenBudget != 300*time.Millisecond || c.PositionBudget != 200*time.Millisecond || c.BlendBudget != 100*time.Millisecond {
		t.Errorf("budgets = %v/%v/%v", c.FlattenBudget, c.PositionBudget, c.BlendBudget)
	}
	if c.GapDeviation != DefaultGapDeviation || c.SmoothVariance != DefaultSmoothVariance {
		t.Errorf("validation thresholds = %v/%v", c.GapDeviation, c.SmoothVariance)
	}
}

func TestConfigClampedKeepsLowerCaps(t *testing.T) {
	c := Config{MaxPoolBuffers: 2, MaxPoolBytes: 1024}.Clamped()
	if c.MaxPoolBuffers != 2 || c.MaxPoolBytes != 1024 {
		t.Errorf("caps = %d/%d, want 2/1024", c.MaxPoolBuffers, c.MaxPoolBytes)
	}
}

func TestDefaultConfigIsClamped(t *testing.T) {
	if DefaultConfig() != DefaultConfig().Clamped() {
		t.Error("DefaultConfig() should already be within range")
	}
}
