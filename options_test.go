package wigfit

import (
	"testing"
	"time"
)

func TestEngineOptions(t *testing.T) {
	pool := NewBufferPool()
	acc := &mockAccelerator{name: "injected"}
	cfg := DefaultConfig()
	cfg.VolumeReduction = 0.65
	cfg.BlendRadius = 8

	e := NewFlatteningEngine(
		WithConfig(cfg),
		WithMode(ModeBald),
		WithAccelerator(acc),
		WithBufferPool(pool),
	)

	s := e.Settings()
	if s.Mode != ModeBald {
		t.Errorf("Mode = %v, want %v", s.Mode, ModeBald)
	}
	if s.VolumeReduction != 0.65 {
		t.Errorf("VolumeReduction = %v, want 0.65", s.VolumeReduction)
	}
	if s.BlendRadius != 8 {
		t.Errorf("BlendRadius = %d, want 8", s.BlendRadius)
	}
	if e.BufferPool() != pool {
		t.Error("BufferPool() is not the injected pool")
	}
	if e.accel != acc {
		t.Error("injected accelerator not stored")
	}
}

func TestEngineOptionsClampConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VolumeReduction = 0.1
	cfg.BlendRadius = 2

	s := NewFlatteningEngine(WithConfig(cfg)).Settings()
	if s.VolumeReduction != MinVolumeReduction {
		t.Errorf("VolumeReduction = %v, want %v", s.VolumeReduction, MinVolumeReduction)
	}
	if s.BlendRadius != DefaultBlendRadius {
		t.Errorf("BlendRadius = %d, want %d", s.BlendRadius, DefaultBlendRadius)
	}
}

func TestPoolOptions(t *testing.T) {
	fixed := time.Unix(100, 0)
	tests := []struct {
		name        string
		opts        []PoolOption
		wantBuffers int
		wantBytes   int64
	}{
		{"defaults", nil, DefaultMaxPoolBuffers, DefaultMaxPoolBytes},
		{"lower caps", []PoolOption{WithMaxBuffers(2), WithMaxBytes(1024)}, 2, 1024},
		{"cannot raise buffers", []PoolOption{WithMaxBuffers(50)}, DefaultMaxPoolBuffers, DefaultMaxPoolBytes},
		{"cannot raise bytes", []PoolOption{WithMaxBytes(DefaultMaxPoolBytes * 2)}, DefaultMaxPoolBuffers, DefaultMaxPoolBytes},
		{"zero ignored", []PoolOption{WithMaxBuffers(0), WithMaxBytes(0)}, DefaultMaxPoolBuffers, DefaultMaxPoolBytes},
		{"from config", []PoolOption{WithPoolConfig(Config{MaxPoolBuffers: 3, MaxPoolBytes: 4096})}, 3, 4096},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewBufferPool(append(tt.opts, WithClock(func() time.Time { return fixed }))...)
			if p.maxBuffers != tt.wantBuffers {
				t.Errorf("maxBuffers = %d, want %d", p.maxBuffers, tt.wantBuffers)
			}
			if p.maxBytes != tt.wantBytes {
				t.Errorf("maxBytes = %d, want %d", p.maxBytes, tt.wantBytes)
			}
			if !p.now().Equal(fixed) {
				t.Errorf("now() = %v, want %v", p.now(), fixed)
			}
		})
	}
}

func TestWithClockNilIgnored(t *testing.T) {
	p := NewBufferPool(WithClock(nil))
	if p.now == nil {
		t.Fatal("nil clock replaced the default")
	}
}

func TestAdjusterOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []AdjusterOption
		want int
	}{
		{"default", nil, DefaultBlendWidth},
		{"wider", []AdjusterOption{WithBlendWidth(16)}, 16},
		{"raised to minimum", []AdjusterOption{WithBlendWidth(4)}, DefaultBlendWidth},
		{"from config", []AdjusterOption{WithAdjusterConfig(Config{BlendWidth: 12})}, 12},
		{"later option wins", []AdjusterOption{WithAdjusterConfig(Config{BlendWidth: 12}), WithBlendWidth(20)}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewWigAlignmentAdjuster(tt.opts...).BlendWidth(); got != tt.want {
				t.Errorf("BlendWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}
