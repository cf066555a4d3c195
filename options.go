package wigfit

import "time"

// EngineOption configures a FlatteningEngine during creation.
//
// Example:
//
//	// CPU only, default settings
//	engine := wigfit.NewFlatteningEngine()
//
//	// Injected accelerator and shared pool
//	engine := wigfit.NewFlatteningEngine(
//	    wigfit.WithAccelerator(acc),
//	    wigfit.WithBufferPool(pool),
//	)
type EngineOption func(*engineOptions)

type engineOptions struct {
	cfg   Config
	mode  Mode
	accel FlattenAccelerator
	pool  *BufferPool
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		cfg:  DefaultConfig(),
		mode: ModeNormal,
	}
}

// WithConfig replaces the engine configuration. Fields are clamped.
func WithConfig(cfg Config) EngineOption {
	return func(o *engineOptions) {
		o.cfg = cfg
	}
}

// WithMode sets the initial adjustment mode.
func WithMode(m Mode) EngineOption {
	return func(o *engineOptions) {
		o.mode = m
	}
}

// WithAccelerator injects a flatten accelerator instead of the globally
// registered one. Useful for tests and for hosts that own the GPU device.
func WithAccelerator(a FlattenAccelerator) EngineOption {
	return func(o *engineOptions) {
		o.accel = a
	}
}

// WithBufferPool shares a scratch buffer pool with the engine.
// Without it the engine creates a private pool.
func WithBufferPool(p *BufferPool) EngineOption {
	return func(o *engineOptions) {
		o.pool = p
	}
}

// PoolOption configures a BufferPool during creation.
type PoolOption func(*poolOptions)

type poolOptions struct {
	maxBuffers  int
	maxBytes    int64
	idleTimeout time.Duration
	now         func() time.Time
}

func defaultPoolOptions() poolOptions {
	return poolOptions{
		maxBuffers:  DefaultMaxPoolBuffers,
		maxBytes:    DefaultMaxPoolBytes,
		idleTimeout: DefaultPoolIdleTimeout,
		now:         time.Now,
	}
}

// WithPoolConfig takes the pool caps and idle timeout from cfg.
func WithPoolConfig(cfg Config) PoolOption {
	return func(o *poolOptions) {
		c := cfg.Clamped()
		o.maxBuffers = c.MaxPoolBuffers
		o.maxBytes = c.MaxPoolBytes
		o.idleTimeout = c.PoolIdleTimeout
	}
}

// WithMaxBuffers lowers the buffer count cap. Values outside (0, 5] are ignored.
func WithMaxBuffers(n int) PoolOption {
	return func(o *poolOptions) {
		if n > 0 && n <= DefaultMaxPoolBuffers {
			o.maxBuffers = n
		}
	}
}

// WithMaxBytes lowers the memory cap. Values outside (0, 100MB] are ignored.
func WithMaxBytes(n int64) PoolOption {
	return func(o *poolOptions) {
		if n > 0 && n <= DefaultMaxPoolBytes {
			o.maxBytes = n
		}
	}
}

// WithClock overrides the time source used for recency and idle eviction.
func WithClock(now func() time.Time) PoolOption {
	return func(o *poolOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// AdjusterOption configures a WigAlignmentAdjuster during creation.
type AdjusterOption func(*adjusterOptions)

type adjusterOptions struct {
	cfg Config
}

func defaultAdjusterOptions() adjusterOptions {
	return adjusterOptions{cfg: DefaultConfig()}
}

// WithAdjusterConfig replaces the adjuster configuration. Fields are clamped.
func WithAdjusterConfig(cfg Config) AdjusterOption {
	return func(o *adjusterOptions) {
		o.cfg = cfg
	}
}

// WithBlendWidth sets the edge taper width; values below 10px are raised to 10.
func WithBlendWidth(w int) AdjusterOption {
	return func(o *adjusterOptions) {
		o.cfg.BlendWidth = w
	}
}
