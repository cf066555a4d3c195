package wigfit

import (
	"time"

	"github.com/gogpu/wigfit/internal/cache"
)

// Buffer is a zero-filled RGBA scratch buffer, 4 bytes per pixel.
//
// Buffers are issued by a BufferPool only. A Buffer stays valid after its
// pool evicts it; it just stops being tracked.
type Buffer struct {
	data   []uint8
	width  int
	height int

	pool  *BufferPool
	entry *poolEntry
}

// Bytes returns the pixel storage.
func (b *Buffer) Bytes() []uint8 { return b.data }

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Pooled reports whether the buffer is currently tracked by its pool.
func (b *Buffer) Pooled() bool { return b.entry != nil }

// Frame views the buffer as a Frame without copying.
func (b *Buffer) Frame() *Frame {
	return &Frame{width: b.width, height: b.height, data: b.data}
}

type poolEntry struct {
	buf        *Buffer
	width      int
	height     int
	byteSize   int64
	lastUsedAt time.Time
	inUse      bool
	node       *cache.Node[*poolEntry]
}

// PoolStats reports cumulative pool counters.
type PoolStats struct {
	Hits      uint64 // acquires served by an idle pooled buffer
	Misses    uint64 // acquires that allocated
	Evictions uint64 // entries dropped to make room or by EvictIdle
	Unpooled  uint64 // buffers returned without tracking
}

// BufferPool is a bounded pool of reusable pixel buffers keyed by exact
// dimensions. It never holds more than 5 entries or 100MB.
//
// BufferPool is not safe for concurrent use.
type BufferPool struct {
	maxBuffers  int
	maxBytes    int64
	idleTimeout time.Duration
	now         func() time.Time

	lru   *cache.List[*poolEntry] // front = most recently used
	bytes int64
	stats PoolStats
}

// NewBufferPool creates an empty pool.
func NewBufferPool(opts ...PoolOption) *BufferPool {
	o := defaultPoolOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &BufferPool{
		maxBuffers:  o.maxBuffers,
		maxBytes:    o.maxBytes,
		idleTimeout: o.idleTimeout,
		now:         o.now,
		lru:         cache.NewList[*poolEntry](),
	}
}

// Acquire returns a zero-filled buffer of width*height*4 bytes.
//
// An idle buffer of the same dimensions is reused. Otherwise least recently
// used entries are evicted until the new buffer fits the caps; a request
// larger than the memory cap gets an unpooled buffer. Zero or negative
// dimensions yield an empty unpooled buffer.
func (p *BufferPool) Acquire(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		return &Buffer{data: []uint8{}, pool: p}
	}

	for _, e := range p.lru.Keys() {
		if e.inUse || e.width != width || e.height != height {
			continue
		}
		clear(e.buf.data)
		e.inUse = true
		e.lastUsedAt = p.now()
		p.lru.MoveToFront(e.node)
		p.stats.Hits++
		return e.buf
	}

	p.stats.Misses++
	size := int64(width) * int64(height) * 4
	buf := &Buffer{
		data:   make([]uint8, size),
		width:  width,
		height: height,
		pool:   p,
	}
	if size > p.maxBytes {
		p.stats.Unpooled++
		Logger().Debug("buffer pool: request exceeds memory cap, returning unpooled buffer",
			"width", width, "height", height, "bytes", size)
		return buf
	}

	for p.lru.Len() > 0 && (p.lru.Len() >= p.maxBuffers || p.bytes+size > p.maxBytes) {
		oldest, _ := p.lru.Back()
		p.drop(oldest)
		p.stats.Evictions++
	}

	e := &poolEntry{
		buf:        buf,
		width:      width,
		height:     height,
		byteSize:   size,
		lastUsedAt: p.now(),
		inUse:      true,
	}
	e.node = p.lru.PushFront(e)
	buf.entry = e
	p.bytes += size
	return buf
}

// Release returns a buffer to the pool and refreshes its recency.
// Foreign, unpooled, evicted or already released buffers are ignored.
func (p *BufferPool) Release(buf *Buffer) {
	if buf == nil || buf.pool != p || buf.entry == nil || !buf.entry.inUse {
		return
	}
	e := buf.entry
	e.inUse = false
	e.lastUsedAt = p.now()
	p.lru.MoveToFront(e.node)
}

// EvictIdle drops released buffers unused for longer than maxAge and
// returns how many were dropped. A non-positive maxAge uses the pool's
// idle timeout (30s by default).
func (p *BufferPool) EvictIdle(maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = p.idleTimeout
	}
	now := p.now()
	n := 0
	for _, e := range p.lru.Keys() {
		if e.inUse || now.Sub(e.lastUsedAt) <= maxAge {
			continue
		}
		p.drop(e)
		p.stats.Evictions++
		n++
	}
	if n > 0 {
		Logger().Debug("buffer pool: evicted idle buffers", "count", n, "remaining", p.lru.Len())
	}
	return n
}

// Clear drops every entry. Outstanding buffers remain valid but untracked.
func (p *BufferPool) Clear() {
	for _, e := range p.lru.Keys() {
		e.buf.entry = nil
	}
	p.lru.Clear()
	p.bytes = 0
}

// Len returns the number of tracked buffers.
func (p *BufferPool) Len() int { return p.lru.Len() }

// MemoryUsage returns the bytes held by tracked buffers.
func (p *BufferPool) MemoryUsage() int64 { return p.bytes }

// Stats returns the cumulative counters.
func (p *BufferPool) Stats() PoolStats { return p.stats }

func (p *BufferPool) drop(e *poolEntry) {
	p.lru.Remove(e.node)
	p.bytes -= e.byteSize
	e.buf.entry = nil
	Logger().Debug("buffer pool: evicted buffer",
		"width", e.width, "height", e.height, "in_use", e.inUse)
}
