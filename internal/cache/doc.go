// Package cache provides the small recency structures shared by the buffer
// pool and the smoothing-kernel cache.
//
// # List[K]
//
// An intrusive doubly-linked recency list. The front is the most recently
// used key, the back the least recently used one. BufferPool keeps one node
// per pooled buffer and walks the list from the back when it needs room.
//
//	l := cache.NewList[uint64]()
//	n := l.PushFront(42)
//	l.MoveToFront(n)
//	oldest, ok := l.Back()
//
// # Cache[K, V]
//
// A thread-safe soft-limit cache. When the cache grows past its limit the
// oldest quarter of the entries (by access tick) is dropped.
//
//	kernels := cache.New[int, []float32](16)
//	k := kernels.GetOrCreate(radius, func() []float32 { return build(radius) })
//
// List is not safe for concurrent use; Cache is.
package cache
