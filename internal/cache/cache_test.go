package cache

import "testing"

func TestList_Order(t *testing.T) {
	l := NewList[int]()
	a := l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)

	if got, _ := l.Back(); got != 1 {
		t.Fatalf("Back() = %d, want 1", got)
	}

	l.MoveToFront(a)
	want := []int{2, 3, 1}
	got := l.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
}

func TestList_RemoveTwice(t *testing.T) {
	l := NewList[string]()
	n := l.PushFront("a")
	l.PushFront("b")

	l.Remove(n)
	l.Remove(n)
	if l.Len() != 1 {
		t.Errorf("Len() = %d after double remove, want 1", l.Len())
	}

	// A removed node must not be resurrected by MoveToFront.
	l.MoveToFront(n)
	if l.Len() != 1 {
		t.Errorf("Len() = %d after MoveToFront of removed node, want 1", l.Len())
	}
}

func TestList_ForeignNode(t *testing.T) {
	l1 := NewList[int]()
	l2 := NewList[int]()
	n := l1.PushFront(7)
	l2.PushFront(8)

	l2.Remove(n)
	l2.MoveToFront(n)
	if l1.Len() != 1 || l2.Len() != 1 {
		t.Errorf("lengths = %d,%d, want 1,1", l1.Len(), l2.Len())
	}
}

func TestList_Clear(t *testing.T) {
	l := NewList[int]()
	for i := 0; i < 4; i++ {
		l.PushFront(i)
	}
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if _, ok := l.Back(); ok {
		t.Error("Back() on cleared list reported a key")
	}
}

func TestCache_GetOrCreate(t *testing.T) {
	c := New[int, string](0)
	calls := 0
	create := func() string { calls++; return "v" }

	c.GetOrCreate(1, create)
	c.GetOrCreate(1, create)
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	if v, ok := c.Get(1); !ok || v != "v" {
		t.Errorf("Get(1) = %q, %v", v, ok)
	}
}

func TestCache_SoftLimit(t *testing.T) {
	c := New[int, int](8)
	for i := 0; i < 9; i++ {
		c.GetOrCreate(i, func() int { return i })
	}
	if c.Len() > 8 {
		t.Errorf("Len() = %d, want <= 8", c.Len())
	}
	// The most recent key survives eviction.
	if _, ok := c.Get(8); !ok {
		t.Error("most recent entry was evicted")
	}
	if _, ok := c.Get(0); ok {
		t.Error("oldest entry survived eviction")
	}
}
