package orderbook

import (
	"container/heap"
	"testing"
)

func TestPriceHeapOrderAndDedupe(t *testing.T) {
	h := NewPriceHeap(func(i, j int64) bool { return i < j })

	for _, p := range []int64{105, 101, 103, 101, 105} {
		heap.Push(h, p)
	}
	if h.Len() != 3 {
		t.Fatalf("expected dedupe to 3 prices, got %d", h.Len())
	}

	want := []int64{101, 103, 105}
	for _, w := range want {
		got, ok := h.Peek()
		if !ok || got != w {
			t.Fatalf("expected peek %d, got %d (ok=%v)", w, got, ok)
		}
		heap.Pop(h)
	}

	if _, ok := h.Peek(); ok {
		t.Error("expected empty heap")
	}
}
