package sampling

import "testing"

func TestRNGPoolSeedsPerWorker(t *testing.T) {
	a := NewRNGPool(3, 42)
	b := NewRNGPool(3, 42)
	if a.Size() != 3 || a.Seed() != 42 {
		t.Fatalf("size=%d seed=%d", a.Size(), a.Seed())
	}
	for w := range 3 {
		if a.Get(w).Int63() != b.Get(w).Int63() {
			t.Fatalf("worker %d: same seed gave different streams", w)
		}
	}
	if NewRNGPool(2, 42).Get(0).Int63() == NewRNGPool(2, 42).Get(1).Int63() {
		t.Fatalf("workers 0 and 1 share a stream")
	}
}

func TestRNGPoolDefaults(t *testing.T) {
	p := NewRNGPool(0, 0)
	if p.Size() != 1 {
		t.Fatalf("size: got %d want 1", p.Size())
	}
	if p.Seed() == 0 {
		t.Fatalf("zero seed should be replaced")
	}
}
