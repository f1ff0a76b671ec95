package reaction

import "testing"

func collect(r *ring[int]) []int {
	var out []int
	r.each(func(v *int) { out = append(out, *v) })
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRingPushEvictsOldest(t *testing.T) {
	r := newRing[int](3)
	for i := 1; i <= 3; i++ {
		if _, evicted := r.push(i); evicted {
			t.Fatalf("push %d evicted before the ring was full", i)
		}
	}

	old, evicted := r.push(4)
	if !evicted || old != 1 {
		t.Fatalf("push into full ring: got (%d, %v), want (1, true)", old, evicted)
	}
	if got := collect(r); !equalInts(got, []int{2, 3, 4}) {
		t.Errorf("contents = %v, want [2 3 4]", got)
	}
}

func TestRingCompactPreservesOrder(t *testing.T) {
	r := newRing[int](5)
	for i := 1; i <= 7; i++ {
		r.push(i) // wraps: 3..7
	}
	r.compact(func(v *int) bool { return *v%2 == 1 })

	if got := collect(r); !equalInts(got, []int{3, 5, 7}) {
		t.Fatalf("after compact = %v, want [3 5 7]", got)
	}

	r.push(8)
	r.push(9)
	r.push(10)
	if got := collect(r); !equalInts(got, []int{5, 7, 8, 9, 10}) {
		t.Errorf("after refill = %v, want [5 7 8 9 10]", got)
	}
}

func TestRingZeroCapacity(t *testing.T) {
	r := newRing[int](0)
	if r.Cap() != 1 {
		t.Fatalf("Cap() = %d, want 1", r.Cap())
	}
	r.push(1)
	r.push(2)
	if got := collect(r); !equalInts(got, []int{2}) {
		t.Errorf("contents = %v, want [2]", got)
	}
}
