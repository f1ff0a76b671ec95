package reaction

// ring is a fixed-capacity FIFO. Pushing into a full ring overwrites the
// oldest element, so eviction is O(1); compaction is O(live).
type ring[T any] struct {
	buf  []T
	head int // index of the oldest element
	n    int
}

func newRing[T any](capacity int) *ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &ring[T]{buf: make([]T, capacity)}
}

func (r *ring[T]) Len() int { return r.n }

func (r *ring[T]) Cap() int { return len(r.buf) }

// at returns the i-th element counting from the oldest.
func (r *ring[T]) at(i int) *T {
	return &r.buf[(r.head+i)%len(r.buf)]
}

// push appends v. When the ring is full the oldest element is dropped and
// returned with ok set.
func (r *ring[T]) push(v T) (evicted T, ok bool) {
	if r.n == len(r.buf) {
		evicted = r.buf[r.head]
		r.buf[r.head] = v
		r.head = (r.head + 1) % len(r.buf)
		return evicted, true
	}
	r.buf[(r.head+r.n)%len(r.buf)] = v
	r.n++
	return evicted, false
}

// compact drops every element keep rejects, preserving relative order.
func (r *ring[T]) compact(keep func(*T) bool) {
	w := 0
	for i := 0; i < r.n; i++ {
		p := r.at(i)
		if !keep(p) {
			continue
		}
		if w != i {
			*r.at(w) = *p
		}
		w++
	}
	var zero T
	for i := w; i < r.n; i++ {
		*r.at(i) = zero
	}
	r.n = w
}

func (r *ring[T]) each(fn func(*T)) {
	for i := 0; i < r.n; i++ {
		fn(r.at(i))
	}
}
