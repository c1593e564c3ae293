package particles

// Pool is a fixed-capacity ring of short-lived particles. Pushing into a
// full pool evicts the oldest entry.
type Pool[T any] struct {
	items []T
	head  int // index of the oldest entry
	size  int
}

// NewPool creates a pool holding at most capacity entries.
func NewPool[T any](capacity int) *Pool[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool[T]{items: make([]T, capacity)}
}

func (p *Pool[T]) Len() int { return p.size }
func (p *Pool[T]) Cap() int { return len(p.items) }

// Push appends v, evicting the oldest entry when the pool is full.
func (p *Pool[T]) Push(v T) {
	if p.size == len(p.items) {
		p.items[p.head] = v
		p.head = (p.head + 1) % len(p.items)
		return
	}
	p.items[(p.head+p.size)%len(p.items)] = v
	p.size++
}

// Update calls step on every entry from oldest to newest and drops the
// entries for which it returns false.
func (p *Pool[T]) Update(step func(*T) bool) {
	kept := 0
	for i := 0; i < p.size; i++ {
		src := (p.head + i) % len(p.items)
		if !step(&p.items[src]) {
			continue
		}
		dst := (p.head + kept) % len(p.items)
		p.items[dst] = p.items[src]
		kept++
	}

	var zero T
	for i := kept; i < p.size; i++ {
		p.items[(p.head+i)%len(p.items)] = zero
	}
	p.size = kept
}

// Items returns a copy of the live entries, oldest first.
func (p *Pool[T]) Items() []T {
	out := make([]T, p.size)
	for i := range out {
		out[i] = p.items[(p.head+i)%len(p.items)]
	}
	return out
}

// Clear drops every entry.
func (p *Pool[T]) Clear() {
	var zero T
	for i := range p.items {
		p.items[i] = zero
	}
	p.head, p.size = 0, 0
}
