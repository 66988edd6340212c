package rollgrid

// Queue is a FIFO queue that holds each value at most once. Pushing a value
// that is already queued is a no-op; once popped, it may be pushed again.
type Queue[T comparable] struct {
	q      []T
	queued map[T]bool
}

func NewQueue[T comparable](in ...T) *Queue[T] {
	q := new(Queue[T])
	for _, v := range in {
		q.Push(v)
	}
	return q
}

func (q *Queue[T]) Len() int {
	return len(q.q)
}

// Push appends v unless it is already in the queue. It reports whether v was
// added.
func (q *Queue[T]) Push(v T) bool {
	if q.queued[v] {
		return false
	}
	if q.queued == nil {
		q.queued = make(map[T]bool)
	}
	q.queued[v] = true
	q.q = append(q.q, v)
	return true
}

func (q *Queue[T]) Pop() (T, bool) {
	if len(q.q) == 0 {
		var zero T
		return zero, false
	}
	v := q.q[0]
	q.q = q.q[1:]
	delete(q.queued, v)
	return v, true
}

// While pops values until the queue is empty or f returns false.
func (q *Queue[T]) While(f func(T) bool) {
	for {
		v, ok := q.Pop()
		if !ok {
			return
		}
		if !f(v) {
			return
		}
	}
}
