package internal

// PendingQueue is an insertion-ordered set of effects waiting for the next flush.
type PendingQueue struct {
	effects []*Effect
	index   map[*Effect]struct{}
}

func NewPendingQueue() *PendingQueue {
	return &PendingQueue{
		effects: make([]*Effect, 0),
		index:   make(map[*Effect]struct{}),
	}
}

// Enqueue adds the effect unless it is already queued.
// It reports whether the effect was added.
func (q *PendingQueue) Enqueue(e *Effect) bool {
	if _, ok := q.index[e]; ok {
		return false
	}

	q.index[e] = struct{}{}
	q.effects = append(q.effects, e)
	return true
}

func (q *PendingQueue) Contains(e *Effect) bool {
	_, ok := q.index[e]
	return ok
}

func (q *PendingQueue) Len() int {
	return len(q.effects)
}

// Drain returns the queued effects in first-enqueued order and empties the queue.
func (q *PendingQueue) Drain() []*Effect {
	effects := q.effects
	q.effects = make([]*Effect, 0, len(effects))
	clear(q.index)

	return effects
}

type SettledQueue struct {
	callbacks []func()
}

func NewSettledQueue() *SettledQueue {
	return &SettledQueue{
		callbacks: make([]func(), 0),
	}
}

func (q *SettledQueue) Enqueue(fn func()) {
	q.callbacks = append(q.callbacks, fn)
}

func (q *SettledQueue) Len() int {
	return len(q.callbacks)
}

func (q *SettledQueue) Run() {
	callbacks := q.callbacks
	q.callbacks = make([]func(), 0)

	for _, cb := range callbacks {
		cb()
	}
}
