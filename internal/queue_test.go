package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingQueue(t *testing.T) {
	t.Run("deduplicates and keeps the first order", func(t *testing.T) {
		r := NewRuntime()
		a, b := r.newEffect(nil), r.newEffect(nil)

		q := NewPendingQueue()
		assert.True(t, q.Enqueue(b))
		assert.True(t, q.Enqueue(a))
		assert.False(t, q.Enqueue(b))

		assert.True(t, q.Contains(a))
		assert.Equal(t, 2, q.Len())
		assert.Equal(t, []*Effect{b, a}, q.Drain())

		assert.Equal(t, 0, q.Len())
		assert.False(t, q.Contains(a))
		assert.True(t, q.Enqueue(a))
	})
}

func TestSettledQueue(t *testing.T) {
	t.Run("runs once in order", func(t *testing.T) {
		log := []string{}

		q := NewSettledQueue()
		q.Enqueue(func() { log = append(log, "a") })
		q.Enqueue(func() {
			log = append(log, "b")
			q.Enqueue(func() { log = append(log, "c") })
		})

		q.Run()
		assert.Equal(t, []string{"a", "b"}, log)
		assert.Equal(t, 1, q.Len())

		q.Run()
		assert.Equal(t, []string{"a", "b", "c"}, log)
	})
}
