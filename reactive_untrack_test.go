package reactive

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUntrack(t *testing.T) {
	t.Run("does not track reads", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		NewEffect(func() {
			c := Untrack(count.Read)
			log = append(log, fmt.Sprintf("effect %d", c))
		})

		count.Write(10)
		assert.Equal(t, 0, Pending())
		Flush()

		assert.Equal(t, []string{
			"effect 0",
		}, log)
	})

	t.Run("tracking resumes after", func(t *testing.T) {
		log := []string{}

		a := NewSignal(0)
		b := NewSignal(0)

		NewEffect(func() {
			x := Untrack(a.Read)
			log = append(log, fmt.Sprintf("effect %d %d", x, b.Read()))
		})

		a.Write(1)
		Flush()
		b.Write(1)
		Flush()

		assert.Equal(t, []string{
			"effect 0 0",
			"effect 1 1",
		}, log)
	})
}
