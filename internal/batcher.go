package internal

// Batcher counts the batches currently open. Flushes are held while any is.
type Batcher struct {
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

// Hold runs fn inside a batch. release runs once the outermost batch closes,
// even when fn panics, so a failed batch never leaves flushes held.
func (b *Batcher) Hold(fn, release func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 {
			release()
		}
	}()

	fn()
}
