package internal

type Tracker struct {
	tracking bool

	currentOwner  *Owner  // for lifecycle/cleanup tracking
	currentEffect *Effect // for reactive dependency tracking
}

func NewTracker() *Tracker {
	return &Tracker{
		tracking: true,
	}
}

func (t *Tracker) RunWithOwner(owner *Owner, fn func()) {
	prev := t.currentOwner
	t.currentOwner = owner
	defer func() { t.currentOwner = prev }()

	fn()
}

// RunWithEffect runs fn with the effect as the current reader.
// The previous effect, owner and tracking state are restored even if fn panics,
// so nested effects and computed reads stack properly.
func (t *Tracker) RunWithEffect(e *Effect, fn func()) {
	prevOwner := t.currentOwner
	prevEffect := t.currentEffect
	prevTracking := t.tracking

	t.currentOwner = e.Owner
	t.currentEffect = e
	t.tracking = true

	defer func() {
		t.currentOwner = prevOwner
		t.currentEffect = prevEffect
		t.tracking = prevTracking
	}()

	fn()
}

func (t *Tracker) RunUntracked(fn func()) {
	prev := t.tracking
	t.tracking = false
	defer func() { t.tracking = prev }()

	fn()
}

// Track subscribes the current effect to the slot.
// Reads outside of any effect don't create dependencies.
func (t *Tracker) Track(slot *Slot) *DependencyLink {
	if !t.ShouldTrack() {
		return nil
	}

	return link(t.currentEffect, slot)
}

func (t *Tracker) ShouldTrack() bool {
	return t.currentEffect != nil && t.tracking && !t.currentEffect.disposed
}

func (t *Tracker) CurrentOwner() *Owner {
	return t.currentOwner
}

func (t *Tracker) CurrentEffect() *Effect {
	return t.currentEffect
}
