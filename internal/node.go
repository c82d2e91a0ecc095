package internal

// Slot is the dependency slot of a single (record, key) pair.
// Effects subscribe to it when they read the key and are notified when it's written.
type Slot struct {
	// the handle owning this slot, kept alive for as long as someone subscribes to it
	owner any
	key   any

	// bumped every time the slot reports a change
	version uint64

	// set when this slot backs a computed value instead of a record key
	computed *Computed

	subsHead *DependencyLink
	subsTail *DependencyLink
	subCount int
}

func newSlot(owner, key any) *Slot {
	return &Slot{owner: owner, key: key}
}

// Key returns the record key this slot is attached to.
func (s *Slot) Key() any { return s.key }

// Version returns the change counter of the slot.
func (s *Slot) Version() uint64 { return s.version }

// Len returns the number of subscribed effects.
func (s *Slot) Len() int { return s.subCount }

// Subs returns a snapshot of the effects currently subscribed to the slot.
// Iterating the snapshot is safe even if subscriptions change meanwhile.
func (s *Slot) Subs() []*Effect {
	subs := make([]*Effect, 0, s.subCount)
	for link := s.subsHead; link != nil; link = link.nextSub {
		subs = append(subs, link.sub)
	}

	return subs
}

func (s *Slot) addSubLink(link *DependencyLink) {
	link.prevSub = s.subsTail
	link.nextSub = nil

	if s.subsTail == nil {
		s.subsHead = link
	} else {
		s.subsTail.nextSub = link
	}
	s.subsTail = link
	s.subCount++
}

func (s *Slot) removeSubLink(link *DependencyLink) {
	if link.prevSub != nil {
		link.prevSub.nextSub = link.nextSub
	} else {
		s.subsHead = link.nextSub
	}

	if link.nextSub != nil {
		link.nextSub.prevSub = link.prevSub
	} else {
		s.subsTail = link.prevSub
	}

	link.prevSub = nil
	link.nextSub = nil
	s.subCount--
}

// slotTable lazily allocates one slot per key of a record.
type slotTable struct {
	owner any
	slots map[any]*Slot
}

func newSlotTable(owner any) *slotTable {
	return &slotTable{owner: owner}
}

// get returns the slot of the given key, allocating it when create is set.
func (t *slotTable) get(key any, create bool) *Slot {
	if s, ok := t.slots[key]; ok {
		return s
	}
	if !create {
		return nil
	}

	if t.slots == nil {
		t.slots = make(map[any]*Slot)
	}

	s := newSlot(t.owner, key)
	t.slots[key] = s
	return s
}
