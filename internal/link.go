package internal

// DependencyLink is the bidirectional edge between a slot (dependency) and an effect (subscriber).
// The slot keeps its links in a doubly linked list for O(1) removal,
// the effect keeps them in a map keyed by slot for O(1) deduplication.
type DependencyLink struct {
	dep *Slot
	sub *Effect

	// version of the dependency when the subscriber last observed it
	version uint64

	prevSub *DependencyLink
	nextSub *DependencyLink
}

// link subscribes the effect to the slot, unless it already is.
func link(sub *Effect, dep *Slot) *DependencyLink {
	if l, ok := sub.deps[dep]; ok {
		return l
	}

	l := &DependencyLink{dep: dep, sub: sub, version: dep.version}

	if sub.deps == nil {
		sub.deps = make(map[*Slot]*DependencyLink)
	}
	sub.deps[dep] = l
	sub.track(l)
	dep.addSubLink(l)

	return l
}

// unlinkAll drops every dependency of the effect.
func unlinkAll(sub *Effect) {
	for dep, l := range sub.deps {
		dep.removeSubLink(l)
	}

	clear(sub.deps)
}
