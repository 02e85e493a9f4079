package status

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/stat"
)

// Set tracks the effects currently attached to one character, in application
// order. At most one effect per Type is held.
// It is not safe for concurrent use; the caller must serialise access.
type Set struct {
	effects []*Effect
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{}
}

// Add attaches e. An existing effect of the same type is dropped first, losing
// its remaining duration, and e is appended at the end.
//
// Postcondition: exactly one effect of e.Type is held and it is e.
func (s *Set) Add(e *Effect) {
	s.Remove(e.Type)
	s.effects = append(s.effects, e)
}

// Remove drops every effect of type t. Removing an absent type is a no-op.
func (s *Set) Remove(t Type) {
	kept := s.effects[:0]
	for _, e := range s.effects {
		if e.Type != t {
			kept = append(kept, e)
		}
	}
	clear(s.effects[len(kept):])
	s.effects = kept
}

// Has reports whether an effect of type t is held.
func (s *Set) Has(t Type) bool {
	return s.Get(t) != nil
}

// HasAny reports whether an effect of any of the given types is held.
func (s *Set) HasAny(types ...Type) bool {
	for _, t := range types {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Get returns the held effect of type t, or nil.
func (s *Set) Get(t Type) *Effect {
	for _, e := range s.effects {
		if e.Type == t {
			return e
		}
	}
	return nil
}

// PreventsAction reports whether any held effect stops the owner from acting.
func (s *Set) PreventsAction() bool {
	for _, e := range s.effects {
		if e.PreventsAction() {
			return true
		}
	}
	return false
}

// Modifier returns the summed delta of all held effects for st.
func (s *Set) Modifier(st stat.Stat) int {
	total := 0
	for _, e := range s.effects {
		total += e.Modifier(st)
	}
	return total
}

// Len returns the number of held effects.
func (s *Set) Len() int { return len(s.effects) }

// All returns the held effects in application order. The slice is a copy; the
// effects are shared.
func (s *Set) All() []*Effect {
	out := make([]*Effect, len(s.effects))
	copy(out, s.effects)
	return out
}

// Process applies every held effect once, in application order, then removes
// the expired ones. Damage effects may drop the owner to 0 HP part way through;
// later effects in the same pass still apply.
//
// Postcondition: returned messages list the per-effect results followed by
// one "worn off" line per removed effect, in removal order.
func (s *Set) Process(owner Owner) []string {
	var msgs []string
	for _, e := range s.All() {
		if msg := e.Apply(owner); msg != "" {
			msgs = append(msgs, msg)
		}
	}

	kept := make([]*Effect, 0, len(s.effects))
	for _, e := range s.effects {
		if e.Expired() {
			msgs = append(msgs, fmt.Sprintf("%s's %s has worn off.", owner.Name(), e.Name))
			continue
		}
		kept = append(kept, e)
	}
	s.effects = kept
	return msgs
}
