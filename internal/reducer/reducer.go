package reducer

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Action is what an event does to its key in a collection.
type Action int

const (
	// ActionUnknown leaves the collection unchanged.
	ActionUnknown Action = iota
	// ActionUpsert stores the event as the latest entity for its key.
	ActionUpsert
	// ActionRemove deletes the key.
	ActionRemove
)

var (
	// ErrUnknownEventType is returned for events whose kind is not recognized.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrMissingKey is returned for events that carry no identity.
	ErrMissingKey = errors.New("event has no identity")
)

// Rules describe how the events of one entity type fold into a collection.
type Rules[K comparable, E any] struct {
	// Key extracts the identity of an event; false when it has none.
	Key func(E) (K, bool)
	// Classify maps the event kind to an action.
	Classify func(E) Action
	// Kind returns the event kind for diagnostics.
	Kind func(E) string
	// Merge, when set, combines the stored entity with an upserted one.
	// It must be idempotent.
	Merge func(prev, next E) E
	// Compare orders the rendered list.
	Compare func(a, b E) int
}

// Collection maps entity keys to the latest entity.
// The zero value is an empty collection.
type Collection[K comparable, E any] struct {
	items map[K]E
}

// NewCollection returns an empty collection.
func NewCollection[K comparable, E any]() Collection[K, E] {
	return Collection[K, E]{items: make(map[K]E)}
}

// Len returns the number of live keys.
func (c Collection[K, E]) Len() int {
	return len(c.items)
}

// Get returns the entity stored for k.
func (c Collection[K, E]) Get(k K) (E, bool) {
	e, ok := c.items[k]

	return e, ok
}

// List renders the collection as a slice ordered by cmp.
// A nil cmp leaves the order unspecified.
func (c Collection[K, E]) List(cmp func(a, b E) int) []E {
	list := slices.Collect(maps.Values(c.items))
	if list == nil {
		list = []E{}
	}

	if cmp != nil {
		slices.SortStableFunc(list, cmp)
	}

	return list
}

// Clone returns an independent copy of the collection.
func (c Collection[K, E]) Clone() Collection[K, E] {
	if c.items == nil {
		return NewCollection[K, E]()
	}

	return Collection[K, E]{items: maps.Clone(c.items)}
}

// Apply folds event into the collection in place. It reports whether the
// collection changed. Unknown kinds and events without identity leave it
// unchanged and return an error describing the event.
func (c *Collection[K, E]) Apply(rules Rules[K, E], event E) (bool, error) {
	action := rules.Classify(event)
	if action == ActionUnknown {
		return false, fmt.Errorf("%w: %q", ErrUnknownEventType, kindOf(rules, event))
	}

	key, ok := rules.Key(event)
	if !ok {
		return false, fmt.Errorf("%w: %q event", ErrMissingKey, kindOf(rules, event))
	}

	if c.items == nil {
		c.items = make(map[K]E)
	}

	switch action {
	case ActionRemove:
		if _, ok := c.items[key]; !ok {
			return false, nil
		}

		delete(c.items, key)
	default:
		if prev, ok := c.items[key]; ok && rules.Merge != nil {
			event = rules.Merge(prev, event)
		}

		c.items[key] = event
	}

	return true, nil
}

// Reduce is the pure form of Apply: it returns a new collection with event
// folded in and never modifies c. On error the returned collection is c.
func Reduce[K comparable, E any](c Collection[K, E], rules Rules[K, E], event E) (Collection[K, E], error) {
	next := c.Clone()

	changed, err := next.Apply(rules, event)
	if err != nil || !changed {
		return c, err
	}

	return next, nil
}

// kindOf renders the event kind for error messages.
func kindOf[K comparable, E any](rules Rules[K, E], event E) string {
	if rules.Kind == nil {
		return "?"
	}

	return rules.Kind(event)
}
