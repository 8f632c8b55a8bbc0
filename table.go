package cadkit

import (
	"fmt"

	"github.com/bobinette/cadkit/errors"
)

// TableEntry is what a Table holds: an object addressable by name.
type TableEntry interface {
	Object
	Name() string
}

// Table is a name-keyed collection enforcing name uniqueness. Names
// compare case-insensitively; iteration follows insertion order.
//
// Tables are built incrementally, often by decoders that reference an
// entry before it fully exists, so insertion is lookup-or-insert: see
// Add.
type Table[E TableEntry] struct {
	owner   Object
	entries map[string]E
	order   []string

	subs   []tableSub[E]
	nextID int
}

type tableSub[E TableEntry] struct {
	id int
	fn func(E) error
}

// NewTable returns an empty table. owner is the node entries belong to
// once inserted; document-wide tables pass nil.
func NewTable[E TableEntry](owner Object) *Table[E] {
	return &Table[E]{
		owner:   owner,
		entries: map[string]E{},
	}
}

// Add inserts e unless the table already holds an entry with the same
// name, in which case the stored entry is returned and e is discarded.
// The returned entry is the authoritative one: callers must use it,
// never their argument. On insertion e's owner becomes the table's
// owner. A nil table or nil entry is a no-op returning e.
func (t *Table[E]) Add(e E) E {
	if t == nil || isNilObject(e) {
		return e
	}

	k := nameKey(e.Name())
	if existing, ok := t.entries[k]; ok {
		return existing
	}

	t.entries[k] = e
	t.order = append(t.order, k)
	e.SetOwner(t.owner)
	return e
}

func (t *Table[E]) Get(name string) (E, bool) {
	if t == nil {
		var zero E
		return zero, false
	}
	e, ok := t.entries[nameKey(name)]
	return e, ok
}

func (t *Table[E]) Contains(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Remove takes the named entry out of the table after running every
// removal guard. If a guard rejects the removal the table is left
// unchanged and the guard's error is returned.
func (t *Table[E]) Remove(name string) (E, error) {
	var zero E
	if t == nil {
		return zero, errors.New(fmt.Sprintf("no table entry named %q", name), errors.NotFound())
	}

	k := nameKey(name)
	e, ok := t.entries[k]
	if !ok {
		return zero, errors.New(fmt.Sprintf("no table entry named %q", name), errors.NotFound())
	}

	for _, sub := range t.subs {
		if err := sub.fn(e); err != nil {
			return zero, err
		}
	}

	delete(t.entries, k)
	for i, o := range t.order {
		if o == k {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	e.SetOwner(nil)
	return e, nil
}

func (t *Table[E]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns the entries in insertion order.
func (t *Table[E]) Entries() []E {
	if t == nil {
		return nil
	}
	es := make([]E, 0, len(t.order))
	for _, k := range t.order {
		es = append(es, t.entries[k])
	}
	return es
}

// ObjectByName implements Collection.
func (t *Table[E]) ObjectByName(name string) (Object, bool) {
	e, ok := t.Get(name)
	if !ok {
		return nil, false
	}
	return e, true
}

// OnRemove registers a guard consulted before any entry leaves the
// table. Returning an error from the guard aborts the removal. The
// subscription stays active until cancelled; subscribers must cancel
// when they stop caring, typically on detach.
func (t *Table[E]) OnRemove(fn func(E) error) *Subscription {
	t.nextID++
	id := t.nextID
	t.subs = append(t.subs, tableSub[E]{id: id, fn: fn})

	return &Subscription{cancel: func() {
		for i, sub := range t.subs {
			if sub.id == id {
				t.subs = append(t.subs[:i], t.subs[i+1:]...)
				return
			}
		}
	}}
}

// Subscription is a handle on a removal guard. Cancel is idempotent.
type Subscription struct {
	cancel func()
}

func (s *Subscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
}
