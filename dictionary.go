package cadkit

// Dictionary is a graph node owning a name-keyed collection of child
// objects. It backs extended dictionaries and well-known auxiliary
// tables such as the sort-entities table. Insertion follows the same
// lookup-or-insert rule as Table: a duplicate name yields the stored
// object and the argument is discarded.
type Dictionary struct {
	ObjectBase

	entries map[string]Object
	order   []string
}

func NewDictionary() *Dictionary {
	d := &Dictionary{entries: map[string]Object{}}
	d.bind(d)
	return d
}

// Add stores obj under name unless the name is taken, in which case
// the stored object is returned. On insertion the object's owner
// becomes the dictionary; if the dictionary is attached, the object is
// attached along with it. Nil dictionaries and nil objects are no-ops.
func (d *Dictionary) Add(name string, obj Object) Object {
	if d == nil || isNilObject(obj) {
		return obj
	}

	k := nameKey(name)
	if existing, ok := d.entries[k]; ok {
		return existing
	}

	d.entries[k] = obj
	d.order = append(d.order, k)
	obj.SetOwner(d)
	if d.document != nil && obj.Document() == nil {
		_ = obj.Attach(d.document)
	}
	return obj
}

func (d *Dictionary) Get(name string) (Object, bool) {
	if d == nil {
		return nil, false
	}
	obj, ok := d.entries[nameKey(name)]
	return obj, ok
}

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns the children in insertion order.
func (d *Dictionary) Entries() []Object {
	if d == nil {
		return nil
	}
	es := make([]Object, 0, len(d.order))
	for _, k := range d.order {
		es = append(es, d.entries[k])
	}
	return es
}

// ObjectByName implements Collection.
func (d *Dictionary) ObjectByName(name string) (Object, bool) {
	return d.Get(name)
}

func (d *Dictionary) Attach(doc *Document) error {
	if err := d.ObjectBase.Attach(doc); err != nil {
		return err
	}
	for _, k := range d.order {
		if obj := d.entries[k]; obj.Document() == nil {
			_ = obj.Attach(doc)
		}
	}
	return nil
}

func (d *Dictionary) Detach() error {
	if d.document == nil {
		return d.ObjectBase.Detach()
	}

	// children before parents
	for _, k := range d.order {
		if obj := d.entries[k]; obj.Document() != nil {
			_ = obj.Detach()
		}
	}
	return d.ObjectBase.Detach()
}

// Clone deep-copies the dictionary: every child is cloned and re-owned
// by the copy. The copy is fully detached.
func (d *Dictionary) Clone() Object {
	c := NewDictionary()
	d.copyBaseTo(&c.ObjectBase)
	for _, k := range d.order {
		c.Add(k, d.entries[k].Clone())
	}
	return c
}
