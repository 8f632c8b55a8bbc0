package cadkit

import (
	"github.com/bobinette/cadkit/errors"
)

const (
	// ModelSpaceName is the name of the distinguished model container.
	// Its layout link is structurally mandatory.
	ModelSpaceName = "*Model_Space"
	PaperSpaceName = "*Paper_Space"

	// SortEntsTableName is the well-known extended-dictionary key of
	// the draw-order table.
	SortEntsTableName = "ACAD_SORTENTS"
)

// BlockRecord is the composite node of the graph: it owns a name-keyed
// collection of child entities bracketed by begin/end markers, and may
// hold a layout registered document-wide while the record is attached.
type BlockRecord struct {
	ObjectBase

	name     string
	entities *Table[Entity]
	begin    *BlockBegin
	end      *BlockEnd

	layout    *Layout
	layoutSub *Subscription
}

func NewBlockRecord(name string) *BlockRecord {
	b := &BlockRecord{name: name}
	b.bind(b)
	b.entities = NewTable[Entity](b)
	b.begin = newBlockBegin(name)
	b.begin.SetOwner(b)
	b.end = newBlockEnd(name)
	b.end.SetOwner(b)
	return b
}

func (b *BlockRecord) Name() string { return b.name }

func (b *BlockRecord) IsModelSpace() bool {
	return nameKey(b.name) == nameKey(ModelSpaceName)
}

// Entities exposes the child collection. Mutating it directly bypasses
// the attach bookkeeping; prefer AddEntity.
func (b *BlockRecord) Entities() *Table[Entity] { return b.entities }

// BlockBegin and BlockEnd return the marker entities. They always
// exist and have no removal API.
func (b *BlockRecord) BlockBegin() *BlockBegin { return b.begin }
func (b *BlockRecord) BlockEnd() *BlockEnd     { return b.end }

// AddEntity inserts e into the child collection, following the
// lookup-or-insert rule: the returned entity is the stored one. When
// the record is attached the entity is attached with it.
func (b *BlockRecord) AddEntity(e Entity) Entity {
	stored := b.entities.Add(e)
	if stored == e && b.document != nil && !isNilObject(stored) && stored.Document() == nil {
		_ = stored.Attach(b.document)
	}
	return stored
}

func (b *BlockRecord) Layout() *Layout { return b.layout }

// SetLayout binds l to the record and wires the back-reference. When
// the record is attached the layout is registered into the document's
// layout table right away; otherwise registration happens on attach.
func (b *BlockRecord) SetLayout(l *Layout) {
	b.layout = l
	if l != nil {
		l.associatedBlock = b
	}
	b.registerLayout()
}

// registerLayout puts the layout into the document's layout table,
// deduplicated by name, and subscribes to removal notifications. It is
// idempotent: redundant calls register nothing twice.
func (b *BlockRecord) registerLayout() {
	doc := b.document
	if doc == nil || b.layout == nil {
		return
	}

	stored := doc.Layouts.Add(b.layout)
	if stored != b.layout {
		// the argument was discarded by the table; sever its
		// back-reference so the stale link cannot be observed
		if b.layout.associatedBlock == b {
			b.layout.associatedBlock = nil
		}
		b.layout = stored
	}
	b.layout.associatedBlock = b
	if b.layout.Document() == nil {
		_ = b.layout.Attach(doc)
	}

	if b.layoutSub == nil {
		b.layoutSub = doc.Layouts.OnRemove(b.onLayoutRemoved)
	}
}

// onLayoutRemoved guards the layout table: losing the model space
// layout is a consistency violation, any other record silently drops
// to the no-layout state.
func (b *BlockRecord) onLayoutRemoved(l *Layout) error {
	if b.layout == nil || l != b.layout {
		return nil
	}
	if b.IsModelSpace() {
		return errors.New("cannot remove the model space layout", errors.Protected())
	}

	b.layout = nil
	l.associatedBlock = nil
	return nil
}

// AttributeDefinitions projects the attdef children out of the child
// collection. The view is computed on demand and always reflects
// current membership.
func (b *BlockRecord) AttributeDefinitions() []*AttributeDefinition {
	var out []*AttributeDefinition
	for _, e := range b.entities.Entries() {
		if a, ok := e.(*AttributeDefinition); ok {
			out = append(out, a)
		}
	}
	return out
}

// Viewports projects the viewport children, on demand.
func (b *BlockRecord) Viewports() []*Viewport {
	var out []*Viewport
	for _, e := range b.entities.Entries() {
		if v, ok := e.(*Viewport); ok {
			out = append(out, v)
		}
	}
	return out
}

// SortEntitiesTable returns the record's draw-order table, creating it
// in the extended dictionary on first call. Subsequent calls return
// the same instance.
func (b *BlockRecord) SortEntitiesTable() *Dictionary {
	xd := b.CreateExtendedDictionary()
	if existing, ok := xd.Get(SortEntsTableName); ok {
		if st, ok := existing.(*Dictionary); ok {
			return st
		}
	}

	st := NewDictionary()
	return xd.Add(SortEntsTableName, st).(*Dictionary)
}

// Attach binds the record and everything it owns: the child collection
// is registered document-wide, markers and children attach, and the
// layout, if any, is registered and watched.
func (b *BlockRecord) Attach(doc *Document) error {
	if err := b.ObjectBase.Attach(doc); err != nil {
		return err
	}

	doc.RegisterCollection(b.entities)
	if b.begin.Document() == nil {
		_ = b.begin.Attach(doc)
	}
	if b.end.Document() == nil {
		_ = b.end.Attach(doc)
	}
	for _, e := range b.entities.Entries() {
		if e.Document() == nil {
			_ = e.Attach(doc)
		}
	}

	b.registerLayout()
	return nil
}

// Detach severs the cross-links before tearing down the children:
// the removal subscription is cancelled, the record's own layout
// leaves the layout table, the child collection is unregistered, then
// children, markers and finally the record itself detach.
func (b *BlockRecord) Detach() error {
	doc := b.document
	if doc == nil {
		return errors.New("object not attached", errors.InvalidState())
	}

	b.layoutSub.Cancel()
	b.layoutSub = nil

	if b.layout != nil && doc.Layouts.Contains(b.layout.Name()) {
		if removed, err := doc.Layouts.Remove(b.layout.Name()); err == nil && removed.Document() != nil {
			_ = removed.Detach()
		}
	}

	doc.UnregisterCollection(b.entities)
	for _, e := range b.entities.Entries() {
		if e.Document() != nil {
			_ = e.Detach()
		}
	}
	if b.begin.Document() != nil {
		_ = b.begin.Detach()
	}
	if b.end.Document() != nil {
		_ = b.end.Detach()
	}

	return b.ObjectBase.Detach()
}

// Clone deep-copies the record: fresh markers, cloned children
// re-owned by the copy, no layout link, no document. The copy is fully
// detached.
func (b *BlockRecord) Clone() Object {
	c := NewBlockRecord(b.name)
	b.copyBaseTo(&c.ObjectBase)
	for _, e := range b.entities.Entries() {
		c.entities.Add(e.Clone().(Entity))
	}
	return c
}
