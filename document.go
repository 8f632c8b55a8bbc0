package cadkit

import (
	"github.com/bobinette/cadkit/errors"
	"github.com/bobinette/cadkit/log"
)

// Collection is the document-facing view of a name-keyed container.
// Tables and dictionaries implement it; registering one makes its
// content reachable through document-wide lookup.
type Collection interface {
	Len() int
	ObjectByName(name string) (Object, bool)
}

// Document is the in-memory container the graph hangs off: the handle
// allocator, the handle registry, and the document-wide tables. It is
// not internally synchronized; callers serialize mutations.
type Document struct {
	logger log.Logger

	next    Handle
	objects map[Handle]Object

	collections []Collection

	AppIDs       *Table[*AppID]
	BlockRecords *Table[*BlockRecord]
	Layouts      *Table[*Layout]
}

type Option func(*Document)

func WithLogger(l log.Logger) Option {
	return func(d *Document) {
		d.logger = l
	}
}

func NewDocument(opts ...Option) *Document {
	d := &Document{
		logger:  log.Nop(),
		next:    handleSeed,
		objects: map[Handle]Object{},
	}

	for _, opt := range opts {
		opt(d)
	}

	d.AppIDs = NewTable[*AppID](nil)
	d.BlockRecords = NewTable[*BlockRecord](nil)
	d.Layouts = NewTable[*Layout](nil)
	d.RegisterCollection(d.AppIDs)
	d.RegisterCollection(d.BlockRecords)
	d.RegisterCollection(d.Layouts)

	return d
}

// nextHandle allocates a fresh handle. Handles are never reused within
// one document.
func (d *Document) nextHandle() Handle {
	h := d.next
	d.next++
	return h
}

// ObjectByHandle resolves a soft reference. A false return means the
// referent is not (or no longer) part of this document.
func (d *Document) ObjectByHandle(h Handle) (Object, bool) {
	if h.IsNil() {
		return nil, false
	}
	o, ok := d.objects[h]
	return o, ok
}

func (d *Document) registerObject(o Object) {
	if isNilObject(o) {
		return
	}
	d.objects[o.Handle()] = o
	d.logger.Printf("attached %T handle=%s", o, o.Handle())
}

func (d *Document) unregisterObject(o Object) {
	if isNilObject(o) {
		return
	}
	delete(d.objects, o.Handle())
	d.logger.Printf("detached %T handle=%s", o, o.Handle())
}

// RegisterCollection binds a collection into document-wide lookup.
// Registering the same collection twice is a no-op.
func (d *Document) RegisterCollection(c Collection) {
	for _, existing := range d.collections {
		if existing == c {
			return
		}
	}
	d.collections = append(d.collections, c)
}

func (d *Document) UnregisterCollection(c Collection) {
	for i, existing := range d.collections {
		if existing == c {
			d.collections = append(d.collections[:i], d.collections[i+1:]...)
			return
		}
	}
}

// FindObject searches the registered collections in registration
// order and returns the first object stored under name.
func (d *Document) FindObject(name string) (Object, bool) {
	for _, c := range d.collections {
		if o, ok := c.ObjectByName(name); ok {
			return o, ok
		}
	}
	return nil, false
}

// canonicalAppID resolves app against the document's appid table,
// inserting and attaching it when the name is new. Extended-attribute
// stores use it so every key in one document shares identity. An appid
// attached to another document never enters the table: a detached copy
// stands in for it, keeping handles unique within this document.
func (d *Document) canonicalAppID(app *AppID) *AppID {
	if app == nil {
		return nil
	}
	if app.Document() != nil && app.Document() != d {
		app = app.Clone().(*AppID)
	}

	canonical := d.AppIDs.Add(app)
	if canonical.Document() == nil {
		_ = canonical.Attach(d)
	}
	return canonical
}

// AddBlockRecord registers br in the block record table and attaches
// it with everything it owns. A record with the same name already in
// the table is returned instead, leaving br untouched.
func (d *Document) AddBlockRecord(br *BlockRecord) (*BlockRecord, error) {
	if br == nil {
		return nil, errors.New("nil block record", errors.InvalidState())
	}
	if br.Document() != nil {
		return nil, errors.New("block record already attached", errors.InvalidState())
	}

	stored := d.BlockRecords.Add(br)
	if stored != br {
		return stored, nil
	}

	if err := br.Attach(d); err != nil {
		return nil, err
	}
	return br, nil
}

// ModelSpace returns the distinguished model container, or nil when
// the document does not hold one yet.
func (d *Document) ModelSpace() *BlockRecord {
	br, ok := d.BlockRecords.Get(ModelSpaceName)
	if !ok {
		return nil
	}
	return br
}
