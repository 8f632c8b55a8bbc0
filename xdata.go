package cadkit

import "strings"

// AppID is the registered-application table entry extended attributes
// are keyed by.
type AppID struct {
	ObjectBase

	name string
}

func NewAppID(name string) *AppID {
	app := &AppID{name: name}
	app.bind(app)
	return app
}

func (app *AppID) Name() string { return app.name }

func (app *AppID) Clone() Object {
	c := NewAppID(app.name)
	app.copyBaseTo(&c.ObjectBase)
	return c
}

// XDataRecord is one typed datum of an extended-attribute payload. The
// code is the DXF group code of the datum; its meaning is up to the
// registering application.
type XDataRecord struct {
	Code  int
	Value interface{}
}

// XDataEntry is the read view over one application's records.
type XDataEntry struct {
	App     *AppID
	Records []XDataRecord
}

type xdataEntry struct {
	app     *AppID
	records []XDataRecord
}

// XDataStore is the per-object extended-attribute bag. It is owned
// exclusively by its object and keyed by application identity,
// case-insensitively. When the owning object attaches to a document
// the keys are re-resolved against the document's appid table, so two
// objects in one document always share the canonical appid for a given
// application name.
type XDataStore struct {
	entries map[string]*xdataEntry
	order   []string
}

func newXDataStore() *XDataStore {
	return &XDataStore{entries: map[string]*xdataEntry{}}
}

// Put stores records under app, replacing any previous payload for the
// same application name. Nil apps are ignored.
func (x *XDataStore) Put(app *AppID, records ...XDataRecord) {
	if app == nil {
		return
	}

	k := nameKey(app.Name())
	if e, ok := x.entries[k]; ok {
		e.app = app
		e.records = records
		return
	}

	x.entries[k] = &xdataEntry{app: app, records: records}
	x.order = append(x.order, k)
}

// Get returns the records stored for the application name, if any.
func (x *XDataStore) Get(name string) ([]XDataRecord, bool) {
	e, ok := x.entries[nameKey(name)]
	if !ok {
		return nil, false
	}
	return e.records, true
}

// App returns the appid currently keying the entry for name.
func (x *XDataStore) App(name string) (*AppID, bool) {
	e, ok := x.entries[nameKey(name)]
	if !ok {
		return nil, false
	}
	return e.app, true
}

func (x *XDataStore) Remove(name string) bool {
	k := nameKey(name)
	if _, ok := x.entries[k]; !ok {
		return false
	}

	delete(x.entries, k)
	for i, o := range x.order {
		if o == k {
			x.order = append(x.order[:i], x.order[i+1:]...)
			break
		}
	}
	return true
}

func (x *XDataStore) Len() int { return len(x.entries) }

// Entries returns the store content in insertion order, as a read-only
// snapshot.
func (x *XDataStore) Entries() []XDataEntry {
	es := make([]XDataEntry, 0, len(x.order))
	for _, k := range x.order {
		e := x.entries[k]
		rs := make([]XDataRecord, len(e.records))
		copy(rs, e.records)
		es = append(es, XDataEntry{App: e.app, Records: rs})
	}
	return es
}

// rebind drains the store and reinserts every entry, resolving each
// key through doc's appid table when doc is non-nil. On detach keys
// attached to the old document are replaced by detached copies, so no
// entry holds on to a foreign handle. Attach and detach both call it,
// keeping keys in step with the object's current scope.
func (x *XDataStore) rebind(doc *Document) {
	if len(x.entries) == 0 {
		return
	}

	drained := make([]*xdataEntry, 0, len(x.order))
	for _, k := range x.order {
		drained = append(drained, x.entries[k])
	}
	x.entries = map[string]*xdataEntry{}
	x.order = x.order[:0]

	for _, e := range drained {
		app := e.app
		if doc != nil {
			app = doc.canonicalAppID(app)
		} else if app != nil && app.Document() != nil {
			app = app.Clone().(*AppID)
		}
		x.Put(app, e.records...)
	}
}

// clone returns an independently mutable store with the same entries.
// Keys keep their identity; record slices are copied.
func (x *XDataStore) clone() *XDataStore {
	c := newXDataStore()
	for _, k := range x.order {
		e := x.entries[k]
		rs := make([]XDataRecord, len(e.records))
		copy(rs, e.records)
		c.Put(e.app, rs...)
	}
	return c
}

// nameKey is the collection lookup key for a name. Name comparison is
// case-insensitive throughout the graph.
func nameKey(name string) string {
	return strings.ToLower(name)
}
