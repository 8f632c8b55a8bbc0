package cadkit

import (
	"reflect"

	"github.com/bobinette/cadkit/errors"
)

// Object is the contract shared by every node of the document graph:
// entities, table entries, dictionaries and block records. An object is
// either attached to exactly one document, in which case it holds a
// non-nil handle, or fully detached.
//
// Owner and reactor references are identity links only: they never
// imply ownership or lifetime of the referent. By-identity resolution
// goes through Document.ObjectByHandle.
type Object interface {
	Handle() Handle
	Owner() Object
	SetOwner(Object)
	Document() *Document

	Reactors() []Object
	AddReactor(Object)
	RemoveReactor(Object)

	XData() *XDataStore
	ExtendedDictionary() *Dictionary
	CreateExtendedDictionary() *Dictionary

	Attach(*Document) error
	Detach() error
	Clone() Object
}

// ObjectBase carries the state and base behavior every concrete kind
// embeds. Concrete kinds layer their own attach/detach/clone logic on
// top by calling the embedded methods first.
//
// ObjectBase is not usable as a zero value: constructors of concrete
// kinds must call bind so the base knows the outer object it belongs
// to.
type ObjectBase struct {
	self     Object
	handle   Handle
	owner    Object
	document *Document
	reactors []Object
	xdata    *XDataStore
	xdict    *Dictionary
}

// bind wires the base to the outer object embedding it. Called once,
// from the concrete kind's constructor.
func (ob *ObjectBase) bind(self Object) {
	if ob.self == nil {
		ob.self = self
	}
}

func (ob *ObjectBase) Handle() Handle      { return ob.handle }
func (ob *ObjectBase) Owner() Object       { return ob.owner }
func (ob *ObjectBase) SetOwner(o Object)   { ob.owner = o }
func (ob *ObjectBase) Document() *Document { return ob.document }

func (ob *ObjectBase) Reactors() []Object {
	rs := make([]Object, len(ob.reactors))
	copy(rs, ob.reactors)
	return rs
}

func (ob *ObjectBase) AddReactor(o Object) {
	if isNilObject(o) {
		return
	}
	ob.reactors = append(ob.reactors, o)
}

func (ob *ObjectBase) RemoveReactor(o Object) {
	for i, r := range ob.reactors {
		if r == o {
			ob.reactors = append(ob.reactors[:i], ob.reactors[i+1:]...)
			return
		}
	}
}

func (ob *ObjectBase) XData() *XDataStore {
	if ob.xdata == nil {
		ob.xdata = newXDataStore()
	}
	return ob.xdata
}

func (ob *ObjectBase) ExtendedDictionary() *Dictionary {
	return ob.xdict
}

// CreateExtendedDictionary returns the object's extended dictionary,
// creating it on first call. The dictionary is owned by the object and
// follows it through attach and detach.
func (ob *ObjectBase) CreateExtendedDictionary() *Dictionary {
	if ob.xdict != nil {
		return ob.xdict
	}

	ob.xdict = NewDictionary()
	ob.xdict.SetOwner(ob.self)
	if ob.document != nil {
		ob.document.RegisterCollection(ob.xdict)
		_ = ob.xdict.Attach(ob.document)
	}
	return ob.xdict
}

// Attach binds the object to doc: it receives a fresh handle, enters
// the document's handle registry, has its extended dictionary
// registered, and has its extended attributes re-keyed against the
// document's appid table. Attaching an already attached object is an
// invalid-state error and mutates nothing.
func (ob *ObjectBase) Attach(doc *Document) error {
	if ob.document != nil {
		return errors.New("object already attached", errors.InvalidState())
	}
	if doc == nil {
		return errors.New("cannot attach to a nil document", errors.InvalidState())
	}

	ob.handle = doc.nextHandle()
	ob.document = doc
	doc.registerObject(ob.self)

	if ob.xdict != nil {
		doc.RegisterCollection(ob.xdict)
		if ob.xdict.Document() == nil {
			_ = ob.xdict.Attach(doc)
		}
	}

	if ob.xdata != nil {
		ob.xdata.rebind(doc)
	}
	return nil
}

// Detach is the inverse of Attach: the handle is released, the
// document link cleared, the extended dictionary unregistered and the
// extended attributes re-keyed to their detached identity. Detaching
// an unattached object is an invalid-state error.
func (ob *ObjectBase) Detach() error {
	if ob.document == nil {
		return errors.New("object not attached", errors.InvalidState())
	}

	doc := ob.document
	if ob.xdict != nil {
		doc.UnregisterCollection(ob.xdict)
		if ob.xdict.Document() != nil {
			_ = ob.xdict.Detach()
		}
	}

	doc.unregisterObject(ob.self)
	ob.handle = NilHandle
	ob.document = nil

	if ob.xdata != nil {
		ob.xdata.rebind(nil)
	}
	return nil
}

// copyBaseTo fills dst, which must come fresh from a constructor, with
// the clonable part of the base state: the extended attributes. Handle,
// owner, document, reactors and the extended dictionary deliberately
// stay empty so the copy is fully detached.
func (ob *ObjectBase) copyBaseTo(dst *ObjectBase) {
	if ob.xdata != nil && ob.xdata.Len() > 0 {
		dst.xdata = ob.xdata.clone()
	}
}

// isNilObject also catches typed nil pointers wrapped in the Object
// interface.
func isNilObject(o Object) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
