package cadkit

// EntityKind discriminates the child kinds a block record can hold.
type EntityKind int

const (
	KindGeneric EntityKind = iota
	KindAttributeDefinition
	KindViewport
	KindBlockBegin
	KindBlockEnd
)

func (k EntityKind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindAttributeDefinition:
		return "attdef"
	case KindViewport:
		return "viewport"
	case KindBlockBegin:
		return "block-begin"
	case KindBlockEnd:
		return "block-end"
	default:
		return "unknown"
	}
}

// Entity is a graph node that can live in a block record's child
// collection. The family is open: new kinds only need a name and the
// object lifecycle.
type Entity interface {
	TableEntry
	Kind() EntityKind
}

// GenericEntity is a plain leaf entity with no semantics beyond its
// name. Decoders use it for record types the graph does not model.
type GenericEntity struct {
	ObjectBase

	name string
}

func NewGenericEntity(name string) *GenericEntity {
	e := &GenericEntity{name: name}
	e.bind(e)
	return e
}

func (e *GenericEntity) Name() string     { return e.name }
func (e *GenericEntity) Kind() EntityKind { return KindGeneric }

func (e *GenericEntity) Clone() Object {
	c := NewGenericEntity(e.name)
	e.copyBaseTo(&c.ObjectBase)
	return c
}

// AttributeDefinition is a tagged attdef child. Its tag doubles as its
// collection name.
type AttributeDefinition struct {
	ObjectBase

	tag     string
	prompt  string
	defText string
}

func NewAttributeDefinition(tag, prompt, defText string) *AttributeDefinition {
	a := &AttributeDefinition{tag: tag, prompt: prompt, defText: defText}
	a.bind(a)
	return a
}

func (a *AttributeDefinition) Name() string     { return a.tag }
func (a *AttributeDefinition) Tag() string      { return a.tag }
func (a *AttributeDefinition) Prompt() string   { return a.prompt }
func (a *AttributeDefinition) Default() string  { return a.defText }
func (a *AttributeDefinition) Kind() EntityKind { return KindAttributeDefinition }

func (a *AttributeDefinition) Clone() Object {
	c := NewAttributeDefinition(a.tag, a.prompt, a.defText)
	a.copyBaseTo(&c.ObjectBase)
	return c
}

// Viewport is a paper-space viewport child. Only the graph-relevant
// fields are modeled; geometry stays with the renderer.
type Viewport struct {
	ObjectBase

	name          string
	width, height float64
}

func NewViewport(name string, width, height float64) *Viewport {
	v := &Viewport{name: name, width: width, height: height}
	v.bind(v)
	return v
}

func (v *Viewport) Name() string     { return v.name }
func (v *Viewport) Width() float64   { return v.width }
func (v *Viewport) Height() float64  { return v.height }
func (v *Viewport) Kind() EntityKind { return KindViewport }

func (v *Viewport) Clone() Object {
	c := NewViewport(v.name, v.width, v.height)
	v.copyBaseTo(&c.ObjectBase)
	return c
}

// BlockBegin and BlockEnd are the marker entities bracketing a block
// record's child collection. They exist exactly once per record, are
// created with it and cannot be removed on their own.
type BlockBegin struct {
	ObjectBase

	name string
}

func newBlockBegin(blockName string) *BlockBegin {
	b := &BlockBegin{name: blockName}
	b.bind(b)
	return b
}

func (b *BlockBegin) Name() string     { return b.name }
func (b *BlockBegin) Kind() EntityKind { return KindBlockBegin }

func (b *BlockBegin) Clone() Object {
	c := newBlockBegin(b.name)
	b.copyBaseTo(&c.ObjectBase)
	return c
}

type BlockEnd struct {
	ObjectBase

	name string
}

func newBlockEnd(blockName string) *BlockEnd {
	b := &BlockEnd{name: blockName}
	b.bind(b)
	return b
}

func (b *BlockEnd) Name() string     { return b.name }
func (b *BlockEnd) Kind() EntityKind { return KindBlockEnd }

func (b *BlockEnd) Clone() Object {
	c := newBlockEnd(b.name)
	b.copyBaseTo(&c.ObjectBase)
	return c
}
