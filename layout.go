package cadkit

// Layout is a layout-table entry. Its association with a block record
// is a back-reference wired by BlockRecord.SetLayout; it carries no
// ownership.
type Layout struct {
	ObjectBase

	name            string
	associatedBlock *BlockRecord
}

func NewLayout(name string) *Layout {
	l := &Layout{name: name}
	l.bind(l)
	return l
}

func (l *Layout) Name() string { return l.name }

// AssociatedBlock returns the block record this layout is bound to,
// or nil.
func (l *Layout) AssociatedBlock() *BlockRecord { return l.associatedBlock }

func (l *Layout) Clone() Object {
	c := NewLayout(l.name)
	l.copyBaseTo(&c.ObjectBase)
	return c
}
