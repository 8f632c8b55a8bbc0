package cadkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/cadkit/errors"
)

func TestBlockRecord_AttachWithoutLayout(t *testing.T) {
	doc := NewDocument()
	x := NewBlockRecord("X")

	require.NoError(t, x.Attach(doc))
	assert.False(t, x.Handle().IsNil())
	assert.Equal(t, 0, doc.Layouts.Len(), "no layout, empty layout table")

	l := NewLayout("Layout1")
	x.SetLayout(l)
	assert.Same(t, x, l.AssociatedBlock())

	err := x.Attach(doc)
	require.Error(t, err, "attaching an attached record is invalid")
	errors.AssertCode(t, err, errors.CodeInvalidState)
}

func TestBlockRecord_AttachRegistersLayoutOnce(t *testing.T) {
	doc := NewDocument()
	b := NewBlockRecord("B")
	l := NewLayout("Layout1")
	b.SetLayout(l)

	require.NoError(t, b.Attach(doc))
	assert.Equal(t, 1, doc.Layouts.Len())
	assert.False(t, l.Handle().IsNil())

	// redundant registration attempts change nothing
	b.SetLayout(l)
	b.SetLayout(l)
	assert.Equal(t, 1, doc.Layouts.Len())
	stored, _ := doc.Layouts.Get("Layout1")
	assert.Same(t, l, stored)
}

func TestBlockRecord_DuplicateLayoutNameDiscarded(t *testing.T) {
	doc := NewDocument()
	b := NewBlockRecord("Detail")
	l1 := NewLayout("Layout1")
	b.SetLayout(l1)
	require.NoError(t, b.Attach(doc))

	l2 := NewLayout("layout1")
	b.SetLayout(l2)

	assert.Same(t, l1, b.Layout(), "the stored layout is authoritative")
	assert.Same(t, b, l1.AssociatedBlock())
	assert.Nil(t, l2.AssociatedBlock(), "the discarded layout keeps no back-reference")
	assert.Equal(t, 1, doc.Layouts.Len())
}

func TestBlockRecord_ModelSpaceLayoutIsProtected(t *testing.T) {
	doc := NewDocument()
	ms := NewBlockRecord(ModelSpaceName)
	l := NewLayout("Model")
	ms.SetLayout(l)
	require.NoError(t, ms.Attach(doc))

	_, err := doc.Layouts.Remove("Model")
	require.Error(t, err)
	errors.AssertCode(t, err, errors.CodeProtected)
	assert.Equal(t, 1, doc.Layouts.Len(), "a rejected removal leaves the table unchanged")
	assert.Same(t, l, ms.Layout())
	assert.Same(t, ms, l.AssociatedBlock())
}

func TestBlockRecord_NonModelLayoutRemoval(t *testing.T) {
	doc := NewDocument()
	b := NewBlockRecord("Detail")
	l := NewLayout("Layout1")
	b.SetLayout(l)
	require.NoError(t, b.Attach(doc))

	removed, err := doc.Layouts.Remove("Layout1")
	require.NoError(t, err)
	assert.Same(t, l, removed)
	assert.Nil(t, b.Layout(), "the record drops to the no-layout state")
	assert.Nil(t, l.AssociatedBlock())
	assert.Equal(t, 0, doc.Layouts.Len())
}

func TestBlockRecord_DetachRemovesLayout(t *testing.T) {
	doc := NewDocument()
	b := NewBlockRecord("Detail")
	l := NewLayout("Layout1")
	b.SetLayout(l)
	require.NoError(t, b.Attach(doc))
	require.Equal(t, 1, doc.Layouts.Len())

	require.NoError(t, b.Detach())
	assert.Equal(t, 0, doc.Layouts.Len(), "detach removes the record's layout from the table")
	assert.True(t, b.Handle().IsNil())
	assert.True(t, l.Handle().IsNil())
	assert.Same(t, l, b.Layout(), "the layout link itself survives detach")

	// reattaching restores the registration
	require.NoError(t, b.Attach(doc))
	assert.Equal(t, 1, doc.Layouts.Len())
	assert.False(t, l.Handle().IsNil())
}

func TestBlockRecord_ModelSpaceDetachIsAllowed(t *testing.T) {
	doc := NewDocument()
	ms := NewBlockRecord(ModelSpaceName)
	ms.SetLayout(NewLayout("Model"))
	require.NoError(t, ms.Attach(doc))

	// the guard only protects against external removal; the record
	// tearing itself down bypasses it
	require.NoError(t, ms.Detach())
	assert.Equal(t, 0, doc.Layouts.Len())
}

func TestBlockRecord_ChildrenAttachWithRecord(t *testing.T) {
	doc := NewDocument()
	b := NewBlockRecord("B")
	e := b.AddEntity(NewGenericEntity("child"))
	require.True(t, e.Handle().IsNil())

	require.NoError(t, b.Attach(doc))
	assert.False(t, e.Handle().IsNil())
	assert.False(t, b.BlockBegin().Handle().IsNil(), "markers attach with the record")
	assert.False(t, b.BlockEnd().Handle().IsNil())
	assert.Same(t, b, e.Owner())

	late := b.AddEntity(NewGenericEntity("late"))
	assert.False(t, late.Handle().IsNil(), "entities added to an attached record attach immediately")

	require.NoError(t, b.Detach())
	assert.True(t, e.Handle().IsNil(), "children detach before the record")
	assert.True(t, b.BlockBegin().Handle().IsNil())
	assert.True(t, b.BlockEnd().Handle().IsNil())
}

func TestBlockRecord_FilteredViews(t *testing.T) {
	b := NewBlockRecord("B")
	b.AddEntity(NewGenericEntity("plain"))
	a1 := b.AddEntity(NewAttributeDefinition("TAG1", "prompt", "def"))
	v1 := b.AddEntity(NewViewport("vp1", 100, 50))

	attdefs := b.AttributeDefinitions()
	require.Len(t, attdefs, 1)
	assert.Same(t, a1, attdefs[0])

	vps := b.Viewports()
	require.Len(t, vps, 1)
	assert.Same(t, v1, vps[0])

	// views are projections, never caches
	b.AddEntity(NewAttributeDefinition("TAG2", "", ""))
	assert.Len(t, b.AttributeDefinitions(), 2)
}

func TestBlockRecord_SortEntitiesTable(t *testing.T) {
	b := NewBlockRecord("B")
	require.Nil(t, b.ExtendedDictionary())

	st := b.SortEntitiesTable()
	require.NotNil(t, st)
	require.NotNil(t, b.ExtendedDictionary(), "the sort table lives in the extended dictionary")

	assert.Same(t, st, b.SortEntitiesTable(), "a second request returns the existing instance")

	stored, ok := b.ExtendedDictionary().Get(SortEntsTableName)
	require.True(t, ok)
	assert.Same(t, st, stored)
}

func TestBlockRecord_Clone(t *testing.T) {
	doc := NewDocument()
	b := NewBlockRecord("B")
	b.AddEntity(NewGenericEntity("child"))
	b.AddEntity(NewAttributeDefinition("TAG", "", ""))
	b.SetLayout(NewLayout("Layout1"))
	b.SortEntitiesTable()
	require.NoError(t, b.Attach(doc))

	c := b.Clone().(*BlockRecord)
	assert.True(t, c.Handle().IsNil())
	assert.Nil(t, c.Document())
	assert.Nil(t, c.Layout(), "the layout link is not carried")
	assert.Nil(t, c.ExtendedDictionary())

	require.Equal(t, 2, c.Entities().Len())
	orig, _ := b.Entities().Get("child")
	copied, ok := c.Entities().Get("child")
	require.True(t, ok)
	assert.NotSame(t, orig, copied, "children are deep-copied")
	assert.Same(t, c, copied.Owner(), "copies are re-owned by the cloned record")

	require.NotNil(t, c.BlockBegin())
	require.NotNil(t, c.BlockEnd())
	assert.NotSame(t, b.BlockBegin(), c.BlockBegin(), "markers are fresh on the clone")
	assert.True(t, c.BlockBegin().Handle().IsNil())
}

func TestBlockRecord_IsModelSpace(t *testing.T) {
	assert.True(t, NewBlockRecord(ModelSpaceName).IsModelSpace())
	assert.True(t, NewBlockRecord("*model_space").IsModelSpace())
	assert.False(t, NewBlockRecord(PaperSpaceName).IsModelSpace())
}
