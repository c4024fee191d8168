package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docengine/pkg/model"
)

// Invariants 3 and 4 — for every legal position p, resolve(p).pos == p
// and resolve(p).start(depth) + resolve(p).parentOffset == p.
func TestResolvePositionIdentities(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hello"))
	p2 := mustParagraph(t, s, mustText(t, s, "world"))
	doc := mustDoc(t, s, p1, p2)

	for pos := 0; pos <= doc.Content.Size; pos++ {
		rp, err := doc.Resolve(pos)
		require.NoError(t, err)
		assert.Equal(t, pos, rp.Pos)
		assert.GreaterOrEqual(t, rp.Depth, 0)
		assert.Equal(t, pos, rp.Start(rp.Depth)+rp.ParentOffset)
	}
}

func TestResolvePositionBetweenTopLevelChildrenStaysAtDepthZero(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hello")) // nodeSize 7
	p2 := mustParagraph(t, s, mustText(t, s, "world"))
	doc := mustDoc(t, s, p1, p2)

	rp, err := doc.Resolve(7) // exactly between the two paragraphs
	require.NoError(t, err)
	assert.Equal(t, 0, rp.Depth)
	assert.Same(t, doc, rp.Parent())
	assert.Equal(t, 7, rp.ParentOffset)
}

func TestResolvePositionInsideTextblock(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hello"))
	doc := mustDoc(t, s, p1)

	rp, err := doc.Resolve(1) // right before 'h'
	require.NoError(t, err)
	assert.Equal(t, 1, rp.Depth)
	assert.Equal(t, "paragraph", rp.Parent().Type.Name)
	assert.Equal(t, 0, rp.ParentOffset)

	rp, err = doc.Resolve(6) // right after 'o'
	require.NoError(t, err)
	assert.Equal(t, 1, rp.Depth)
	assert.Equal(t, "paragraph", rp.Parent().Type.Name)
	assert.Equal(t, 5, rp.ParentOffset)
}

func TestResolvePositionDocEndIsEndPosition(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hi"))
	p2 := mustParagraph(t, s, mustText(t, s, "yo"))
	doc := mustDoc(t, s, p1, p2)

	end := doc.Content.Size
	rp, err := doc.Resolve(end)
	require.NoError(t, err)
	assert.Equal(t, end, rp.Pos)
}

// S6 — marks at position: typing right after an emphasised run inherits
// the mark (inclusive, the default); typing right before one does not.
func TestResolvedPosMarksEndOfInclusiveRunInherits(t *testing.T) {
	s := testSchema(t)
	em := mustMark(t, s, "em", nil)
	p := mustParagraph(t, s, mustText(t, s, "hi", em), mustText(t, s, " there"))
	doc := mustDoc(t, s, p)

	rp, err := doc.Resolve(3) // boundary right after "hi"
	require.NoError(t, err)
	marks := rp.Marks()
	require.Len(t, marks, 1)
	assert.Equal(t, "em", marks[0].Type.Name)
}

func TestResolvedPosMarksBeforeRunDoesNotInherit(t *testing.T) {
	s := testSchema(t)
	em := mustMark(t, s, "em", nil)
	p := mustParagraph(t, s, mustText(t, s, "one "), mustText(t, s, "two", em))
	doc := mustDoc(t, s, p)

	rp, err := doc.Resolve(5) // boundary right before "two"
	require.NoError(t, err)
	assert.Empty(t, rp.Marks())
}

// §4.9 — a non-inclusive mark (e.g. link) does not extend past its own
// run even though an inclusive mark at the same boundary would.
func TestResolvedPosMarksNonInclusiveDropsAtBoundary(t *testing.T) {
	s := testSchema(t)
	link := mustMark(t, s, "link", model.Attrs{"href": "http://x"})
	p := mustParagraph(t, s, mustText(t, s, "go", link), mustText(t, s, " away"))
	doc := mustDoc(t, s, p)

	rp, err := doc.Resolve(3) // boundary right after "go"
	require.NoError(t, err)
	assert.Empty(t, rp.Marks(), "link is non-inclusive so it must not inherit forward")
}

func TestResolvedPosNodeBeforeAfter(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hi"))
	p2 := mustParagraph(t, s, mustText(t, s, "yo"))
	doc := mustDoc(t, s, p1, p2)

	rp, err := doc.Resolve(4) // between the two paragraphs
	require.NoError(t, err)
	before, err := rp.NodeBefore()
	require.NoError(t, err)
	require.NotNil(t, before)
	assert.Equal(t, "paragraph", before.Type.Name)

	after, err := rp.NodeAfter()
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, "paragraph", after.Type.Name)
}

func TestResolvedPosSharedDepth(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hello"))
	doc := mustDoc(t, s, p1)

	rp, err := doc.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, 1, rp.SharedDepth(6))
	assert.Equal(t, 0, rp.SharedDepth(0))
}

func TestNodeAtReturnsChildAfterPosition(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hi"))
	p2 := mustParagraph(t, s, mustText(t, s, "yo"))
	doc := mustDoc(t, s, p1, p2)

	n, err := doc.NodeAt(0)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "paragraph", n.Type.Name)

	n, err = doc.NodeAt(doc.Content.Size)
	require.NoError(t, err)
	assert.Nil(t, n)
}
