package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docengine/pkg/model"
)

// S4 — replacing a range with the slice cut from that very range is a
// no-op: D.replace(2, 4, D.slice(2, 4)).eq(D).
func TestReplaceWithOwnSliceIsIdentity(t *testing.T) {
	s := strictSchema(t)
	doc := mustDoc(t, s, mustParagraph(t, s, mustText(t, s, "abcdef")))

	sl, err := doc.Slice(2, 4, false)
	require.NoError(t, err)

	replaced, err := doc.Replace(2, 4, sl)
	require.NoError(t, err)
	assert.True(t, replaced.Equal(doc))
}

// Invariant 6 — for any legal [from, to), replacing with the slice cut
// from that same range reproduces the original document, for a second
// shape too (multi-paragraph, open slice).
func TestReplaceSliceRoundTripAcrossParagraphBoundary(t *testing.T) {
	s := strictSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hello"))
	p2 := mustParagraph(t, s, mustText(t, s, "world"))
	doc := mustDoc(t, s, p1, p2)

	from, to := 3, 10 // spans the tail of p1, the gap, and the head of p2
	sl, err := doc.Slice(from, to, false)
	require.NoError(t, err)

	replaced, err := doc.Replace(from, to, sl)
	require.NoError(t, err)
	assert.True(t, replaced.Equal(doc))
}

// S5 — a schema where paragraph only accepts inline content rejects a
// replace that would insert a nested paragraph inside another.
func TestReplaceRejectsIncompatibleNesting(t *testing.T) {
	s := strictSchema(t)
	doc := mustDoc(t, s, mustParagraph(t, s, mustText(t, s, "x")))

	inner := mustParagraph(t, s, mustText(t, s, "y"))
	frag, err := model.FragmentFrom(inner)
	require.NoError(t, err)
	slice := &model.Slice{Content: frag, OpenStart: 0, OpenEnd: 0}

	_, err = doc.Replace(1, 1, slice)
	assert.Error(t, err)
}

// Deleting a range and replacing it with an empty slice removes exactly
// that content and nothing else.
func TestReplaceWithEmptySliceDeletesRange(t *testing.T) {
	s := strictSchema(t)
	doc := mustDoc(t, s, mustParagraph(t, s, mustText(t, s, "abcdef")))

	replaced, err := doc.Replace(3, 5, model.EmptySlice())
	require.NoError(t, err)
	require.NoError(t, replaced.Check())

	p, err := replaced.Child(0)
	require.NoError(t, err)
	text, err := p.Child(0)
	require.NoError(t, err)
	assert.Equal(t, "abef", text.Text)
}

// Inserting a closed text slice inside a text node merges it with the
// text on both sides into a single text node.
func TestReplaceInsertAtBoundaryJoinsSurroundingText(t *testing.T) {
	s := strictSchema(t)
	doc := mustDoc(t, s, mustParagraph(t, s, mustText(t, s, "ace")))

	insertFrag, err := model.FragmentFrom(mustText(t, s, "bd"))
	require.NoError(t, err)
	slice := &model.Slice{Content: insertFrag, OpenStart: 0, OpenEnd: 0}

	replaced, err := doc.Replace(2, 2, slice) // right after "a"
	require.NoError(t, err)
	require.NoError(t, replaced.Check())

	p, err := replaced.Child(0)
	require.NoError(t, err)
	text, err := p.Child(0)
	require.NoError(t, err)
	assert.Equal(t, "abdce", text.Text)
}

func TestSliceEqualAndEmptySize(t *testing.T) {
	s := strictSchema(t)
	doc := mustDoc(t, s, mustParagraph(t, s, mustText(t, s, "hello")))

	a, err := doc.Slice(2, 5, false)
	require.NoError(t, err)
	b, err := doc.Slice(2, 5, false)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	empty := model.EmptySlice()
	assert.Equal(t, 0, empty.Size())
	assert.True(t, empty.Equal(model.EmptySlice()))
}
