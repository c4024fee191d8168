package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docengine/pkg/model"
)

// S2 — Fragment.fromArray merges adjacent text children with identical
// markup into a single child.
func TestFragmentFromArrayMergesAdjacentText(t *testing.T) {
	s := testSchema(t)
	foo := mustText(t, s, "foo")
	bar := mustText(t, s, "bar")

	frag := model.FragmentFromArray([]*model.Node{foo, bar})
	require.Equal(t, 1, frag.ChildCount())
	assert.Equal(t, 6, frag.Size)
	only, err := frag.Child(0)
	require.NoError(t, err)
	assert.Equal(t, "foobar", only.Text)
}

// Invariant 2 — text children with differing markup are never merged.
func TestFragmentFromArrayKeepsDistinctMarkupSeparate(t *testing.T) {
	s := testSchema(t)
	em := mustMark(t, s, "em", nil)
	plain := mustText(t, s, "foo")
	emph := mustText(t, s, "bar", em)

	frag := model.FragmentFromArray([]*model.Node{plain, emph})
	assert.Equal(t, 2, frag.ChildCount())
}

// Invariant 1 — a fragment's cached Size equals the sum of its
// children's NodeSize.
func TestFragmentSizeIsAuthoritative(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hello"))
	p2 := mustParagraph(t, s, mustText(t, s, "world"))
	doc := mustDoc(t, s, p1, p2)

	sum := 0
	doc.Content.ForEach(func(child *model.Node, _, _ int) {
		sum += child.NodeSize()
	})
	assert.Equal(t, sum, doc.Content.Size)
	assert.Equal(t, 14, doc.Content.Size) // two 7-unit paragraphs
}

func TestFragmentAppendMergesTextBoundary(t *testing.T) {
	s := testSchema(t)
	a, err := model.FragmentFrom(mustText(t, s, "foo"))
	require.NoError(t, err)
	b, err := model.FragmentFrom(mustText(t, s, "bar"))
	require.NoError(t, err)

	joined := a.Append(b)
	require.Equal(t, 1, joined.ChildCount())
	child, err := joined.Child(0)
	require.NoError(t, err)
	assert.Equal(t, "foobar", child.Text)
}

func TestFragmentAppendEmptyShortcuts(t *testing.T) {
	s := testSchema(t)
	a, err := model.FragmentFrom(mustText(t, s, "foo"))
	require.NoError(t, err)
	empty := model.EmptyFragment()

	assert.Same(t, a, a.Append(empty))
	assert.Same(t, a, empty.Append(a))
}

func TestFragmentCutSplitsTextAndDescendsIntoChildren(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hello"))
	p2 := mustParagraph(t, s, mustText(t, s, "world"))
	doc := mustDoc(t, s, p1, p2)

	// Cut out just "llo" + "wor": positions 3..11 in doc.Content's
	// coordinate space (paragraph 1 spans [0,7), paragraph 2 [7,14)).
	cut, err := doc.Content.Cut(3, 11)
	require.NoError(t, err)
	require.Equal(t, 2, cut.ChildCount())

	first, err := cut.Child(0)
	require.NoError(t, err)
	firstText, err := first.Child(0)
	require.NoError(t, err)
	assert.Equal(t, "llo", firstText.Text)

	second, err := cut.Child(1)
	require.NoError(t, err)
	secondText, err := second.Child(0)
	require.NoError(t, err)
	assert.Equal(t, "wor", secondText.Text)
}

func TestFragmentCutWholeRangeReturnsSelf(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hello"))
	frag, err := model.FragmentFrom(p1)
	require.NoError(t, err)

	cut, err := frag.Cut(0, frag.Size)
	require.NoError(t, err)
	assert.Same(t, frag, cut)
}

// Invariant 7 — Cut is a homomorphism: cutting twice composes like
// cutting once with adjusted bounds.
func TestFragmentCutHomomorphism(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hello"))
	p2 := mustParagraph(t, s, mustText(t, s, "world"))
	doc := mustDoc(t, s, p1, p2)

	a, bPrime := 2, 11
	innerA, innerB := 1, 9
	twoStep, err := doc.Content.Cut(a, bPrime)
	require.NoError(t, err)
	twoStep, err = twoStep.Cut(innerA, innerB)
	require.NoError(t, err)

	oneStep, err := doc.Content.Cut(a+innerA, a+innerB)
	require.NoError(t, err)

	assert.True(t, twoStep.Equal(oneStep))
}

func TestFragmentReplaceChildUpdatesSize(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hi"))
	p2 := mustParagraph(t, s, mustText(t, s, "there"))
	frag, err := model.FragmentFrom([]*model.Node{p1, p2})
	require.NoError(t, err)

	longer := mustParagraph(t, s, mustText(t, s, "goodbye"))
	replaced, err := frag.ReplaceChild(0, longer)
	require.NoError(t, err)
	assert.Equal(t, frag.Size+longer.NodeSize()-p1.NodeSize(), replaced.Size)
}

func TestFragmentFindIndexRoundingBias(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hi")) // nodeSize 4, spans [0,4)
	p2 := mustParagraph(t, s, mustText(t, s, "yo")) // nodeSize 4, spans [4,8)
	frag, err := model.FragmentFrom([]*model.Node{p1, p2})
	require.NoError(t, err)

	// pos 2 sits strictly inside p1's span, not on a child boundary.
	idx, off, err := frag.FindIndex(2, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0, off)

	idx, off, err = frag.FindIndex(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 4, off)
}

func TestFragmentNodesBetweenSkipsDescendantsWhenToldTo(t *testing.T) {
	s := testSchema(t)
	p1 := mustParagraph(t, s, mustText(t, s, "hello"))
	p2 := mustParagraph(t, s, mustText(t, s, "world"))
	doc := mustDoc(t, s, p1, p2)

	var visited []string
	doc.Content.NodesBetween(0, doc.Content.Size, func(child *model.Node, pos int, parent *model.Node, index int) bool {
		visited = append(visited, child.DebugString())
		return false // never descend
	}, 0, doc)

	assert.Len(t, visited, 2)
}

func TestFindDiffStartAndEnd(t *testing.T) {
	s := testSchema(t)
	a, err := model.FragmentFrom([]*model.Node{mustText(t, s, "hello world")})
	require.NoError(t, err)
	b, err := model.FragmentFrom([]*model.Node{mustText(t, s, "hello there")})
	require.NoError(t, err)

	start := model.FindDiffStart(a, b, 0)
	assert.Equal(t, 6, start) // diverges right after "hello "

	end := model.FindDiffEnd(a, b, a.Size, b.Size)
	require.NotNil(t, end)
	// "hello world" vs "hello there": shared suffix is none ('d' vs 'e'),
	// so both tails point at the very end.
	assert.Equal(t, a.Size, end.A)
	assert.Equal(t, b.Size, end.B)
}

func TestFindDiffStartIdenticalFragmentsReturnsMinusOne(t *testing.T) {
	s := testSchema(t)
	a, err := model.FragmentFrom([]*model.Node{mustText(t, s, "same")})
	require.NoError(t, err)
	b, err := model.FragmentFrom([]*model.Node{mustText(t, s, "same")})
	require.NoError(t, err)

	assert.Equal(t, -1, model.FindDiffStart(a, b, 0))
}
