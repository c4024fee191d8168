package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docengine/pkg/model"
)

func contentSchema(t *testing.T) *model.Schema {
	t.Helper()
	s, err := model.NewSchema(model.SchemaSpec{
		TopNode: "doc",
		Nodes: []model.NamedNodeSpec{
			{Name: "doc", Spec: model.NodeSpec{Content: "paragraph+"}},
			{Name: "paragraph", Spec: model.NodeSpec{Content: "text*"}},
			{Name: "heading", Spec: model.NodeSpec{Content: "text*"}},
			{Name: "text", Spec: model.NodeSpec{}},
		},
	})
	require.NoError(t, err)
	return s
}

func TestContentMatchValidEndAndMatchType(t *testing.T) {
	s := contentSchema(t)
	doc := s.Nodes["doc"]
	para := s.Nodes["paragraph"]

	start := doc.ContentMatch
	assert.False(t, start.ValidEnd, "paragraph+ requires at least one paragraph")

	afterOne := start.MatchType(para)
	require.NotNil(t, afterOne)
	assert.True(t, afterOne.ValidEnd)

	afterTwo := afterOne.MatchType(para)
	require.NotNil(t, afterTwo)
	assert.True(t, afterTwo.ValidEnd)

	assert.Nil(t, start.MatchType(s.Nodes["heading"]))
}

func TestContentMatchMatchFragment(t *testing.T) {
	s := testSchema(t)
	doc := s.Nodes["doc"]
	p1 := mustParagraph(t, s, mustText(t, s, "a"))
	p2 := mustParagraph(t, s, mustText(t, s, "b"))
	frag, err := model.FragmentFrom([]*model.Node{p1, p2})
	require.NoError(t, err)

	end, err := doc.ContentMatch.MatchFragment(frag)
	require.NoError(t, err)
	require.NotNil(t, end)
	assert.True(t, end.ValidEnd)
}

func TestContentMatchEmptyAcceptsNothing(t *testing.T) {
	s := testSchema(t)
	assert.Same(t, model.EmptyContentMatch, s.Nodes["image"].ContentMatch)
	assert.True(t, s.Nodes["image"].ContentMatch.ValidEnd)
	assert.Equal(t, 0, s.Nodes["image"].ContentMatch.EdgeCount())
}

func TestContentMatchCompatible(t *testing.T) {
	s := contentSchema(t)
	para := s.Nodes["paragraph"]
	heading := s.Nodes["heading"]
	// Both paragraph and heading accept only "text*", so their content
	// matches should be mutually compatible at every depth they share.
	assert.True(t, para.ContentMatch.Compatible(heading.ContentMatch))
}

func TestContentMatchIncompatibleTypesCannotJoin(t *testing.T) {
	s := contentSchema(t)
	doc := s.Nodes["doc"]
	para := s.Nodes["paragraph"]
	// doc accepts paragraph+, paragraph accepts text*: their DFAs share
	// no common next type.
	assert.False(t, doc.ContentMatch.Compatible(para.ContentMatch))
}

func TestContentMatchInlineContent(t *testing.T) {
	s := testSchema(t)
	assert.True(t, s.Nodes["paragraph"].ContentMatch.InlineContent())
	assert.False(t, s.Nodes["doc"].ContentMatch.InlineContent())
}

// fillBefore is exercised through NodeType.CreateAndFill: a bulletList
// requires at least one listItem, which in turn requires exactly one
// paragraph, so filling a bulletList from nothing must auto-construct
// both missing interior wrappers — the scenario called out in §4.4.
func TestContentMatchFillBeforeAutoFillsInteriorWrappers(t *testing.T) {
	s, err := model.NewSchema(model.SchemaSpec{
		TopNode: "doc",
		Nodes: []model.NamedNodeSpec{
			{Name: "doc", Spec: model.NodeSpec{Content: "bulletList"}},
			{Name: "bulletList", Spec: model.NodeSpec{Content: "listItem+"}},
			{Name: "listItem", Spec: model.NodeSpec{Content: "paragraph"}},
			{Name: "paragraph", Spec: model.NodeSpec{Content: "text*"}},
			{Name: "text", Spec: model.NodeSpec{}},
		},
	})
	require.NoError(t, err)

	bulletList := s.Nodes["bulletList"]
	filled, err := bulletList.CreateAndFill(nil, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, filled)
	require.Equal(t, 1, filled.ChildCount())

	item, err := filled.Child(0)
	require.NoError(t, err)
	assert.Equal(t, "listItem", item.Type.Name)
	inner, err := item.Child(0)
	require.NoError(t, err)
	assert.Equal(t, "paragraph", inner.Type.Name)
	assert.NoError(t, filled.Check())
}

func TestContentMatchFillBeforeReturnsNilWhenImpossible(t *testing.T) {
	s, err := model.NewSchema(model.SchemaSpec{
		Nodes: []model.NamedNodeSpec{
			{Name: "doc", Spec: model.NodeSpec{Content: "requiredAttr+"}},
			{Name: "requiredAttr", Spec: model.NodeSpec{
				Attrs: map[string]model.AttributeSpec{"id": {HasDefault: false}},
			}},
			{Name: "text", Spec: model.NodeSpec{}},
		},
	})
	require.NoError(t, err)

	// requiredAttr has no default for "id", so FillBefore can never
	// auto-construct one: doc can never be filled from nothing.
	filled, err := s.TopNodeType.CreateAndFill(nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, filled)
}

func TestContentMatchExportImportDFARoundTrip(t *testing.T) {
	s := contentSchema(t)
	states := s.Nodes["doc"].ContentMatch.ExportDFA()
	require.NotEmpty(t, states)

	rebuilt, err := model.ImportDFA(states, func(name string) (*model.NodeType, error) {
		nt, ok := s.Nodes[name]
		if !ok {
			t.Fatalf("unknown type %q", name)
		}
		return nt, nil
	})
	require.NoError(t, err)

	para := s.Nodes["paragraph"]
	orig := s.Nodes["doc"].ContentMatch
	assert.Equal(t, orig.ValidEnd, rebuilt.ValidEnd)
	assert.Equal(t, orig.MatchType(para) != nil, rebuilt.MatchType(para) != nil)
}
