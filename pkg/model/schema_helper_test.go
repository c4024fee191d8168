package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docengine/pkg/model"
)

// testSchema builds a small schema mirroring the worked examples in §8:
// marks declared in the order em, strong, link, code (giving ranks
// 0..3), a doc/paragraph/heading/image node set, and a text type that
// allows every mark.
func testSchema(t *testing.T) *model.Schema {
	t.Helper()
	inclusiveFalse := false
	s, err := model.NewSchema(model.SchemaSpec{
		TopNode: "doc",
		Nodes: []model.NamedNodeSpec{
			{Name: "doc", Spec: model.NodeSpec{Content: "block+"}},
			{Name: "paragraph", Spec: model.NodeSpec{Content: "inline*", Group: "block"}},
			{Name: "heading", Spec: model.NodeSpec{
				Content: "inline*", Group: "block",
				Attrs: map[string]model.AttributeSpec{
					"level": {Default: 1, HasDefault: true},
				},
			}},
			{Name: "blockquote", Spec: model.NodeSpec{Content: "block+", Group: "block"}},
			{Name: "image", Spec: model.NodeSpec{
				Content: "", Group: "inline", Inline: true, Atom: true,
				Attrs: map[string]model.AttributeSpec{
					"src": {HasDefault: false},
				},
			}},
			{Name: "text", Spec: model.NodeSpec{Group: "inline"}},
		},
		Marks: []model.NamedMarkSpec{
			{Name: "em", Spec: model.MarkSpec{}},
			{Name: "strong", Spec: model.MarkSpec{}},
			{Name: "link", Spec: model.MarkSpec{
				Inclusive: &inclusiveFalse,
				Attrs: map[string]model.AttributeSpec{
					"href": {HasDefault: false},
				},
			}},
			{Name: "code", Spec: model.MarkSpec{Inclusive: &inclusiveFalse}},
		},
	})
	require.NoError(t, err)
	return s
}

// strictSchema builds a schema where paragraph only accepts inline
// content (no nested paragraphs), for S5-style replace-rejection tests.
func strictSchema(t *testing.T) *model.Schema {
	t.Helper()
	s, err := model.NewSchema(model.SchemaSpec{
		TopNode: "doc",
		Nodes: []model.NamedNodeSpec{
			{Name: "doc", Spec: model.NodeSpec{Content: "paragraph+"}},
			{Name: "paragraph", Spec: model.NodeSpec{Content: "text*"}},
			{Name: "text", Spec: model.NodeSpec{}},
		},
	})
	require.NoError(t, err)
	return s
}

func mustText(t *testing.T, s *model.Schema, text string, marks ...*model.Mark) *model.Node {
	t.Helper()
	n, err := s.Text(text, marks)
	require.NoError(t, err)
	return n
}

func mustParagraph(t *testing.T, s *model.Schema, children ...*model.Node) *model.Node {
	t.Helper()
	n, err := s.Node("paragraph", nil, nodeSlice(children), nil)
	require.NoError(t, err)
	return n
}

func mustDoc(t *testing.T, s *model.Schema, children ...*model.Node) *model.Node {
	t.Helper()
	n, err := s.Node("doc", nil, nodeSlice(children), nil)
	require.NoError(t, err)
	return n
}

func mustMark(t *testing.T, s *model.Schema, name string, attrs model.Attrs) *model.Mark {
	t.Helper()
	m, err := s.Mark(name, attrs)
	require.NoError(t, err)
	return m
}

// nodeSlice lets call sites write mustParagraph(t, s, a, b) while
// FragmentFrom wants a []*model.Node (or nil for an empty fragment).
func nodeSlice(nodes []*model.Node) []*model.Node {
	if len(nodes) == 0 {
		return nil
	}
	return nodes
}
