package docjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docengine/pkg/docjson"
	"github.com/yaklabco/docengine/pkg/model"
)

func jsonTestSchema(t *testing.T) *model.Schema {
	t.Helper()
	inclusiveFalse := false
	s, err := model.NewSchema(model.SchemaSpec{
		TopNode: "doc",
		Nodes: []model.NamedNodeSpec{
			{Name: "doc", Spec: model.NodeSpec{Content: "paragraph+"}},
			{Name: "paragraph", Spec: model.NodeSpec{Content: "inline*"}},
			{Name: "image", Spec: model.NodeSpec{
				Content: "", Inline: true, Atom: true,
				Attrs: map[string]model.AttributeSpec{"src": {HasDefault: false}},
			}},
			{Name: "text", Spec: model.NodeSpec{}},
		},
		Marks: []model.NamedMarkSpec{
			{Name: "em", Spec: model.MarkSpec{}},
			{Name: "link", Spec: model.MarkSpec{
				Inclusive: &inclusiveFalse,
				Attrs:     map[string]model.AttributeSpec{"href": {HasDefault: false}},
			}},
		},
	})
	require.NoError(t, err)
	return s
}

// Invariant 5 — marshal then unmarshal reproduces the original node.
func TestNodeJSONRoundTrip(t *testing.T) {
	s := jsonTestSchema(t)
	em, err := s.Mark("em", nil)
	require.NoError(t, err)
	text, err := s.Text("hello", []*model.Mark{em})
	require.NoError(t, err)
	p, err := s.Node("paragraph", nil, text, nil)
	require.NoError(t, err)
	doc, err := s.Node("doc", nil, p, nil)
	require.NoError(t, err)

	data, err := docjson.MarshalNode(doc)
	require.NoError(t, err)

	back, err := docjson.UnmarshalNode(data, s)
	require.NoError(t, err)
	assert.True(t, doc.Equal(back))
}

func TestNodeJSONOmitsEmptyAttrsContentMarks(t *testing.T) {
	s := jsonTestSchema(t)
	p, err := s.Node("paragraph", nil, nil, nil)
	require.NoError(t, err)

	data, err := docjson.MarshalNode(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"paragraph"}`, string(data))
}

func TestNodeJSONTextNodeShape(t *testing.T) {
	s := jsonTestSchema(t)
	text, err := s.Text("hi", nil)
	require.NoError(t, err)

	data, err := docjson.MarshalNode(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"text","text":"hi"}`, string(data))
}

func TestNodeJSONWithMarksAndAttrs(t *testing.T) {
	s := jsonTestSchema(t)
	link, err := s.Mark("link", model.Attrs{"href": "http://x"})
	require.NoError(t, err)
	text, err := s.Text("go", []*model.Mark{link})
	require.NoError(t, err)

	data, err := docjson.MarshalNode(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"text","text":"go","marks":[{"type":"link","attrs":{"href":"http://x"}}]}`, string(data))
}

func TestUnmarshalNodeRejectsUnknownType(t *testing.T) {
	s := jsonTestSchema(t)
	_, err := docjson.UnmarshalNode([]byte(`{"type":"blockquote"}`), s)
	assert.Error(t, err)
}

func TestUnmarshalNodeRejectsNonStringText(t *testing.T) {
	s := jsonTestSchema(t)
	_, err := docjson.UnmarshalNode([]byte(`{"type":"text","text":123}`), s)
	assert.Error(t, err)
}

func TestUnmarshalNodeRejectsNonArrayContent(t *testing.T) {
	s := jsonTestSchema(t)
	_, err := docjson.UnmarshalNode([]byte(`{"type":"paragraph","content":"not-an-array"}`), s)
	assert.Error(t, err)
}

func TestUnmarshalNodeRejectsTextNodeWithContent(t *testing.T) {
	s := jsonTestSchema(t)
	_, err := docjson.UnmarshalNode([]byte(`{"type":"text","text":"x","content":[]}`), s)
	assert.Error(t, err)
}

func TestUnmarshalNodeRejectsNonTextNodeWithText(t *testing.T) {
	s := jsonTestSchema(t)
	_, err := docjson.UnmarshalNode([]byte(`{"type":"paragraph","text":"x"}`), s)
	assert.Error(t, err)
}

func TestUnmarshalNodeRejectsMissingTypeField(t *testing.T) {
	s := jsonTestSchema(t)
	_, err := docjson.UnmarshalNode([]byte(`{"text":"x"}`), s)
	assert.Error(t, err)
}

func TestFragmentJSONEmptyIsNull(t *testing.T) {
	data, err := docjson.MarshalFragment(model.EmptyFragment())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	back, err := docjson.UnmarshalFragment(data, jsonTestSchema(t))
	require.NoError(t, err)
	assert.Equal(t, 0, back.ChildCount())
}

func TestFragmentJSONRoundTrip(t *testing.T) {
	s := jsonTestSchema(t)
	a, err := s.Text("a", nil)
	require.NoError(t, err)
	b, err := s.Text("b", nil)
	require.NoError(t, err)
	frag, err := model.FragmentFrom([]*model.Node{
		mustJSONParagraph(t, s, a),
		mustJSONParagraph(t, s, b),
	})
	require.NoError(t, err)

	data, err := docjson.MarshalFragment(frag)
	require.NoError(t, err)

	back, err := docjson.UnmarshalFragment(data, s)
	require.NoError(t, err)
	assert.True(t, frag.Equal(back))
}

func mustJSONParagraph(t *testing.T, s *model.Schema, child *model.Node) *model.Node {
	t.Helper()
	p, err := s.Node("paragraph", nil, child, nil)
	require.NoError(t, err)
	return p
}

func TestMarkJSONRoundTrip(t *testing.T) {
	s := jsonTestSchema(t)
	link, err := s.Mark("link", model.Attrs{"href": "http://x"})
	require.NoError(t, err)

	data, err := docjson.MarshalMark(link)
	require.NoError(t, err)
	back, err := docjson.UnmarshalMark(data, s)
	require.NoError(t, err)
	assert.True(t, link.Equal(back))
}

func TestUnmarshalMarkRejectsUnknownType(t *testing.T) {
	s := jsonTestSchema(t)
	_, err := docjson.UnmarshalMark([]byte(`{"type":"strike"}`), s)
	assert.Error(t, err)
}

func TestSliceJSONEmptyIsNull(t *testing.T) {
	data, err := docjson.MarshalSlice(model.EmptySlice())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	back, err := docjson.UnmarshalSlice(data, jsonTestSchema(t))
	require.NoError(t, err)
	assert.True(t, back.Equal(model.EmptySlice()))
}

func TestSliceJSONRoundTripWithOpenDepths(t *testing.T) {
	s := jsonTestSchema(t)
	p, err := s.Node("paragraph", nil, mustText2(t, s, "hello"), nil)
	require.NoError(t, err)
	doc, err := s.Node("doc", nil, p, nil)
	require.NoError(t, err)

	sl, err := doc.Slice(2, 5, false)
	require.NoError(t, err)

	data, err := docjson.MarshalSlice(sl)
	require.NoError(t, err)
	back, err := docjson.UnmarshalSlice(data, s)
	require.NoError(t, err)
	assert.True(t, sl.Equal(back))
}

func mustText2(t *testing.T, s *model.Schema, text string) *model.Node {
	t.Helper()
	n, err := s.Text(text, nil)
	require.NoError(t, err)
	return n
}
