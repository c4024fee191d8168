package mdimport

import "github.com/yaklabco/docengine/pkg/model"

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// Schema is the document schema markdown import produces nodes against:
// a block-level tree of paragraphs, headings, lists, blockquotes and
// code blocks, carrying inline text with strong/em/code/link marks. It
// is deliberately small; callers that need a richer content model
// declare their own schema and adapt Import's mapping instead.
var Schema *model.Schema

func init() {
	s, err := model.NewSchema(model.SchemaSpec{
		TopNode: "doc",
		Nodes: []model.NamedNodeSpec{
			{Name: "doc", Spec: model.NodeSpec{Content: "block+"}},
			{Name: "paragraph", Spec: model.NodeSpec{
				Content: "inline*", Group: "block",
			}},
			{Name: "heading", Spec: model.NodeSpec{
				Content: "inline*", Group: "block",
				Attrs: map[string]model.AttributeSpec{
					"level": {Default: 1, HasDefault: true},
				},
			}},
			{Name: "blockquote", Spec: model.NodeSpec{
				Content: "block+", Group: "block",
			}},
			{Name: "codeBlock", Spec: model.NodeSpec{
				Content: "text*", Group: "block", Marks: strPtr(""),
				Whitespace: "pre",
				Attrs: map[string]model.AttributeSpec{
					"language": {Default: "", HasDefault: true},
				},
			}},
			{Name: "horizontalRule", Spec: model.NodeSpec{
				Content: "", Group: "block", Atom: true,
			}},
			{Name: "bulletList", Spec: model.NodeSpec{
				Content: "listItem+", Group: "block",
			}},
			{Name: "orderedList", Spec: model.NodeSpec{
				Content: "listItem+", Group: "block",
				Attrs: map[string]model.AttributeSpec{
					"start": {Default: 1, HasDefault: true},
				},
			}},
			{Name: "listItem", Spec: model.NodeSpec{
				Content: "paragraph block*",
			}},
			{Name: "hardBreak", Spec: model.NodeSpec{
				Content: "", Group: "inline", Inline: true,
			}},
			{Name: "image", Spec: model.NodeSpec{
				Content: "", Group: "inline", Inline: true, Atom: true,
				Attrs: map[string]model.AttributeSpec{
					"src":   {HasDefault: false},
					"alt":   {Default: "", HasDefault: true},
					"title": {Default: "", HasDefault: true},
				},
			}},
			{Name: "text", Spec: model.NodeSpec{Group: "inline"}},
		},
		Marks: []model.NamedMarkSpec{
			{Name: "strong", Spec: model.MarkSpec{}},
			{Name: "em", Spec: model.MarkSpec{}},
			{Name: "code", Spec: model.MarkSpec{Inclusive: boolPtr(false)}},
			{Name: "link", Spec: model.MarkSpec{
				Inclusive: boolPtr(false),
				Attrs: map[string]model.AttributeSpec{
					"href":  {HasDefault: false},
					"title": {Default: "", HasDefault: true},
				},
			}},
		},
	})
	if err != nil {
		panic("mdimport: builtin schema failed to compile: " + err.Error())
	}
	Schema = s
}
