// Package mdimport converts Markdown source into a docengine document
// tree, using goldmark for parsing and Schema as the target content
// model. Conversion is one-directional: goldmark's AST is walked once
// to build a Node tree, with no path back from Node to Markdown source.
package mdimport

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/yaklabco/docengine/pkg/langdetect"
	"github.com/yaklabco/docengine/pkg/model"
)

// mapper holds the source buffer that goldmark's AST nodes reference by
// byte segment.
type mapper struct {
	source []byte
}

// Import parses source as Markdown and builds a document node against
// Schema.
func Import(source []byte) (*model.Node, error) {
	doc := goldmark.DefaultParser().Parse(gmtext.NewReader(source))
	m := &mapper{source: source}
	return m.mapDocument(doc)
}

func (m *mapper) mapDocument(doc ast.Node) (*model.Node, error) {
	blocks, err := m.mapBlockChildren(doc)
	if err != nil {
		return nil, err
	}
	return Schema.Node("doc", nil, blocks, nil)
}

func (m *mapper) mapBlockChildren(parent ast.Node) ([]*model.Node, error) {
	var out []*model.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		n, err := m.mapBlock(child)
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mapper) mapBlock(node ast.Node) (*model.Node, error) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		inline, err := m.mapInlineChildren(node, nil)
		if err != nil {
			return nil, err
		}
		return Schema.Node("paragraph", nil, inline, nil)

	case *ast.Heading:
		inline, err := m.mapInlineChildren(node, nil)
		if err != nil {
			return nil, err
		}
		return Schema.Node("heading", model.Attrs{"level": n.Level}, inline, nil)

	case *ast.Blockquote:
		blocks, err := m.mapBlockChildren(node)
		if err != nil {
			return nil, err
		}
		return Schema.Node("blockquote", nil, blocks, nil)

	case *ast.FencedCodeBlock:
		text := m.blockText(n)
		language := strings.TrimSpace(string(n.Language(m.source)))
		if language == "" {
			language = langdetect.Detect([]byte(text))
		}
		return m.codeBlockNode(text, language)

	case *ast.CodeBlock:
		text := m.blockText(n)
		return m.codeBlockNode(text, langdetect.Detect([]byte(text)))

	case *ast.ThematicBreak:
		return Schema.Node("horizontalRule", nil, nil, nil)

	case *ast.List:
		return m.mapList(n)

	default:
		// HTML blocks and other constructs outside this schema's
		// content model are dropped rather than approximated.
		return nil, nil
	}
}

func (m *mapper) codeBlockNode(text, language string) (*model.Node, error) {
	var content []*model.Node
	if text != "" {
		textNode, err := Schema.Text(text, nil)
		if err != nil {
			return nil, err
		}
		content = []*model.Node{textNode}
	}
	return Schema.Node("codeBlock", model.Attrs{"language": language}, content, nil)
}

func (m *mapper) blockText(node ast.Node) string {
	lines := node.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(m.source))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *mapper) mapList(list *ast.List) (*model.Node, error) {
	var items []*model.Node
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		blocks, err := m.mapBlockChildren(item)
		if err != nil {
			return nil, err
		}
		node, err := Schema.Node("listItem", nil, blocks, nil)
		if err != nil {
			return nil, err
		}
		items = append(items, node)
	}
	if list.IsOrdered() {
		return Schema.Node("orderedList", model.Attrs{"start": list.Start}, items, nil)
	}
	return Schema.Node("bulletList", nil, items, nil)
}

func (m *mapper) mapInlineChildren(parent ast.Node, marks []*model.Mark) ([]*model.Node, error) {
	var out []*model.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := m.mapInline(child, marks, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (m *mapper) mapInline(node ast.Node, marks []*model.Mark, out *[]*model.Node) error {
	switch n := node.(type) {
	case *ast.Text:
		segment := string(n.Segment.Value(m.source))
		if segment != "" {
			textNode, err := Schema.Text(segment, marks)
			if err != nil {
				return err
			}
			*out = append(*out, textNode)
		}
		if n.HardLineBreak() {
			br, err := Schema.Node("hardBreak", nil, nil, marks)
			if err != nil {
				return err
			}
			*out = append(*out, br)
		} else if n.SoftLineBreak() {
			space, err := Schema.Text(" ", marks)
			if err != nil {
				return err
			}
			*out = append(*out, space)
		}
		return nil

	case *ast.Emphasis:
		markName := "em"
		if n.Level >= 2 {
			markName = "strong"
		}
		mark, err := Schema.Mark(markName, nil)
		if err != nil {
			return err
		}
		return m.mapInlineChildrenInto(n, mark.AddToSet(marks), out)

	case *ast.CodeSpan:
		mark, err := Schema.Mark("code", nil)
		if err != nil {
			return err
		}
		return m.mapInlineChildrenInto(n, mark.AddToSet(marks), out)

	case *ast.Link:
		mark, err := Schema.Mark("link", model.Attrs{
			"href":  string(n.Destination),
			"title": string(n.Title),
		})
		if err != nil {
			return err
		}
		return m.mapInlineChildrenInto(n, mark.AddToSet(marks), out)

	case *ast.AutoLink:
		url := string(n.URL(m.source))
		mark, err := Schema.Mark("link", model.Attrs{"href": url, "title": ""})
		if err != nil {
			return err
		}
		textNode, err := Schema.Text(url, mark.AddToSet(marks))
		if err != nil {
			return err
		}
		*out = append(*out, textNode)
		return nil

	case *ast.Image:
		alt, err := m.plainText(n)
		if err != nil {
			return err
		}
		img, err := Schema.Node("image", model.Attrs{
			"src":   string(n.Destination),
			"alt":   alt,
			"title": string(n.Title),
		}, nil, marks)
		if err != nil {
			return err
		}
		*out = append(*out, img)
		return nil

	default:
		return m.mapInlineChildrenInto(node, marks, out)
	}
}

func (m *mapper) mapInlineChildrenInto(parent ast.Node, marks []*model.Mark, out *[]*model.Node) error {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := m.mapInline(child, marks, out); err != nil {
			return err
		}
	}
	return nil
}

// plainText flattens an inline subtree (typically an image's alt-text
// children) into a single string, discarding marks.
func (m *mapper) plainText(node ast.Node) (string, error) {
	var b strings.Builder
	var walk func(n ast.Node) error
	walk = func(n ast.Node) error {
		if text, ok := n.(*ast.Text); ok {
			b.Write(text.Segment.Value(m.source))
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	err := walk(node)
	return b.String(), err
}
