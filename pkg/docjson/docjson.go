// Package docjson implements the wire format for documents, nodes,
// marks, fragments, and slices described in the core content model:
// a node serializes to {type, attrs?, content?, marks?, text?}, a mark
// to {type, attrs?}, a fragment to an array (or null when empty), and a
// slice to {content, openStart?, openEnd?} (or null when empty).
//
// Deserialization is strict: an unknown node or mark type name, a
// non-string text field, or a non-array content/marks field all
// produce a *model.RangeError rather than a best-effort partial parse.
package docjson

import (
	"encoding/json"
	"fmt"

	"github.com/yaklabco/docengine/pkg/model"
)

type nodeWire struct {
	Type    string            `json:"type"`
	Attrs   map[string]any    `json:"attrs,omitempty"`
	Content []json.RawMessage `json:"content,omitempty"`
	Marks   []json.RawMessage `json:"marks,omitempty"`
	Text    *string           `json:"text,omitempty"`
}

type markWire struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

type sliceWire struct {
	Content   []json.RawMessage `json:"content"`
	OpenStart int               `json:"openStart,omitempty"`
	OpenEnd   int               `json:"openEnd,omitempty"`
}

func rangeErr(op, format string, args ...any) error {
	return &model.RangeError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// MarshalNode encodes n as document JSON.
func MarshalNode(n *model.Node) ([]byte, error) {
	return json.Marshal(nodeToWire(n))
}

// UnmarshalNode decodes document JSON into a node, resolving type names
// against schema and validating the result against schema's content
// rules.
func UnmarshalNode(data []byte, schema *model.Schema) (*model.Node, error) {
	var wire nodeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, rangeErr("docjson.UnmarshalNode", "malformed node JSON: %s", err)
	}
	return nodeFromWire(&wire, schema)
}

// MarshalMark encodes m as mark JSON.
func MarshalMark(m *model.Mark) ([]byte, error) {
	return json.Marshal(markToWire(m))
}

// UnmarshalMark decodes mark JSON, resolving its type name against
// schema.
func UnmarshalMark(data []byte, schema *model.Schema) (*model.Mark, error) {
	var wire markWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, rangeErr("docjson.UnmarshalMark", "malformed mark JSON: %s", err)
	}
	return markFromWire(&wire, schema)
}

// MarshalFragment encodes f as a JSON array of child node JSON, or
// JSON null if f is empty.
func MarshalFragment(f *model.Fragment) ([]byte, error) {
	if f == nil || f.ChildCount() == 0 {
		return json.Marshal(nil)
	}
	wires := make([]nodeWire, f.ChildCount())
	for i := 0; i < f.ChildCount(); i++ {
		child, err := f.Child(i)
		if err != nil {
			return nil, err
		}
		wires[i] = nodeToWire(child)
	}
	return json.Marshal(wires)
}

// UnmarshalFragment decodes fragment JSON (an array, or null for empty).
func UnmarshalFragment(data []byte, schema *model.Schema) (*model.Fragment, error) {
	if string(data) == "null" {
		return model.EmptyFragment(), nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, rangeErr("docjson.UnmarshalFragment", "content must be a JSON array or null: %s", err)
	}
	nodes := make([]*model.Node, len(raws))
	for i, raw := range raws {
		n, err := UnmarshalNode(raw, schema)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return model.FragmentFromArray(nodes), nil
}

// MarshalSlice encodes s as slice JSON, or JSON null for the empty
// slice.
func MarshalSlice(s *model.Slice) ([]byte, error) {
	if s == nil || s.Content.Size == 0 {
		return json.Marshal(nil)
	}
	wire := sliceWire{OpenStart: s.OpenStart, OpenEnd: s.OpenEnd}
	for i := 0; i < s.Content.ChildCount(); i++ {
		child, err := s.Content.Child(i)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(nodeToWire(child))
		if err != nil {
			return nil, err
		}
		wire.Content = append(wire.Content, raw)
	}
	return json.Marshal(wire)
}

// UnmarshalSlice decodes slice JSON (an object, or null for the empty
// slice).
func UnmarshalSlice(data []byte, schema *model.Schema) (*model.Slice, error) {
	if string(data) == "null" {
		return model.EmptySlice(), nil
	}
	var wire sliceWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, rangeErr("docjson.UnmarshalSlice", "malformed slice JSON: %s", err)
	}
	nodes := make([]*model.Node, len(wire.Content))
	for i, raw := range wire.Content {
		n, err := UnmarshalNode(raw, schema)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return &model.Slice{Content: model.FragmentFromArray(nodes), OpenStart: wire.OpenStart, OpenEnd: wire.OpenEnd}, nil
}

func nodeToWire(n *model.Node) nodeWire {
	wire := nodeWire{Type: n.Type.Name}
	if len(n.Attrs) > 0 {
		wire.Attrs = map[string]any(n.Attrs)
	}
	if n.IsText() {
		text := n.Text
		wire.Text = &text
	} else if n.ChildCount() > 0 {
		wire.Content = make([]json.RawMessage, n.ChildCount())
		n.ForEach(func(child *model.Node, _, index int) {
			raw, err := json.Marshal(nodeToWire(child))
			if err != nil {
				return
			}
			wire.Content[index] = raw
		})
	}
	if len(n.Marks) > 0 {
		wire.Marks = make([]json.RawMessage, len(n.Marks))
		for i, m := range n.Marks {
			raw, _ := json.Marshal(markToWire(m))
			wire.Marks[i] = raw
		}
	}
	return wire
}

func markToWire(m *model.Mark) markWire {
	wire := markWire{Type: m.Type.Name}
	if len(m.Attrs) > 0 {
		wire.Attrs = map[string]any(m.Attrs)
	}
	return wire
}

func nodeFromWire(wire *nodeWire, schema *model.Schema) (*model.Node, error) {
	if wire.Type == "" {
		return nil, rangeErr("docjson.UnmarshalNode", "node JSON missing a \"type\" field")
	}
	nt, ok := schema.Nodes[wire.Type]
	if !ok {
		return nil, rangeErr("docjson.UnmarshalNode", "unknown node type %q", wire.Type)
	}
	marks, err := marksFromWire(wire.Marks, schema)
	if err != nil {
		return nil, err
	}
	if nt.IsText {
		if wire.Text == nil {
			return nil, rangeErr("docjson.UnmarshalNode", "node of text type %q requires a string \"text\" field", wire.Type)
		}
		if len(wire.Content) > 0 {
			return nil, rangeErr("docjson.UnmarshalNode", "text node %q must not carry \"content\"", wire.Type)
		}
		return model.NewTextNode(nt, model.Attrs(wire.Attrs), *wire.Text, marks)
	}
	if wire.Text != nil {
		return nil, rangeErr("docjson.UnmarshalNode", "non-text node %q must not carry \"text\"", wire.Type)
	}
	children := make([]*model.Node, len(wire.Content))
	for i, raw := range wire.Content {
		child, err := UnmarshalNode(raw, schema)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	content := model.FragmentFromArray(children)
	return nt.CreateChecked(model.Attrs(wire.Attrs), content, marks)
}

func markFromWire(wire *markWire, schema *model.Schema) (*model.Mark, error) {
	if wire.Type == "" {
		return nil, rangeErr("docjson.UnmarshalMark", "mark JSON missing a \"type\" field")
	}
	mt, ok := schema.Marks[wire.Type]
	if !ok {
		return nil, rangeErr("docjson.UnmarshalMark", "unknown mark type %q", wire.Type)
	}
	return mt.Create(model.Attrs(wire.Attrs))
}

func marksFromWire(raws []json.RawMessage, schema *model.Schema) ([]*model.Mark, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	marks := make([]*model.Mark, len(raws))
	for i, raw := range raws {
		var wire markWire
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, rangeErr("docjson.UnmarshalNode", "malformed mark JSON: %s", err)
		}
		m, err := markFromWire(&wire, schema)
		if err != nil {
			return nil, err
		}
		marks[i] = m
	}
	return model.MarkSetFrom(marks), nil
}
