// Package domspec models the serializer output protocol the core
// content model hands off to a renderer: a recursive structure built
// from strings (text), an opaque already-built DOM node, a
// {Dom, ContentDOM} pair, or a TagSpec ([tagName, attrs?, ...children]),
// where exactly one child anywhere in the tree may be the content hole
// — the position a node's own children get spliced into.
//
// The core itself never walks or renders this structure; it only needs
// to be able to construct one (from a NodeType's toDOM-equivalent) and
// validate the hole-placement invariant before handing it to a renderer.
package domspec

import "github.com/yaklabco/docengine/pkg/model"

// OutputSpec is one node of a DOM output tree: a string, a DOMNode, a
// *DOMResult, a TagSpec, or Hole.
type OutputSpec any

// Hole marks the unique position in an output tree where a node's own
// children are spliced in by the renderer.
type Hole struct{}

// DOMNode is an opaque, already-constructed platform DOM node; domspec
// never inspects it, only passes it through.
type DOMNode any

// DOMResult pairs an outer DOM node with a separate node that should
// receive the content hole's children, for renderers where the two
// differ (e.g. a wrapper element around an editable inner element).
type DOMResult struct {
	Dom        DOMNode
	ContentDOM DOMNode
}

// TagSpec is the [tagName, attrs?, ...children] array form. Tag may
// begin with "<namespace> " to select a non-default XML namespace, and
// an attribute name may carry a namespace prefix the same way.
type TagSpec struct {
	Tag      string
	Attrs    map[string]string
	Children []OutputSpec
}

// Validate checks the hole-placement invariants: at most one Hole
// appears anywhere in spec, and if present it is the sole child of its
// immediate parent TagSpec.
func Validate(spec OutputSpec) error {
	holes := 0
	var walk func(s OutputSpec) error
	walk = func(s OutputSpec) error {
		tag, ok := s.(TagSpec)
		if !ok {
			return nil
		}
		for _, child := range tag.Children {
			if _, isHole := child.(Hole); isHole {
				holes++
				if holes > 1 {
					return &model.ReplaceError{Op: "domspec.Validate", Detail: "at most one content hole is allowed in an output spec"}
				}
				if len(tag.Children) != 1 {
					return &model.ReplaceError{Op: "domspec.Validate", Detail: "a content hole must be the sole child of its immediate parent"}
				}
				continue
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(spec)
}
