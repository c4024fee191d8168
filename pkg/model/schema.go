package model

import "strings"

// AttributeSpec, NodeSpec, and MarkSpec are declarative descriptions
// consumed by NewSchema. They carry no behavior of their own; NewSchema
// compiles them into live NodeType/MarkType/ContentMatch graphs.

// NodeSpec declares one node type.
type NodeSpec struct {
	// Content is the content expression (§4.3 grammar: names, groups,
	// sequencing, alternation via '|', and the +, *, ? suffixes).
	Content string
	// Marks lists the mark names/groups allowed on this node, space
	// separated. Nil means every mark is allowed; a pointer to "" means
	// none are.
	Marks *string
	// Group lists the group names this node belongs to, space separated.
	Group string
	// Inline marks this as an inline-level node type. Block is the
	// default.
	Inline bool
	// Atom marks a node as an opaque editing unit.
	Atom bool
	// Attrs declares this node's attributes.
	Attrs map[string]AttributeSpec
	// Isolating blocks join/lift from crossing this node's boundary.
	Isolating bool
	// DefiningAsContext and DefiningForContent affect replace boundary
	// computation (§4.7).
	DefiningAsContext  bool
	DefiningForContent bool
	// Whitespace is "normal" (default) or "pre".
	Whitespace string
}

// MarkSpec declares one mark type.
type MarkSpec struct {
	Attrs map[string]AttributeSpec
	// Inclusive defaults to true when nil.
	Inclusive *bool
	// Group lists the group names this mark belongs to, space separated.
	Group string
	// Excludes lists mark names/groups this mark may not coexist with,
	// space separated. Nil defaults to the mark's own name; a pointer to
	// "" excludes nothing.
	Excludes *string
}

// NamedNodeSpec and NamedMarkSpec pair a declaration with its name,
// preserving the caller's declaration order (Go has no ordered map
// literal).
type NamedNodeSpec struct {
	Name string
	Spec NodeSpec
}

type NamedMarkSpec struct {
	Name string
	Spec MarkSpec
}

// SchemaSpec is the top-level schema declaration passed to NewSchema.
type SchemaSpec struct {
	Nodes []NamedNodeSpec
	Marks []NamedMarkSpec
	// TopNode names the document root type; defaults to "doc" or, absent
	// that, the first declared node.
	TopNode string
	// Precompiled supplies already-built content-match DFAs keyed by
	// content-expression string, as produced by ContentMatch.ExportDFA.
	// A node type whose expression appears here skips grammar compilation
	// entirely; this is how a schema cache (pkg/docstore) restores a
	// schema without re-running the content-expression compiler.
	Precompiled map[string][]DFAState
}

// Schema is a compiled, immutable set of node and mark types plus their
// content-match automata. A Schema owns every NodeType and MarkType it
// mints; those types are only ever compared by pointer identity.
type Schema struct {
	Nodes map[string]*NodeType
	Marks map[string]*MarkType

	NodeOrder []*NodeType
	MarkOrder []*MarkType

	TopNodeType *NodeType
	Spec        SchemaSpec
}

// NewSchema compiles spec into a Schema, resolving group references,
// content expressions, and mark exclusions.
func NewSchema(spec SchemaSpec) (*Schema, error) {
	if len(spec.Nodes) == 0 {
		return nil, newSyntaxError("NewSchema", "a schema must declare at least one node type")
	}
	s := &Schema{Nodes: map[string]*NodeType{}, Marks: map[string]*MarkType{}, Spec: spec}

	nodeGroups := map[string][]*NodeType{}
	for _, entry := range spec.Nodes {
		if _, exists := s.Nodes[entry.Name]; exists {
			return nil, newSyntaxError("NewSchema", "duplicate node type name %q", entry.Name)
		}
		nt := &NodeType{
			Name:               entry.Name,
			Schema:             s,
			Attrs:              entry.Spec.Attrs,
			IsBlock:            !entry.Spec.Inline && entry.Name != "text",
			IsText:             entry.Name == "text",
			Inline:             entry.Spec.Inline || entry.Name == "text",
			Atom:               entry.Spec.Atom,
			Isolating:          entry.Spec.Isolating,
			DefiningAsContext:  entry.Spec.DefiningAsContext,
			DefiningForContent: entry.Spec.DefiningForContent,
			ContentExpr:        entry.Spec.Content,
		}
		if entry.Spec.Whitespace != "" {
			nt.Whitespace = entry.Spec.Whitespace
		} else {
			nt.Whitespace = "normal"
		}
		if def, ok := computeDefaultAttrs(nt.Attrs); ok {
			nt.DefaultAttrs = def
		}
		s.Nodes[entry.Name] = nt
		s.NodeOrder = append(s.NodeOrder, nt)
		for _, g := range strings.Fields(entry.Spec.Group) {
			nt.Groups = append(nt.Groups, g)
			nodeGroups[g] = append(nodeGroups[g], nt)
		}
	}

	markGroups := map[string][]*MarkType{}
	for rank, entry := range spec.Marks {
		if _, exists := s.Marks[entry.Name]; exists {
			return nil, newSyntaxError("NewSchema", "duplicate mark type name %q", entry.Name)
		}
		inclusive := true
		if entry.Spec.Inclusive != nil {
			inclusive = *entry.Spec.Inclusive
		}
		mt := &MarkType{
			Name:      entry.Name,
			Rank:      rank,
			Attrs:     entry.Spec.Attrs,
			Inclusive: inclusive,
			schema:    s,
		}
		if len(mt.Attrs) == 0 {
			inst, err := mt.Create(nil)
			if err != nil {
				return nil, err
			}
			mt.instance = inst
		}
		s.Marks[entry.Name] = mt
		s.MarkOrder = append(s.MarkOrder, mt)
		for _, g := range strings.Fields(entry.Spec.Group) {
			markGroups[g] = append(markGroups[g], mt)
		}
	}

	for name := range s.Nodes {
		if _, ok := s.Marks[name]; ok {
			return nil, newSyntaxError("NewSchema", "%s can not be both a node and a mark", name)
		}
	}

	textType, ok := s.Nodes["text"]
	if !ok {
		return nil, newSyntaxError("NewSchema", "every schema needs a 'text' type")
	}
	if len(textType.Attrs) != 0 {
		return nil, newSyntaxError("NewSchema", "the text node type should not have attributes")
	}

	resolveMarkTerm := func(name string) ([]*MarkType, error) {
		if mt, ok := s.Marks[name]; ok {
			return []*MarkType{mt}, nil
		}
		if group, ok := markGroups[name]; ok {
			return group, nil
		}
		if name == "_" {
			return s.MarkOrder, nil
		}
		return nil, newSyntaxError("NewSchema", "no mark type or group named %q", name)
	}

	for _, entry := range spec.Marks {
		mt := s.Marks[entry.Name]
		switch {
		case entry.Spec.Excludes == nil:
			mt.excluded = []*MarkType{mt}
		case *entry.Spec.Excludes == "":
			mt.excluded = nil
		default:
			seen := map[*MarkType]bool{}
			for _, name := range strings.Fields(*entry.Spec.Excludes) {
				types, err := resolveMarkTerm(name)
				if err != nil {
					return nil, err
				}
				for _, t := range types {
					if !seen[t] {
						seen[t] = true
						mt.excluded = append(mt.excluded, t)
					}
				}
			}
		}
	}

	resolveNodeTerm := func(name string) ([]*NodeType, error) {
		if nt, ok := s.Nodes[name]; ok {
			return []*NodeType{nt}, nil
		}
		if group, ok := nodeGroups[name]; ok {
			return group, nil
		}
		return nil, newSyntaxError("NewSchema", "no node type or group named %q", name)
	}

	for _, entry := range spec.Nodes {
		nt := s.Nodes[entry.Name]
		switch {
		case entry.Spec.Marks == nil:
			nt.MarkSet = nil
		case *entry.Spec.Marks == "":
			nt.MarkSet = []*MarkType{}
		default:
			seen := map[*MarkType]bool{}
			for _, name := range strings.Fields(*entry.Spec.Marks) {
				types, err := resolveMarkTerm(name)
				if err != nil {
					return nil, err
				}
				for _, t := range types {
					if !seen[t] {
						seen[t] = true
						nt.MarkSet = append(nt.MarkSet, t)
					}
				}
			}
		}
	}

	resolveByName := func(name string) (*NodeType, error) {
		nt, ok := s.Nodes[name]
		if !ok {
			return nil, newSyntaxError("NewSchema", "cached content DFA references unknown node type %q", name)
		}
		return nt, nil
	}

	exprCache := map[string]*ContentMatch{}
	for _, entry := range spec.Nodes {
		nt := s.Nodes[entry.Name]
		if cached, ok := exprCache[nt.ContentExpr]; ok {
			nt.ContentMatch = cached
			continue
		}
		var match *ContentMatch
		var err error
		if states, ok := spec.Precompiled[nt.ContentExpr]; ok {
			match, err = ImportDFA(states, resolveByName)
		} else {
			match, err = compileContentExpr("NewSchema", nt.ContentExpr, resolveNodeTerm)
		}
		if err != nil {
			return nil, err
		}
		exprCache[nt.ContentExpr] = match
		nt.ContentMatch = match
	}

	topName := spec.TopNode
	if topName == "" {
		if _, ok := s.Nodes["doc"]; ok {
			topName = "doc"
		} else {
			topName = spec.Nodes[0].Name
		}
	}
	top, ok := s.Nodes[topName]
	if !ok {
		return nil, newSyntaxError("NewSchema", "top node type %q not declared", topName)
	}
	s.TopNodeType = top

	return s, nil
}

// Node builds and validates a node of the named type.
func (s *Schema) Node(name string, attrs Attrs, content any, marks []*Mark) (*Node, error) {
	nt, ok := s.Nodes[name]
	if !ok {
		return nil, newRangeError("Schema.Node", "no node type named %q in this schema", name)
	}
	return nt.CreateChecked(attrs, content, marks)
}

// Text builds a text node using the schema's "text" node type.
func (s *Schema) Text(text string, marks []*Mark) (*Node, error) {
	nt, ok := s.Nodes["text"]
	if !ok {
		return nil, newRangeError("Schema.Text", "schema declares no text node type")
	}
	return NewTextNode(nt, nil, text, MarkSetFrom(marks))
}

// Mark builds a mark of the named type.
func (s *Schema) Mark(name string, attrs Attrs) (*Mark, error) {
	mt, ok := s.Marks[name]
	if !ok {
		return nil, newRangeError("Schema.Mark", "no mark type named %q in this schema", name)
	}
	return mt.Create(attrs)
}

// TopNode creates an empty (or minimally filled) instance of the
// schema's top node type.
func (s *Schema) TopNode() (*Node, error) {
	return s.TopNodeType.CreateAndFill(nil, nil, nil)
}
