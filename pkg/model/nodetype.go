package model

// NodeType describes one node name declared by a schema: its content
// model, allowed attributes, allowed marks, and structural flags.
type NodeType struct {
	// Name is the node's declared name.
	Name string
	// Schema is the owning schema.
	Schema *Schema
	// Groups lists the group names this type belongs to, for resolving
	// group references in other types' content expressions.
	Groups []string
	// Attrs declares this type's attributes.
	Attrs map[string]AttributeSpec
	// DefaultAttrs holds the attrs produced when every attribute has a
	// default, or nil if at least one attribute is required.
	DefaultAttrs Attrs

	// ContentExpr is the raw content expression as declared.
	ContentExpr string
	// ContentMatch is the compiled DFA start state for ContentExpr.
	ContentMatch *ContentMatch

	// MarkSet lists the mark types this node may carry, or nil to allow
	// every mark declared by the schema.
	MarkSet []*MarkType

	// IsBlock is true for block-level node types.
	IsBlock bool
	// IsText is true only for the schema's designated text node type.
	IsText bool
	// Inline is true for inline node types (the negation of IsBlock,
	// cached for clarity at call sites).
	Inline bool
	// Atom is true for leaf nodes that should be treated as a single
	// unit by editing UI even if IsLeaf is false.
	Atom bool
	// Isolating is true for nodes that block the "join" and "lift"
	// commands from reaching across their boundary.
	Isolating bool
	// DefiningAsContext, when true, treats this node as part of the
	// content it defines when computing replace boundaries.
	DefiningAsContext bool
	// DefiningForContent, when true, treats this node's content type as
	// part of what it defines when computing replace boundaries.
	DefiningForContent bool
	// Whitespace controls how a renderer should treat whitespace inside
	// this node's text: "normal" (default, collapse) or "pre" (preserve).
	Whitespace string
}

// IsInline reports whether this is an inline-level node type.
func (nt *NodeType) IsInline() bool { return !nt.IsBlock }

// IsLeaf reports whether this type allows no content at all.
func (nt *NodeType) IsLeaf() bool { return nt.ContentMatch == EmptyContentMatch }

// IsAtom reports whether nodes of this type should be treated as opaque
// units.
func (nt *NodeType) IsAtom() bool { return nt.IsLeaf() || nt.Atom }

// IsTextblock reports whether this is a block type whose content is
// entirely inline.
func (nt *NodeType) IsTextblock() bool { return nt.IsBlock && nt.ContentMatch.InlineContent() }

func (nt *NodeType) hasRequiredAttrs() bool {
	for _, spec := range nt.Attrs {
		if !spec.HasDefault {
			return true
		}
	}
	return false
}

// AllowsMarkType reports whether a mark of type mt may be applied to
// nodes of this type.
func (nt *NodeType) AllowsMarkType(mt *MarkType) bool {
	if nt.MarkSet == nil {
		return true
	}
	for _, m := range nt.MarkSet {
		if m == mt {
			return true
		}
	}
	return false
}

// AllowsMarks reports whether every mark in marks may be applied to
// nodes of this type.
func (nt *NodeType) AllowsMarks(marks []*Mark) bool {
	if nt.MarkSet == nil {
		return true
	}
	for _, m := range marks {
		if !nt.AllowsMarkType(m.Type) {
			return false
		}
	}
	return true
}

// AllowedMarks filters marks down to the subset this type allows,
// returning marks itself unchanged when nothing needed dropping.
func (nt *NodeType) AllowedMarks(marks []*Mark) []*Mark {
	if nt.MarkSet == nil {
		return marks
	}
	var filtered []*Mark
	dropped := false
	for i, m := range marks {
		if nt.AllowsMarkType(m.Type) {
			if dropped {
				filtered = append(filtered, m)
			}
			continue
		}
		if !dropped {
			dropped = true
			filtered = append(make([]*Mark, 0, len(marks)), marks[:i]...)
		}
	}
	if !dropped {
		return marks
	}
	return filtered
}

// CheckContent returns an error if content is not valid for this type's
// content expression.
func (nt *NodeType) CheckContent(content *Fragment) error {
	result, err := nt.ContentMatch.MatchFragment(content)
	if err != nil {
		return err
	}
	if result == nil || !result.ValidEnd {
		return newRangeError("NodeType.CheckContent", "invalid content for node %s", nt.Name)
	}
	for i := 0; i < content.ChildCount(); i++ {
		child, err := content.Child(i)
		if err != nil {
			return err
		}
		if !nt.AllowsMarks(child.Marks) {
			return newRangeError("NodeType.CheckContent", "node %s is not allowed to have marks", child.Type.Name)
		}
	}
	return nil
}

func (nt *NodeType) computeAttrs(given Attrs) (Attrs, error) {
	if given == nil && nt.DefaultAttrs != nil {
		return nt.DefaultAttrs, nil
	}
	return fillAttrs("NodeType.Create", nt.Attrs, given)
}

// Create builds a node of this type without validating its content
// against the content expression.
func (nt *NodeType) Create(attrs Attrs, content any, marks []*Mark) (*Node, error) {
	if nt.IsText {
		return nil, newRangeError("NodeType.Create", "NewTextNode must be used to create text nodes")
	}
	filled, err := nt.computeAttrs(attrs)
	if err != nil {
		return nil, err
	}
	frag, err := FragmentFrom(content)
	if err != nil {
		return nil, err
	}
	return &Node{Type: nt, Attrs: filled, Content: frag, Marks: MarkSetFrom(marks)}, nil
}

// CreateChecked builds a node of this type and validates its content.
func (nt *NodeType) CreateChecked(attrs Attrs, content any, marks []*Mark) (*Node, error) {
	frag, err := FragmentFrom(content)
	if err != nil {
		return nil, err
	}
	if err := nt.CheckContent(frag); err != nil {
		return nil, err
	}
	return nt.Create(attrs, frag, marks)
}

// CreateAndFill builds a node of this type, inserting default child
// nodes as needed to satisfy the content expression. Returns nil, nil
// if no legal filling exists.
func (nt *NodeType) CreateAndFill(attrs Attrs, content any, marks []*Mark) (*Node, error) {
	filled, err := nt.computeAttrs(attrs)
	if err != nil {
		return nil, err
	}
	frag, err := FragmentFrom(content)
	if err != nil {
		return nil, err
	}
	if frag.Size > 0 {
		before, err := nt.ContentMatch.FillBefore(frag, false)
		if err != nil {
			return nil, err
		}
		if before == nil {
			return nil, nil
		}
		frag = before.Append(frag)
	}
	after, err := nt.ContentMatch.MatchFragment(frag)
	if err != nil {
		return nil, err
	}
	var fill *Fragment
	if after != nil {
		fill, err = after.FillBefore(emptyFragment, true)
		if err != nil {
			return nil, err
		}
	}
	if fill == nil {
		return nil, nil
	}
	return &Node{Type: nt, Attrs: filled, Content: frag.Append(fill), Marks: MarkSetFrom(marks)}, nil
}

// CompatibleContent reports whether nodes of this type could be joined
// with nodes of other without producing invalid content, i.e. whether
// something that fits after this type's content also fits after
// other's.
func (nt *NodeType) CompatibleContent(other *NodeType) bool {
	return nt == other || nt.ContentMatch.Compatible(other.ContentMatch)
}

// ValidContent reports whether content is legal for this type without
// separately reporting an error.
func (nt *NodeType) ValidContent(content *Fragment) bool {
	return nt.CheckContent(content) == nil
}

// ComputeAttrs fills attrs against this type's declared attribute specs.
func (nt *NodeType) ComputeAttrs(given Attrs) (Attrs, error) {
	return nt.computeAttrs(given)
}
