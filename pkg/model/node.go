package model

import "sync"

// Node is an immutable record (type, attrs, content, marks) representing
// one element of a document tree. All nodes are values: any operation
// that would "modify" a node returns a new node, sharing unchanged
// subtrees with the original.
type Node struct {
	Type    *NodeType
	Attrs   Attrs
	Content *Fragment
	Marks   []*Mark

	// Text holds this node's text payload. Only meaningful when
	// Type.IsText is true; the content model treats a text node's
	// content as always empty regardless of this field.
	Text string

	// resolveMu and resolveCache implement a small ring buffer of the
	// most recently resolved positions in this node's coordinate space,
	// avoiding a full tree walk when the same document is resolved
	// repeatedly at nearby positions (e.g. once per keystroke). Purely a
	// performance cache; it never affects a Node's value semantics.
	resolveMu    sync.Mutex
	resolveCache []*ResolvedPos
}

const resolveCacheSize = 12

func (n *Node) cacheLookup(pos int) *ResolvedPos {
	n.resolveMu.Lock()
	defer n.resolveMu.Unlock()
	for _, rp := range n.resolveCache {
		if rp.Pos == pos {
			return rp
		}
	}
	return nil
}

func (n *Node) cacheStore(rp *ResolvedPos) {
	n.resolveMu.Lock()
	defer n.resolveMu.Unlock()
	if len(n.resolveCache) >= resolveCacheSize {
		n.resolveCache = n.resolveCache[1:]
	}
	n.resolveCache = append(n.resolveCache, rp)
}

// NodeSize returns the number of position units this node occupies: the
// character count for a text node, 1 for any other leaf, or
// Content.Size+2 (open and close tokens) for a non-leaf.
func (n *Node) NodeSize() int {
	if n.IsText() {
		return len(runesOf(n.Text))
	}
	if n.IsLeaf() {
		return 1
	}
	return n.Content.Size + 2
}

// IsText reports whether this node is the schema's text node type.
func (n *Node) IsText() bool { return n.Type.IsText }

// IsLeaf reports whether this node has no editable content.
func (n *Node) IsLeaf() bool { return n.Type.IsLeaf() }

// IsAtom reports whether this node opts out of a content hole entirely.
func (n *Node) IsAtom() bool { return n.Type.IsAtom() }

// IsBlock reports whether this is a block-level node.
func (n *Node) IsBlock() bool { return n.Type.IsBlock }

// IsInline reports whether this is an inline-level node.
func (n *Node) IsInline() bool { return n.Type.IsInline() }

// IsTextblock reports whether this is a block node whose content is
// inline-only.
func (n *Node) IsTextblock() bool { return n.Type.IsTextblock() }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return n.Content.ChildCount() }

// Child returns the index-th child.
func (n *Node) Child(index int) (*Node, error) { return n.Content.Child(index) }

// MaybeChild returns the index-th child, or nil if out of range.
func (n *Node) MaybeChild(index int) *Node { return n.Content.MaybeChild(index) }

// ForEach calls fn for each direct child.
func (n *Node) ForEach(fn func(child *Node, offset, index int)) { n.Content.ForEach(fn) }

// sameMarkup reports whether n and other share the same type, attrs, and
// marks (but not necessarily the same content or text).
func (n *Node) sameMarkup(other *Node) bool {
	return n.Type == other.Type && n.Attrs.Equal(other.Attrs) && SameMarkSet(n.Marks, other.Marks)
}

// Copy returns a new node with the same (type, attrs, marks) and the
// given content, or n itself if content is unchanged.
func (n *Node) Copy(content *Fragment) *Node {
	if content == nil {
		content = emptyFragment
	}
	if content == n.Content {
		return n
	}
	return &Node{Type: n.Type, Attrs: n.Attrs, Content: content, Marks: n.Marks, Text: n.Text}
}

// Mark returns a new node with the given mark set, or n itself if the set
// is identical.
func (n *Node) Mark(marks []*Mark) *Node {
	if SameMarkSet(n.Marks, marks) {
		return n
	}
	return &Node{Type: n.Type, Attrs: n.Attrs, Content: n.Content, Marks: marks, Text: n.Text}
}

// Cut returns the content of n restricted to [from, to), preserving the
// wrapping node.
func (n *Node) Cut(from, to int) (*Node, error) {
	if n.IsText() {
		return n.cutText(from, to)
	}
	if from == 0 && to == n.Content.Size {
		return n, nil
	}
	cut, err := n.Content.Cut(from, to)
	if err != nil {
		return nil, err
	}
	return n.Copy(cut), nil
}

// Equal reports whether two nodes are value-equal: same type, attrs,
// marks, text, and element-wise equal content.
func (n *Node) Equal(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if !n.sameMarkup(other) {
		return false
	}
	if n.IsText() {
		return n.Text == other.Text
	}
	return n.Content.Equal(other.Content)
}

// NodeAt descends from n following FindIndex, returning the node directly
// after pos, or nil if pos sits at the very end.
func (n *Node) NodeAt(pos int) (*Node, error) {
	node := n
	for {
		index, offset, err := node.Content.FindIndex(pos, -1)
		if err != nil {
			return nil, err
		}
		child := node.Content.MaybeChild(index)
		if child == nil {
			return nil, nil
		}
		if offset == pos || child.IsText() {
			return child, nil
		}
		pos -= offset + 1
		node = child
	}
}

// RangeHasMark reports whether any node in [from, to) carries a mark
// equal to m.
func (n *Node) RangeHasMark(from, to int, m *Mark) (bool, error) {
	if to <= from {
		return false, nil
	}
	found := false
	var walkErr error
	n.Content.NodesBetween(from, to, func(child *Node, _ int, _ *Node, _ int) bool {
		if found || walkErr != nil {
			return false
		}
		if m.IsInSet(child.Marks) {
			found = true
		}
		return !found
	}, 0, n)
	return found, walkErr
}

// RangeHasMarkType reports whether any node in [from, to) carries a mark
// of type mt.
func (n *Node) RangeHasMarkType(from, to int, mt *MarkType) (bool, error) {
	if to <= from {
		return false, nil
	}
	found := false
	n.Content.NodesBetween(from, to, func(child *Node, _ int, _ *Node, _ int) bool {
		if found {
			return false
		}
		if mt.IsInSet(child.Marks) != nil {
			found = true
		}
		return !found
	}, 0, n)
	return found, nil
}

// ContentMatchAt returns the content-match state reached after matching
// the first index children of n's content.
func (n *Node) ContentMatchAt(index int) (*ContentMatch, error) {
	m, err := n.Type.ContentMatch.MatchFragment(n.Content, 0, index)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, newRangeError("Node.ContentMatchAt", "called on a node (%s) with invalid content at index %d", n.Type.Name, index)
	}
	return m, nil
}

// CanReplace reports whether replacing the child range [from, to) of n's
// content with replacement[start:end] would still be valid content for
// n's type, and that every mark carried by the inserted nodes is allowed.
func (n *Node) CanReplace(from, to int, replacement *Fragment, start, end int) (bool, error) {
	if replacement == nil {
		replacement = emptyFragment
		start, end = 0, 0
	}
	one, err := n.ContentMatchAt(from)
	if err != nil {
		return false, err
	}
	one, err = one.MatchFragment(replacement, start, end)
	if err != nil {
		return false, err
	}
	if one == nil {
		return false, nil
	}
	two, err := one.MatchFragment(n.Content, to, n.ChildCount())
	if err != nil {
		return false, err
	}
	if two == nil || !two.ValidEnd {
		return false, nil
	}
	for i := start; i < end; i++ {
		child, err := replacement.Child(i)
		if err != nil {
			return false, err
		}
		if !n.Type.AllowsMarks(child.Marks) {
			return false, nil
		}
	}
	return true, nil
}

// Check validates n's content and marks against the schema recursively.
func (n *Node) Check() error {
	if err := n.Type.CheckContent(n.Content); err != nil {
		return err
	}
	var copySet []*Mark
	for _, m := range n.Marks {
		copySet = m.AddToSet(copySet)
	}
	if !SameMarkSet(copySet, n.Marks) {
		return newRangeError("Node.Check", "invalid collection of marks for node %s", n.Type.Name)
	}
	for _, child := range n.Content.Content {
		if err := child.Check(); err != nil {
			return err
		}
	}
	return nil
}

// Slice resolves [from, to) and returns the cut content as a Slice, with
// open depths computed from the shared ancestor depth unless
// includeParents forces the cut all the way to the root.
func (n *Node) Slice(from, to int, includeParents bool) (*Slice, error) {
	if from == to {
		return EmptySlice(), nil
	}
	fromPos, err := n.Resolve(from)
	if err != nil {
		return nil, err
	}
	toPos, err := n.Resolve(to)
	if err != nil {
		return nil, err
	}
	depth := 0
	if !includeParents {
		depth = fromPos.SharedDepth(to)
	}
	start := fromPos.Start(depth)
	node := fromPos.Node(depth)
	content, err := node.Content.Cut(fromPos.Pos-start, toPos.Pos-start)
	if err != nil {
		return nil, err
	}
	return &Slice{Content: content, OpenStart: fromPos.Depth - depth, OpenEnd: toPos.Depth - depth}, nil
}

// Replace performs the structural replace algorithm, gluing slice into n
// at [from, to).
func (n *Node) Replace(from, to int, slice *Slice) (*Node, error) {
	fromPos, err := n.Resolve(from)
	if err != nil {
		return nil, err
	}
	toPos, err := n.Resolve(to)
	if err != nil {
		return nil, err
	}
	return replaceOuterRoot(fromPos, toPos, slice)
}

// Resolve computes the ResolvedPos for pos in n's coordinate space,
// consulting and populating n's resolve cache.
func (n *Node) Resolve(pos int) (*ResolvedPos, error) {
	if pos < 0 || pos > n.Content.Size {
		return nil, newRangeError("Node.Resolve", "position %d out of range for node of size %d", pos, n.Content.Size)
	}
	if cached := n.cacheLookup(pos); cached != nil {
		return cached, nil
	}
	rp, err := resolvePosition(n, pos)
	if err != nil {
		return nil, err
	}
	n.cacheStore(rp)
	return rp, nil
}
