package model

// pathEntry records, for one ancestor level visited while resolving a
// position, the ancestor node itself, the index of the child that the
// resolution descended into (or landed after), and that child slot's
// start offset in the ancestor's own coordinate space.
type pathEntry struct {
	Node  *Node
	Index int
	Start int
}

// ResolvedPos locates an absolute position within a document as a path
// of ancestors plus an offset into the innermost one, so that neighbors,
// depth, and marks at that position can be read without re-walking the
// tree from the root.
type ResolvedPos struct {
	Pos          int
	Depth        int
	ParentOffset int

	path []pathEntry
}

// resolvePosition walks doc from the root following FindIndex at each
// level, exactly as Node.Resolve requires.
func resolvePosition(doc *Node, pos int) (*ResolvedPos, error) {
	var path []pathEntry
	start := 0
	parentOffset := pos
	node := doc
	for {
		index, offset, err := node.Content.FindIndex(parentOffset, -1)
		if err != nil {
			return nil, err
		}
		rem := parentOffset - offset
		path = append(path, pathEntry{Node: node, Index: index, Start: start + offset})
		if rem == 0 {
			break
		}
		child := node.Content.MaybeChild(index)
		if child == nil {
			return nil, newRangeError("Node.Resolve", "position %d resolves past the end of its parent", pos)
		}
		if child.IsText() {
			break
		}
		parentOffset = rem - 1
		start += offset + 1
		node = child
	}
	return &ResolvedPos{Pos: pos, Depth: len(path) - 1, ParentOffset: parentOffset, path: path}, nil
}

func (rp *ResolvedPos) entry(depth int) (pathEntry, error) {
	if depth < 0 || depth > rp.Depth {
		return pathEntry{}, newRangeError("ResolvedPos", "depth %d out of range [0,%d]", depth, rp.Depth)
	}
	return rp.path[depth], nil
}

// Node returns the ancestor at depth (0 is the document root, Depth is
// the immediate parent of the resolved position).
func (rp *ResolvedPos) Node(depth int) *Node {
	e, err := rp.entry(depth)
	if err != nil {
		return nil
	}
	return e.Node
}

// Index returns the index, within the ancestor at depth, of the child
// the resolution passed through (or stopped before).
func (rp *ResolvedPos) Index(depth int) int {
	e, err := rp.entry(depth)
	if err != nil {
		return 0
	}
	return e.Index
}

// IndexAfter returns the index of the child immediately after the
// resolved position at depth.
func (rp *ResolvedPos) IndexAfter(depth int) int {
	index := rp.Index(depth)
	if depth == rp.Depth && rp.TextOffset() == 0 {
		return index
	}
	return index + 1
}

// Start returns the offset, in the ancestor at depth's own coordinate
// space, of that ancestor's first child.
func (rp *ResolvedPos) Start(depth int) int {
	if depth == 0 {
		return 0
	}
	e, err := rp.entry(depth - 1)
	if err != nil {
		return 0
	}
	return e.Start + 1
}

// End returns the offset just past the ancestor at depth's last child.
func (rp *ResolvedPos) End(depth int) int {
	return rp.Start(depth) + rp.Node(depth).Content.Size
}

// Before returns the position immediately before the ancestor at depth
// begins (i.e. before its opening token). depth must be at least 1;
// depth == Depth+1 is accepted as shorthand for Pos itself.
func (rp *ResolvedPos) Before(depth int) (int, error) {
	if depth < 1 {
		return 0, newRangeError("ResolvedPos.Before", "there is no position before the top-level node")
	}
	if depth == rp.Depth+1 {
		return rp.Pos, nil
	}
	e, err := rp.entry(depth - 1)
	if err != nil {
		return 0, err
	}
	return e.Start, nil
}

// After returns the position immediately after the ancestor at depth
// ends (i.e. after its closing token). Same depth range as Before.
func (rp *ResolvedPos) After(depth int) (int, error) {
	if depth < 1 {
		return 0, newRangeError("ResolvedPos.After", "there is no position after the top-level node")
	}
	if depth == rp.Depth+1 {
		return rp.Pos, nil
	}
	before, err := rp.Before(depth)
	if err != nil {
		return 0, err
	}
	return before + rp.Node(depth).NodeSize(), nil
}

// Parent returns the innermost ancestor, i.e. the node the resolved
// position is directly inside of.
func (rp *ResolvedPos) Parent() *Node { return rp.Node(rp.Depth) }

// Doc returns the document root.
func (rp *ResolvedPos) Doc() *Node { return rp.Node(0) }

// TextOffset returns how far Pos sits into a text node, or 0 if Pos
// lands exactly between two children.
func (rp *ResolvedPos) TextOffset() int {
	return rp.Pos - rp.path[len(rp.path)-1].Start
}

// NodeAfter returns the node immediately following the resolved
// position, cut to start exactly there if it lands inside a text node,
// or nil if the position is at the end of its parent.
func (rp *ResolvedPos) NodeAfter() (*Node, error) {
	parent := rp.Parent()
	index := rp.Index(rp.Depth)
	if index == parent.ChildCount() {
		return nil, nil
	}
	dOff := rp.Pos - rp.path[len(rp.path)-1].Start
	child, err := parent.Child(index)
	if err != nil {
		return nil, err
	}
	if dOff == 0 {
		return child, nil
	}
	return child.cutText(dOff, len(runesOf(child.Text)))
}

// NodeBefore returns the node immediately preceding the resolved
// position, cut to end exactly there if it lands inside a text node,
// or nil if the position is at the start of its parent.
func (rp *ResolvedPos) NodeBefore() (*Node, error) {
	index := rp.Index(rp.Depth)
	dOff := rp.Pos - rp.path[len(rp.path)-1].Start
	if dOff > 0 {
		child, err := rp.Parent().Child(index)
		if err != nil {
			return nil, err
		}
		return child.cutText(0, dOff)
	}
	if index == 0 {
		return nil, nil
	}
	return rp.Parent().Child(index - 1)
}

// Marks returns the marks active at the resolved position: the marks of
// the node directly to one side if inside a text run, or the
// intersection of "inclusive" marks straddling the boundary otherwise.
func (rp *ResolvedPos) Marks() []*Mark {
	parent := rp.Parent()
	index := rp.Index(rp.Depth)
	if parent.Content.Size == 0 {
		return nil
	}
	if rp.TextOffset() != 0 {
		child, err := parent.Child(index)
		if err != nil {
			return nil
		}
		return child.Marks
	}
	main := parent.MaybeChild(index - 1)
	other := parent.MaybeChild(index)
	if main == nil {
		main, other = other, main
	}
	if main == nil {
		return nil
	}
	marks := main.Marks
	var kept []*Mark
	for _, m := range marks {
		if !m.Type.Inclusive && (other == nil || !m.IsInSet(other.Marks)) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// MarksAcross returns the marks that would carry across the boundary
// between rp and endPos if inline content were inserted there, or nil
// if the node right after rp is not inline (nothing to carry across).
func (rp *ResolvedPos) MarksAcross(endPos *ResolvedPos) []*Mark {
	after := rp.Parent().MaybeChild(rp.Index(rp.Depth))
	if after == nil || !after.IsInline() {
		return nil
	}
	marks := after.Marks
	next := endPos.Parent().MaybeChild(endPos.Index(endPos.Depth))
	var kept []*Mark
	for _, m := range marks {
		if !m.Type.Inclusive && (next == nil || !m.IsInSet(next.Marks)) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// SharedDepth returns the deepest ancestor depth whose content range
// contains pos (a position in the same document as rp).
func (rp *ResolvedPos) SharedDepth(pos int) int {
	for depth := rp.Depth; depth > 0; depth-- {
		if rp.Start(depth) <= pos && rp.End(depth) >= pos {
			return depth
		}
	}
	return 0
}

// NodeRange describes a range of sibling nodes at a shared depth,
// bounded by two resolved positions.
type NodeRange struct {
	From, To *ResolvedPos
	Depth    int
}

// Parent returns the ancestor common to both endpoints at Depth.
func (r *NodeRange) Parent() *Node { return r.From.Node(r.Depth) }

// StartIndex returns the index of the range's first covered child.
func (r *NodeRange) StartIndex() int { return r.From.Index(r.Depth) }

// EndIndex returns the index just past the range's last covered child.
func (r *NodeRange) EndIndex() int { return r.To.IndexAfter(r.Depth) }

// Start returns the absolute position just before the range's first
// child.
func (r *NodeRange) Start() (int, error) { return r.From.Before(r.Depth + 1) }

// End returns the absolute position just after the range's last child.
func (r *NodeRange) End() (int, error) { return r.To.After(r.Depth + 1) }

// BlockRange finds the deepest node range spanning from rp to other
// (which must come after rp; the call is retried swapped otherwise)
// whose parent node satisfies pred, or every node if pred is nil.
func (rp *ResolvedPos) BlockRange(other *ResolvedPos, pred func(*Node) bool) (*NodeRange, error) {
	if other == nil {
		other = rp
	}
	if other.Pos < rp.Pos {
		return other.BlockRange(rp, pred)
	}
	start := rp.Depth
	if rp.Parent().IsTextblock() || rp.Pos == other.Pos {
		start--
	}
	for d := start; d >= 0; d-- {
		if other.Pos <= rp.End(d) && (pred == nil || pred(rp.Node(d))) {
			return &NodeRange{From: rp, To: other, Depth: d}, nil
		}
	}
	return nil, nil
}
