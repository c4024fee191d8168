package model

// Fragment is an ordered, immutable sequence of sibling nodes with a
// cached total size. Fragment values are never mutated in place; every
// operation that changes content returns a new Fragment.
type Fragment struct {
	Content []*Node
	Size    int
}

var emptyFragment = &Fragment{}

// EmptyFragment returns the shared empty fragment singleton.
func EmptyFragment() *Fragment { return emptyFragment }

// FragmentFrom builds a fragment from a single node, an existing
// fragment, a slice of nodes, or nil (which yields the empty fragment).
func FragmentFrom(v any) (*Fragment, error) {
	switch t := v.(type) {
	case nil:
		return emptyFragment, nil
	case *Fragment:
		return t, nil
	case *Node:
		if t == nil {
			return emptyFragment, nil
		}
		return &Fragment{Content: []*Node{t}, Size: t.NodeSize()}, nil
	case []*Node:
		return FragmentFromArray(t), nil
	default:
		return nil, newRangeError("Fragment.From", "cannot build a fragment from %T", v)
	}
}

// FragmentFromArray builds a fragment from a slice of nodes, merging
// adjacent text children that carry identical markup.
func FragmentFromArray(nodes []*Node) *Fragment {
	if len(nodes) == 0 {
		return emptyFragment
	}
	joined := make([]*Node, 0, len(nodes))
	size := 0
	for _, n := range nodes {
		size += n.NodeSize()
		if len(joined) > 0 {
			last := joined[len(joined)-1]
			if last.IsText() && n.IsText() && last.sameMarkup(n) {
				joined[len(joined)-1] = last.withText(last.Text + n.Text)
				continue
			}
		}
		joined = append(joined, n)
	}
	return &Fragment{Content: joined, Size: size}
}

// ChildCount returns the number of direct children.
func (f *Fragment) ChildCount() int { return len(f.Content) }

// Child returns the index-th child, or a RangeError if index is out of
// bounds.
func (f *Fragment) Child(index int) (*Node, error) {
	if index < 0 || index >= len(f.Content) {
		return nil, newRangeError("Fragment.Child", "index %d out of range [0,%d)", index, len(f.Content))
	}
	return f.Content[index], nil
}

// MaybeChild returns the index-th child, or nil if out of bounds.
func (f *Fragment) MaybeChild(index int) *Node {
	if index < 0 || index >= len(f.Content) {
		return nil
	}
	return f.Content[index]
}

// ForEach calls fn for every child in order.
func (f *Fragment) ForEach(fn func(child *Node, offset, index int)) {
	pos := 0
	for i, c := range f.Content {
		fn(c, pos, i)
		pos += c.NodeSize()
	}
}

// Equal reports whether two fragments are element-wise equal.
func (f *Fragment) Equal(other *Fragment) bool {
	if f == other {
		return true
	}
	if f.ChildCount() != other.ChildCount() {
		return false
	}
	for i, c := range f.Content {
		if !c.Equal(other.Content[i]) {
			return false
		}
	}
	return true
}

// FindIndex returns the index and starting offset of the child that
// contains pos. When pos falls exactly on the end of a child, the
// following index and that child's end offset are returned whatever
// round is; round > 0 does the same for a pos inside a child.
func (f *Fragment) FindIndex(pos int, round int) (int, int, error) {
	if pos == 0 {
		return 0, 0, nil
	}
	if pos == f.Size {
		return len(f.Content), pos, nil
	}
	if pos > f.Size || pos < 0 {
		return 0, 0, newRangeError("Fragment.FindIndex", "position %d outside fragment of size %d", pos, f.Size)
	}
	curPos := 0
	for i, cur := range f.Content {
		end := curPos + cur.NodeSize()
		if end >= pos {
			if end == pos || round > 0 {
				return i + 1, end, nil
			}
			return i, curPos, nil
		}
		curPos = end
	}
	return len(f.Content), curPos, nil
}

// Cut returns a fragment containing exactly the content in [from, to) of
// this fragment's offset space, recursively cutting any child that the
// boundary lands inside of.
func (f *Fragment) Cut(from, to int) (*Fragment, error) {
	if from == 0 && to == f.Size {
		return f, nil
	}
	var result []*Node
	size := 0
	if to > from {
		pos := 0
		for i := 0; pos < to && i < len(f.Content); i++ {
			child := f.Content[i]
			end := pos + child.NodeSize()
			if end > from {
				out := child
				if pos < from || end > to {
					var err error
					if child.IsText() {
						out, err = child.cutText(maxInt(0, from-pos), minInt(len(runesOf(child.Text)), to-pos))
					} else {
						out, err = child.Cut(maxInt(0, from-pos-1), minInt(child.Content.Size, to-pos-1))
					}
					if err != nil {
						return nil, err
					}
				}
				result = append(result, out)
				size += out.NodeSize()
			}
			pos = end
		}
	}
	return &Fragment{Content: result, Size: size}, nil
}

// Append concatenates f and other, merging a text boundary if both sides
// carry identical markup.
func (f *Fragment) Append(other *Fragment) *Fragment {
	if other.Size == 0 {
		return f
	}
	if f.Size == 0 {
		return other
	}
	last := f.Content[len(f.Content)-1]
	first := other.Content[0]
	content := make([]*Node, len(f.Content), len(f.Content)+len(other.Content))
	copy(content, f.Content)
	start := 0
	if last.IsText() && last.sameMarkup(first) {
		content[len(content)-1] = last.withText(last.Text + first.Text)
		start = 1
	}
	content = append(content, other.Content[start:]...)
	return &Fragment{Content: content, Size: f.Size + other.Size}
}

// ReplaceChild returns a fragment with child index replaced by node.
func (f *Fragment) ReplaceChild(index int, node *Node) (*Fragment, error) {
	current, err := f.Child(index)
	if err != nil {
		return nil, err
	}
	if current == node {
		return f, nil
	}
	content := make([]*Node, len(f.Content))
	copy(content, f.Content)
	content[index] = node
	return &Fragment{Content: content, Size: f.Size + node.NodeSize() - current.NodeSize()}, nil
}

// AddToStart returns a fragment with node prepended.
func (f *Fragment) AddToStart(node *Node) *Fragment {
	content := make([]*Node, 0, len(f.Content)+1)
	content = append(content, node)
	content = append(content, f.Content...)
	return &Fragment{Content: content, Size: f.Size + node.NodeSize()}
}

// AddToEnd returns a fragment with node appended.
func (f *Fragment) AddToEnd(node *Node) *Fragment {
	content := make([]*Node, 0, len(f.Content)+1)
	content = append(content, f.Content...)
	content = append(content, node)
	return &Fragment{Content: content, Size: f.Size + node.NodeSize()}
}

// NodesBetween performs a depth-first walk over [from, to), invoking fn
// for each child that overlaps the range. If fn returns false for a
// child, that child's descendants are skipped.
func (f *Fragment) NodesBetween(from, to int, fn func(child *Node, pos int, parent *Node, index int) bool, nodeStart int, parent *Node) {
	pos := 0
	for i := 0; pos < to && i < len(f.Content); i++ {
		child := f.Content[i]
		end := pos + child.NodeSize()
		if end > from {
			descend := fn(child, nodeStart+pos, parent, i)
			if descend && child.Content.Size > 0 {
				start := pos + 1
				child.Content.NodesBetween(
					maxInt(0, from-start),
					minInt(child.Content.Size, to-start),
					fn, nodeStart+start, child)
			}
		}
		pos = end
	}
}

// FindDiffStart returns the first position at which a and b diverge,
// counting from pos, or -1 if they are equal. When one is a prefix of
// the other, the position where the shorter one ends is returned.
func FindDiffStart(a, b *Fragment, pos int) int {
	for i := 0; ; i++ {
		if i == a.ChildCount() || i == b.ChildCount() {
			if a.ChildCount() == b.ChildCount() {
				return -1
			}
			return pos
		}
		childA, childB := a.Content[i], b.Content[i]
		if childA == childB {
			pos += childA.NodeSize()
			continue
		}
		if !childA.sameMarkup(childB) {
			return pos
		}
		if childA.IsText() && childA.Text != childB.Text {
			ra, rb := runesOf(childA.Text), runesOf(childB.Text)
			j := 0
			for j < len(ra) && j < len(rb) && ra[j] == rb[j] {
				j++
				pos++
			}
			return pos
		}
		if childA.Content.Size != 0 || childB.Content.Size != 0 {
			inner := FindDiffStart(childA.Content, childB.Content, pos+1)
			if inner != -1 {
				return inner
			}
		}
		pos += childA.NodeSize()
	}
}

// DiffEnd is the result of FindDiffEnd: the tails of a and b align to
// different absolute offsets in their respective fragments.
type DiffEnd struct {
	A, B int
}

// FindDiffEnd returns the last position (scanning backward) at which a
// and b diverge, or nil if they are equal. When one is a suffix of the
// other, the positions where the shorter one starts are returned.
func FindDiffEnd(a, b *Fragment, posA, posB int) *DiffEnd {
	iA, iB := a.ChildCount(), b.ChildCount()
	for {
		if iA == 0 || iB == 0 {
			if iA == iB {
				return nil
			}
			return &DiffEnd{A: posA, B: posB}
		}
		iA--
		iB--
		childA, childB := a.Content[iA], b.Content[iB]
		size := childA.NodeSize()
		if childA == childB {
			posA -= size
			posB -= size
			continue
		}
		if !childA.sameMarkup(childB) {
			return &DiffEnd{A: posA, B: posB}
		}
		if childA.IsText() && childA.Text != childB.Text {
			ra, rb := runesOf(childA.Text), runesOf(childB.Text)
			same := 0
			minLen := minInt(len(ra), len(rb))
			for same < minLen && ra[len(ra)-same-1] == rb[len(rb)-same-1] {
				same++
				posA--
				posB--
			}
			return &DiffEnd{A: posA, B: posB}
		}
		if childA.Content.Size != 0 || childB.Content.Size != 0 {
			inner := FindDiffEnd(childA.Content, childB.Content, posA-1, posB-1)
			if inner != nil {
				return inner
			}
		}
		posA -= size
		posB -= size
	}
}

func runesOf(s string) []rune { return []rune(s) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
