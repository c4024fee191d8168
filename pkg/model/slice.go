package model

// Slice is a fragment of document content that may be "open" at its
// start and/or end, meaning the outermost OpenStart/OpenEnd levels of
// nesting are not balanced by matching open/close tokens. Slices are
// the currency of copy/paste and of the replace algorithm: a selection
// cut from a document, or content about to be spliced into one.
type Slice struct {
	Content   *Fragment
	OpenStart int
	OpenEnd   int
}

var emptySlice = &Slice{Content: emptyFragment}

// EmptySlice returns the shared empty slice singleton.
func EmptySlice() *Slice { return emptySlice }

// Size returns the number of position units actually covered by this
// slice, discounting the open ends.
func (s *Slice) Size() int { return s.Content.Size - s.OpenStart - s.OpenEnd }

// Equal reports whether two slices have equal content and open depths.
func (s *Slice) Equal(other *Slice) bool {
	if s == other {
		return true
	}
	return s.Content.Equal(other.Content) && s.OpenStart == other.OpenStart && s.OpenEnd == other.OpenEnd
}

// MaxOpenSlice wraps fragment in a Slice whose open depths reach as deep
// as possible along its first/last child chain, stopping at leaves and,
// unless openIsolating is true, at isolating node boundaries.
func MaxOpenSlice(fragment *Fragment, openIsolating bool) *Slice {
	openStart, openEnd := 0, 0
	for n := fragment.MaybeChild(0); n != nil && !n.IsLeaf() && (openIsolating || !n.Type.Isolating); {
		openStart++
		n = n.Content.MaybeChild(0)
	}
	for n := lastChild(fragment); n != nil && !n.IsLeaf() && (openIsolating || !n.Type.Isolating); {
		openEnd++
		n = lastChild(n.Content)
	}
	return &Slice{Content: fragment, OpenStart: openStart, OpenEnd: openEnd}
}

func lastChild(f *Fragment) *Node {
	if f.ChildCount() == 0 {
		return nil
	}
	return f.Content[f.ChildCount()-1]
}

// InsertAt inserts fragment at pos (measured in this slice's own,
// possibly-open coordinate space) and returns the resulting slice, or
// nil if the node it lands in would then hold invalid content. Content
// inserted directly at the slice's top level is not checked.
func (s *Slice) InsertAt(pos int, fragment *Fragment) (*Slice, error) {
	content, err := insertInto(s.Content, pos+s.OpenStart, fragment)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}
	return &Slice{Content: content, OpenStart: s.OpenStart, OpenEnd: s.OpenEnd}, nil
}

// RemoveBetween removes [from, to) (in this slice's coordinate space)
// and returns the resulting slice.
func (s *Slice) RemoveBetween(from, to int) (*Slice, error) {
	content, err := removeRange(s.Content, from+s.OpenStart, to+s.OpenStart)
	if err != nil {
		return nil, err
	}
	return &Slice{Content: content, OpenStart: s.OpenStart, OpenEnd: s.OpenEnd}, nil
}

func insertInto(content *Fragment, dist int, insert *Fragment) (*Fragment, error) {
	index, offset, err := content.FindIndex(dist, 0)
	if err != nil {
		return nil, err
	}
	child := content.MaybeChild(index)
	if offset == dist || (child != nil && child.IsText()) {
		head, err := content.Cut(0, dist)
		if err != nil {
			return nil, err
		}
		tail, err := content.Cut(dist, content.Size)
		if err != nil {
			return nil, err
		}
		return head.Append(insert).Append(tail), nil
	}
	inner, err := insertInto(child.Content, dist-offset-1, insert)
	if err != nil {
		return nil, err
	}
	if inner == nil {
		return nil, nil
	}
	if !child.Type.ValidContent(inner) {
		return nil, nil
	}
	return content.ReplaceChild(index, child.Copy(inner))
}

func removeRange(content *Fragment, from, to int) (*Fragment, error) {
	index, offset, err := content.FindIndex(from, 0)
	if err != nil {
		return nil, err
	}
	child := content.MaybeChild(index)
	indexTo, offsetTo, err := content.FindIndex(to, 0)
	if err != nil {
		return nil, err
	}
	if offset == from || (child != nil && child.IsText()) {
		if offsetTo != to {
			childTo, err := content.Child(indexTo)
			if err != nil {
				return nil, err
			}
			if !childTo.IsText() {
				return nil, newReplaceError("Slice.RemoveBetween", "removing a non-flat range")
			}
		}
		head, err := content.Cut(0, from)
		if err != nil {
			return nil, err
		}
		tail, err := content.Cut(to, content.Size)
		if err != nil {
			return nil, err
		}
		return head.Append(tail), nil
	}
	if index != indexTo {
		return nil, newReplaceError("Slice.RemoveBetween", "removing a non-flat range")
	}
	inner, err := removeRange(child.Content, from-offset-1, to-offset-1)
	if err != nil {
		return nil, err
	}
	return content.ReplaceChild(index, child.Copy(inner))
}
