package model

// MarkType wraps a single entry in the schema's mark list.
type MarkType struct {
	// Name is the mark's declared name.
	Name string
	// Rank is the mark's stable position in the schema's declared mark
	// list; mark sets are kept sorted by Rank.
	Rank int
	// Attrs declares this mark type's attributes.
	Attrs map[string]AttributeSpec
	// Inclusive controls whether typing at the end of a run carrying this
	// mark extends the mark onto the new character (see §4.9). Defaults
	// to true if unset by the spec.
	Inclusive bool

	schema   *Schema
	excluded []*MarkType
	instance *Mark
}

// Schema returns the schema this mark type belongs to.
func (mt *MarkType) Schema() *Schema { return mt.schema }

// Excludes reports whether a mark of this type may not coexist with a
// mark of other.
func (mt *MarkType) Excludes(other *MarkType) bool {
	for _, e := range mt.excluded {
		if e == other {
			return true
		}
	}
	return false
}

// Create builds a mark of this type from the given attrs, filling any
// missing attribute from its declared default.
func (mt *MarkType) Create(attrs Attrs) (*Mark, error) {
	if len(attrs) == 0 && mt.instance != nil {
		return mt.instance, nil
	}
	filled, err := fillAttrs("MarkType.Create", mt.Attrs, attrs)
	if err != nil {
		return nil, err
	}
	return &Mark{Type: mt, Attrs: filled}, nil
}

// RemoveFromSet returns set with the first mark of this type removed, or
// set unchanged if this type is not present.
func (mt *MarkType) RemoveFromSet(set []*Mark) []*Mark {
	for i, m := range set {
		if m.Type == mt {
			out := make([]*Mark, 0, len(set)-1)
			out = append(out, set[:i]...)
			out = append(out, set[i+1:]...)
			return out
		}
	}
	return set
}

// IsInSet returns the mark of this type from set, or nil.
func (mt *MarkType) IsInSet(set []*Mark) *Mark {
	for _, m := range set {
		if m.Type == mt {
			return m
		}
	}
	return nil
}

// Mark is a tag attached to a node carrying a type and an attribute map.
type Mark struct {
	Type  *MarkType
	Attrs Attrs
}

// Equal reports whether two marks have identical type and deeply-equal
// attrs.
func (m *Mark) Equal(other *Mark) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	return m.Type == other.Type && m.Attrs.Equal(other.Attrs)
}

// IsInSet reports whether an equal mark is present in set.
func (m *Mark) IsInSet(set []*Mark) bool {
	for _, o := range set {
		if m.Equal(o) {
			return true
		}
	}
	return false
}

// AddToSet returns a new set containing m, inserted before the first
// element whose rank is greater than m's. Elements excluded by m's type
// are dropped; if an existing element excludes m's type, set is returned
// unchanged. Returns set unchanged if m is already present.
func (m *Mark) AddToSet(set []*Mark) []*Mark {
	var cp []*Mark
	placed := false
	for i, other := range set {
		if m.Equal(other) {
			return set
		}
		if m.Type.Excludes(other.Type) {
			if cp == nil {
				cp = append([]*Mark{}, set[:i]...)
			}
			continue
		}
		if other.Type.Excludes(m.Type) {
			return set
		}
		if !placed && other.Type.Rank > m.Type.Rank {
			if cp == nil {
				cp = append([]*Mark{}, set[:i]...)
			}
			cp = append(cp, m)
			placed = true
		}
		if cp != nil {
			cp = append(cp, other)
		}
	}
	if cp == nil {
		cp = append([]*Mark{}, set...)
	}
	if !placed {
		cp = append(cp, m)
	}
	return cp
}

// RemoveFromSet returns a set with the first mark equal to m removed, or
// set unchanged.
func (m *Mark) RemoveFromSet(set []*Mark) []*Mark {
	for i, o := range set {
		if m.Equal(o) {
			out := make([]*Mark, 0, len(set)-1)
			out = append(out, set[:i]...)
			out = append(out, set[i+1:]...)
			return out
		}
	}
	return set
}

// SameMarkSet reports whether a and b contain the same marks in the same
// order.
func SameMarkSet(a, b []*Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// MarkSetFrom builds a rank-sorted mark set from an unordered slice of
// marks.
func MarkSetFrom(marks []*Mark) []*Mark {
	if len(marks) == 0 {
		return nil
	}
	out := make([]*Mark, len(marks))
	copy(out, marks)
	insertionSortMarks(out)
	return out
}

func insertionSortMarks(marks []*Mark) {
	for i := 1; i < len(marks); i++ {
		v := marks[i]
		j := i - 1
		for j >= 0 && marks[j].Type.Rank > v.Type.Rank {
			marks[j+1] = marks[j]
			j--
		}
		marks[j+1] = v
	}
}
