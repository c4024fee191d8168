package model

import "reflect"

// Attrs is an open record mapping an attribute name to its value. The set
// of legal names and whether each has a default is declared per type by
// AttributeSpec.
type Attrs map[string]any

// Equal reports whether two attribute maps are deeply equal.
func (a Attrs) Equal(b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || !reflect.DeepEqual(v, bv) {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of a.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// AttributeSpec describes one attribute declared by a node or mark type.
type AttributeSpec struct {
	// Default is the value used when the attribute is not supplied.
	Default any
	// HasDefault indicates whether Default should be used; an attribute
	// with HasDefault false is required.
	HasDefault bool
}

// computeDefaultAttrs returns the attrs made up entirely of defaults, and
// whether every declared attribute has one (in which case the same Attrs
// value may be shared across every node/mark of the type).
func computeDefaultAttrs(specs map[string]AttributeSpec) (Attrs, bool) {
	if len(specs) == 0 {
		return Attrs{}, true
	}
	defaults := make(Attrs, len(specs))
	allDefaulted := true
	for name, spec := range specs {
		if !spec.HasDefault {
			allDefaulted = false
			continue
		}
		defaults[name] = spec.Default
	}
	if !allDefaulted {
		return nil, false
	}
	return defaults, true
}

// fillAttrs fills any attribute missing from given with its declared
// default, returning a RangeError for any required attribute that is
// missing and for any name in given that the type does not declare.
func fillAttrs(op string, specs map[string]AttributeSpec, given Attrs) (Attrs, error) {
	if len(given) == 0 {
		defaults, ok := computeDefaultAttrs(specs)
		if ok {
			return defaults, nil
		}
	}
	out := make(Attrs, len(specs))
	for name, spec := range specs {
		if v, ok := given[name]; ok {
			out[name] = v
			continue
		}
		if !spec.HasDefault {
			return nil, newRangeError(op, "no value supplied for attribute %q", name)
		}
		out[name] = spec.Default
	}
	for name := range given {
		if _, ok := specs[name]; !ok {
			return nil, newRangeError(op, "unsupported attribute %q", name)
		}
	}
	return out, nil
}
