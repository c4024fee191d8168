package model

import (
	"fmt"
	"strings"
)

// DebugString renders n as a compact, human-readable tree, e.g.
// paragraph("hello", strong("world")). Text nodes render as a quoted
// Go string literal; marks wrap their carrier in TypeName(...).
func (n *Node) DebugString() string {
	var name string
	if n.IsText() {
		name = fmt.Sprintf("%q", n.Text)
	} else {
		name = n.Type.Name
		if n.Content.Size > 0 {
			name = name + "(" + n.Content.DebugString() + ")"
		}
	}
	return wrapMarksDebug(n.Marks, name)
}

// DebugString renders f's children, comma-separated, in DebugString
// form.
func (f *Fragment) DebugString() string {
	parts := make([]string, 0, f.ChildCount())
	for _, c := range f.Content {
		parts = append(parts, c.DebugString())
	}
	return strings.Join(parts, ", ")
}

func wrapMarksDebug(marks []*Mark, str string) string {
	for i := len(marks) - 1; i >= 0; i-- {
		str = marks[i].Type.Name + "(" + str + ")"
	}
	return str
}
