package model

// replaceOuterRoot is the entry point for Node.Replace: it validates the
// slice's open depths against the resolved boundary positions, then
// recurses down shared ancestors with replaceOuter.
func replaceOuterRoot(fromPos, toPos *ResolvedPos, slice *Slice) (*Node, error) {
	if slice.OpenStart > fromPos.Depth {
		return nil, newReplaceError("Node.Replace", "inserted content deeper than insertion position")
	}
	if fromPos.Depth-slice.OpenStart != toPos.Depth-slice.OpenEnd {
		return nil, newReplaceError("Node.Replace", "inconsistent open depths")
	}
	return replaceOuter(fromPos, toPos, slice, 0)
}

// replaceOuter walks down through ancestors that fromPos and toPos still
// share, past the point where the slice's own openness stops, then
// switches to the three-way (non-empty slice) or two-way (deletion-only)
// splice at the point where the actual edit happens.
func replaceOuter(fromPos, toPos *ResolvedPos, slice *Slice, depth int) (*Node, error) {
	index := fromPos.Index(depth)
	node := fromPos.Node(depth)
	if index == toPos.Index(depth) && depth < fromPos.Depth-slice.OpenStart {
		inner, err := replaceOuter(fromPos, toPos, slice, depth+1)
		if err != nil {
			return nil, err
		}
		newContent, err := node.Content.ReplaceChild(index, inner)
		if err != nil {
			return nil, err
		}
		return node.Copy(newContent), nil
	}
	if slice.Content.Size > 0 {
		start, end, err := prepareSliceForReplace(slice, fromPos)
		if err != nil {
			return nil, err
		}
		frag, err := replaceThreeWay(fromPos, start, end, toPos, depth)
		if err != nil {
			return nil, err
		}
		return closeNode(node, frag)
	}
	frag, err := replaceTwoWay(fromPos, toPos, depth)
	if err != nil {
		return nil, err
	}
	return closeNode(node, frag)
}

func checkJoin(main, sub *Node) error {
	if !sub.Type.CompatibleContent(main.Type) {
		return newReplaceError("Node.Replace", "cannot join %s onto %s", sub.Type.Name, main.Type.Name)
	}
	return nil
}

// joinable checks that the ancestor at depth on each side of the
// boundary can be merged into one node, and returns the "before" side's
// node to be used as the template (type and attrs) for that merge.
func joinable(before, after *ResolvedPos, depth int) (*Node, error) {
	node := before.Node(depth)
	if err := checkJoin(node, after.Node(depth)); err != nil {
		return nil, err
	}
	return node, nil
}

// addNode appends child to target, merging it into a trailing text node
// of identical markup when possible.
func addNode(child *Node, target *[]*Node) {
	n := len(*target)
	if n > 0 && child.IsText() && child.sameMarkup((*target)[n-1]) {
		(*target)[n-1] = (*target)[n-1].withText((*target)[n-1].Text + child.Text)
	} else {
		*target = append(*target, child)
	}
}

// addRange appends the children of (start or end)'s ancestor at depth
// that lie in [start, end) to target, splitting a boundary text node
// when start or end lands inside one. Either endpoint may be nil to mean
// "from the beginning" / "to the end".
func addRange(start, end *ResolvedPos, depth int, target *[]*Node) error {
	var node *Node
	if end != nil {
		node = end.Node(depth)
	} else {
		node = start.Node(depth)
	}
	startIndex := 0
	endIndex := node.ChildCount()
	if end != nil {
		endIndex = end.Index(depth)
	}
	if start != nil {
		startIndex = start.Index(depth)
		if start.Depth > depth {
			startIndex++
		} else if start.TextOffset() != 0 {
			after, err := start.NodeAfter()
			if err != nil {
				return err
			}
			addNode(after, target)
			startIndex++
		}
	}
	for i := startIndex; i < endIndex; i++ {
		child, err := node.Child(i)
		if err != nil {
			return err
		}
		addNode(child, target)
	}
	if end != nil && end.Depth == depth && end.TextOffset() != 0 {
		before, err := end.NodeBefore()
		if err != nil {
			return err
		}
		addNode(before, target)
	}
	return nil
}

// closeNode validates content against node's type before wrapping it.
func closeNode(node *Node, content *Fragment) (*Node, error) {
	if !node.Type.ValidContent(content) {
		return nil, newReplaceError("Node.Replace", "invalid content for node %s", node.Type.Name)
	}
	return node.Copy(content), nil
}

func fragmentFromBuilt(nodes []*Node) *Fragment {
	size := 0
	for _, n := range nodes {
		size += n.NodeSize()
	}
	return &Fragment{Content: nodes, Size: size}
}

// replaceThreeWay builds the content of the node at depth when the slice
// being inserted is non-empty: the material before the slice's open
// start, the (possibly further-nested) slice content itself, and the
// material after the slice's open end.
func replaceThreeWay(fromPos, start, end, toPos *ResolvedPos, depth int) (*Fragment, error) {
	var openStart, openEnd *Node
	var err error
	if fromPos.Depth > depth {
		openStart, err = joinable(fromPos, start, depth+1)
		if err != nil {
			return nil, err
		}
	}
	if toPos.Depth > depth {
		openEnd, err = joinable(end, toPos, depth+1)
		if err != nil {
			return nil, err
		}
	}

	var content []*Node
	if err := addRange(nil, fromPos, depth, &content); err != nil {
		return nil, err
	}
	if openStart != nil && openEnd != nil && start.Index(depth) == end.Index(depth) {
		if err := checkJoin(openStart, openEnd); err != nil {
			return nil, err
		}
		inner, err := replaceThreeWay(fromPos, start, end, toPos, depth+1)
		if err != nil {
			return nil, err
		}
		closed, err := closeNode(openStart, inner)
		if err != nil {
			return nil, err
		}
		addNode(closed, &content)
	} else {
		if openStart != nil {
			inner, err := replaceTwoWay(fromPos, start, depth+1)
			if err != nil {
				return nil, err
			}
			closed, err := closeNode(openStart, inner)
			if err != nil {
				return nil, err
			}
			addNode(closed, &content)
		}
		if err := addRange(start, end, depth, &content); err != nil {
			return nil, err
		}
		if openEnd != nil {
			inner, err := replaceTwoWay(end, toPos, depth+1)
			if err != nil {
				return nil, err
			}
			closed, err := closeNode(openEnd, inner)
			if err != nil {
				return nil, err
			}
			addNode(closed, &content)
		}
	}
	if err := addRange(toPos, nil, depth, &content); err != nil {
		return nil, err
	}
	return fragmentFromBuilt(content), nil
}

// replaceTwoWay builds the content of the node at depth when the slice
// being inserted is empty (a pure deletion): everything up to fromPos,
// optionally the joined remainder of a shared deeper ancestor, then
// everything from toPos onward.
func replaceTwoWay(fromPos, toPos *ResolvedPos, depth int) (*Fragment, error) {
	var content []*Node
	if err := addRange(nil, fromPos, depth, &content); err != nil {
		return nil, err
	}
	if fromPos.Depth > depth {
		joined, err := joinable(fromPos, toPos, depth+1)
		if err != nil {
			return nil, err
		}
		inner, err := replaceTwoWay(fromPos, toPos, depth+1)
		if err != nil {
			return nil, err
		}
		closed, err := closeNode(joined, inner)
		if err != nil {
			return nil, err
		}
		addNode(closed, &content)
	}
	if err := addRange(toPos, nil, depth, &content); err != nil {
		return nil, err
	}
	return fragmentFromBuilt(content), nil
}

// prepareSliceForReplace rebuilds along's ancestor chain around the
// slice's content down to the slice's own open depth, then resolves the
// two boundary positions of that content within the rebuilt tree so
// replaceThreeWay can walk them exactly like ordinary resolved positions.
func prepareSliceForReplace(slice *Slice, along *ResolvedPos) (*ResolvedPos, *ResolvedPos, error) {
	extra := along.Depth - slice.OpenStart
	parent := along.Node(extra)
	node := parent.Copy(slice.Content)
	for i := extra - 1; i >= 0; i-- {
		wrapper := along.Node(i)
		frag, err := FragmentFrom(node)
		if err != nil {
			return nil, nil, err
		}
		node = wrapper.Copy(frag)
	}
	start, err := resolvePosition(node, slice.OpenStart+extra)
	if err != nil {
		return nil, nil, err
	}
	end, err := resolvePosition(node, node.Content.Size-slice.OpenEnd-extra)
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}
