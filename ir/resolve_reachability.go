package ir

// resolveReachability is pass 6: mark each nested struct request/reply
// according to how root-set members reach it, propagate transitively,
// and mark InMultiVal through any MultiAttr edge (spec.md §4.2 pass 6,
// §4.6 "Struct reachability" state machine).
func resolveReachability(f *Family) error {
	for _, op := range f.Operations {
		if op.AttrSet == nil {
			continue
		}
		for _, spec := range op.Specs() {
			for _, name := range spec.RequestAttrs {
				markEdge(f, op.AttrSet, name, true, false)
			}
			for _, name := range spec.ReplyAttrs {
				markEdge(f, op.AttrSet, name, false, true)
			}
		}
	}

	// Fixed-point propagation across the nesting graph. Monotonic and
	// bounded by the number of structs, mirroring the toposort pass's
	// own convergence bound.
	n := len(f.NestedStructsOrder)
	for pass := 0; pass < n+1; pass++ {
		changed := false
		for _, name := range f.NestedStructsOrder {
			st := f.NestedStructs[name]
			for _, a := range st.Set.Attrs {
				isMulti := isMultiAttr(a)
				underlying := unwrapMultiAttr(a)
				for _, childSet := range nestedSetsOfAttr(underlying) {
					child, ok := f.NestedStructs[childSet.Name]
					if !ok {
						continue
					}
					if st.Request && !child.Request {
						child.Request = true
						changed = true
					}
					if st.Reply && !child.Reply {
						child.Reply = true
						changed = true
					}
					if (st.InMultiVal || isMulti) && !child.InMultiVal {
						child.InMultiVal = true
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}
	return nil
}

func isMultiAttr(a Attr) bool {
	_, ok := a.(*MultiAttrAttr)
	return ok
}

// markEdge marks the struct that attr `name` of root set `set` points
// to, if any, and lets the fixed-point loop above carry the mark
// further into the nesting graph.
func markEdge(f *Family, set *AttrSet, name string, req, reply bool) {
	attr, ok := set.ByName(name)
	if !ok {
		return
	}
	isMulti := isMultiAttr(attr)
	underlying := unwrapMultiAttr(attr)
	for _, childSet := range nestedSetsOfAttr(underlying) {
		st, ok := f.NestedStructs[childSet.Name]
		if !ok {
			continue
		}
		if req {
			st.Request = true
		}
		if reply {
			st.Reply = true
		}
		if isMulti {
			st.InMultiVal = true
		}
	}
}

// nestedSetsOfAttr is nestedSetsOf's per-attribute counterpart: the
// attribute sets a single (already-unwrapped) attribute points to.
func nestedSetsOfAttr(a Attr) []*AttrSet {
	switch v := a.(type) {
	case *NestAttr:
		if v.NestedSet != nil {
			return []*AttrSet{v.NestedSet}
		}
	case *NestTypeValueAttr:
		if v.NestedSet != nil {
			return []*AttrSet{v.NestedSet}
		}
	case *ArrayNestAttr:
		if v.ElemKind == ArrayElemNest && v.NestedSet != nil {
			return []*AttrSet{v.NestedSet}
		}
	case *SubMessageAttr:
		var out []*AttrSet
		if v.NestedSet != nil {
			out = append(out, v.NestedSet)
		}
		if v.SubMsg != nil {
			for _, fm := range v.SubMsg.Formats {
				if fm.AttrSet != nil {
					out = append(out, fm.AttrSet)
				}
			}
		}
		return out
	}
	return nil
}
