package ir

// resolveNestedSets is pass 4: BFS from every root set through
// nested-attributes and sub-message references, constructing a Struct
// for each attribute set reached only this way (spec.md §4.2 pass 4).
// An attribute set that is both a root and reachable by nesting is a
// hard error (spec.md §3 invariant).
func resolveNestedSets(f *Family) error {
	visited := map[string]bool{}
	var queue []*AttrSet

	for _, name := range f.attrSetOrder {
		set := f.AttrSets[name]
		if set.IsRoot {
			queue = append(queue, nestedSetsOf(set)...)
		}
	}

	for len(queue) > 0 {
		set := queue[0]
		queue = queue[1:]
		if visited[set.Name] {
			continue
		}
		visited[set.Name] = true

		if set.IsRoot {
			return wrapf(ErrRootAndNested, "%s", set.Name)
		}
		set.IsNested = true

		st := &Struct{Set: set, Nested: true, Members: append([]Attr{}, set.Attrs...), ChildNests: map[string]bool{}}
		f.NestedStructs[set.Name] = st
		f.NestedStructsOrder = append(f.NestedStructsOrder, set.Name)

		queue = append(queue, nestedSetsOf(set)...)
	}
	return nil
}

// nestedSetsOf returns every attribute set directly reachable from
// set's attributes: nest, nest-type-value, sub-message (every variant)
// and indexed-array-of-nest, unwrapping multi-attr wrappers.
func nestedSetsOf(set *AttrSet) []*AttrSet {
	var out []*AttrSet
	for _, a := range set.Attrs {
		a = unwrapMultiAttr(a)
		switch v := a.(type) {
		case *NestAttr:
			if v.NestedSet != nil {
				out = append(out, v.NestedSet)
			}
		case *NestTypeValueAttr:
			if v.NestedSet != nil {
				out = append(out, v.NestedSet)
			}
		case *ArrayNestAttr:
			if v.ElemKind == ArrayElemNest && v.NestedSet != nil {
				out = append(out, v.NestedSet)
			}
		case *SubMessageAttr:
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
		}
	}
	return out
}

func unwrapMultiAttr(a Attr) Attr {
	if m, ok := a.(*MultiAttrAttr); ok {
		return m.Elem
	}
	return a
}
