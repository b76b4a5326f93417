package ir

// resolveToposort is pass 5. It first computes each nested struct's
// transitive child-nests and marks Recursive where a struct's closure
// contains itself, then repeatedly reorders NestedStructsOrder so a
// non-recursive producer is always declared before its consumer.
// Recursive cycles are allowed because recursion is emitted via
// pointer + forward declaration rather than requiring a fully-ordered
// dependency (spec.md §3, §4.2 pass 5, §4.6).
func resolveToposort(f *Family) error {
	for _, name := range f.NestedStructsOrder {
		st := f.NestedStructs[name]
		for _, child := range nestedSetsOf(st.Set) {
			st.ChildNests[child.Name] = true
		}
	}

	// Transitive closure by repeated union, bounded by the number of
	// structs - each pass can only grow a ChildNests set, so it
	// converges in at most len(structs) passes.
	n := len(f.NestedStructsOrder)
	for pass := 0; pass < n+1; pass++ {
		changed := false
		for _, name := range f.NestedStructsOrder {
			st := f.NestedStructs[name]
			for child := range st.ChildNests {
				childSt, ok := f.NestedStructs[child]
				if !ok {
					continue
				}
				for grandchild := range childSt.ChildNests {
					if !st.ChildNests[grandchild] {
						st.ChildNests[grandchild] = true
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}
	for _, name := range f.NestedStructsOrder {
		st := f.NestedStructs[name]
		st.Recursive = st.ChildNests[name]
	}

	remaining := map[string]bool{}
	for _, name := range f.NestedStructsOrder {
		remaining[name] = true
	}
	var order []string
	progressless := 0
	bound := n*n + n + 1
	for len(remaining) > 0 {
		progressed := false
		for _, name := range f.NestedStructsOrder {
			if !remaining[name] {
				continue
			}
			st := f.NestedStructs[name]
			ready := true
			for child := range st.ChildNests {
				if child == name {
					continue
				}
				if remaining[child] && !f.NestedStructs[child].Recursive {
					ready = false
					break
				}
			}
			if ready {
				order = append(order, name)
				delete(remaining, name)
				progressed = true
			}
		}
		if !progressed {
			progressless++
			if progressless > bound {
				return ErrToposortStuck
			}
			// Break the deadlock: a recursive member can always be
			// declared behind a forward pointer declaration.
			placed := false
			for _, name := range f.NestedStructsOrder {
				if remaining[name] && f.NestedStructs[name].Recursive {
					order = append(order, name)
					delete(remaining, name)
					placed = true
					break
				}
			}
			if !placed {
				return ErrToposortStuck
			}
		} else {
			progressless = 0
		}
	}
	f.NestedStructsOrder = order
	return nil
}
