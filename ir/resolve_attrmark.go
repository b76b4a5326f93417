package ir

// resolvePerAttrReachability is pass 7: mirror the struct-level
// reachability computed in pass 6 onto each member attribute, and for
// subset attributes onto the parent set's real attribute too (spec.md
// §4.2 pass 7).
func resolvePerAttrReachability(f *Family) error {
	for _, name := range f.NestedStructsOrder {
		st := f.NestedStructs[name]
		for _, a := range st.Members {
			markAttrReachable(a, st.Request, st.Reply)
		}
	}
	for _, op := range f.Operations {
		if op.AttrSet == nil {
			continue
		}
		for _, spec := range op.Specs() {
			for _, n := range spec.RequestAttrs {
				if a, ok := op.AttrSet.ByName(n); ok {
					markAttrReachable(a, true, false)
				}
			}
			for _, n := range spec.ReplyAttrs {
				if a, ok := op.AttrSet.ByName(n); ok {
					markAttrReachable(a, false, true)
				}
			}
		}
	}
	return nil
}

func markAttrReachable(a Attr, req, reply bool) {
	b := a.Base()
	if req {
		b.Request = true
	}
	if reply {
		b.Reply = true
	}
	if b.Set.SubsetOf != nil {
		if real := b.Set.RealAttr(b.Name); real != nil {
			rb := real.Base()
			if req {
				rb.Request = true
			}
			if reply {
				rb.Reply = true
			}
		}
	}
}
