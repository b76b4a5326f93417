package ir

// resolveRootSets is pass 3: for each op, its attribute-set becomes a
// root set if the op names any request or reply attributes at all
// (spec.md §4.2 pass 3). The root-vs-nested conflict this pass guards
// against is only fully checkable once pass 4 has discovered every
// nested set, so the actual ErrRootAndNested check lives in
// resolveNestedSets; this pass only marks roots.
func resolveRootSets(f *Family) error {
	for _, op := range f.Operations {
		if op.AttrSet == nil {
			continue
		}
		used := false
		for _, spec := range op.Specs() {
			if len(spec.RequestAttrs) > 0 || len(spec.ReplyAttrs) > 0 {
				used = true
			}
		}
		if !used {
			continue
		}
		op.AttrSet.IsRoot = true
		op.AttrSet.RootOf = append(op.AttrSet.RootOf, op)
	}
	return nil
}
