package ir

// resolveGlobalPolicy is pass 10: when kernel-policy is "global",
// every operation must share one attribute set, and the generator
// emits a single ordered-union policy table across all of their
// request attributes rather than one table per op or per op-mode
// (spec.md §4.2 pass 10).
func resolveGlobalPolicy(f *Family) error {
	if f.KernelPolicy != "global" {
		return nil
	}
	var shared *AttrSet
	seen := map[string]bool{}
	var order []string
	for _, op := range f.Operations {
		if op.AttrSet == nil {
			continue
		}
		if shared == nil {
			shared = op.AttrSet
		} else if shared != op.AttrSet {
			return wrapf(ErrGlobalPolicyMixedAttrSets, "%s and %s", shared.Name, op.AttrSet.Name)
		}
		for _, spec := range op.Specs() {
			for _, n := range spec.RequestAttrs {
				if !seen[n] {
					seen[n] = true
					order = append(order, n)
				}
			}
		}
	}
	if shared == nil {
		return nil
	}
	f.GlobalPolicySet = shared
	f.GlobalPolicyOrder = order
	return nil
}
