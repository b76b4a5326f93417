package ir

// resolveSelectors is pass 8: for each sub-message member, resolve its
// selector to a sibling attribute (setting the sibling's IsSelector
// flag) or mark it external. An external selector more than one
// nesting layer away from the sub-message attribute is rejected
// (SPEC_FULL.md §5, spec.md §9 open question - decided, not guessed).
func resolveSelectors(f *Family) error {
	for _, name := range f.attrSetOrder {
		set := f.AttrSets[name]
		for _, a := range set.Attrs {
			underlying := unwrapMultiAttr(a)
			sma, ok := underlying.(*SubMessageAttr)
			if !ok || sma.Selector == nil {
				continue
			}
			sel := sma.Selector
			if sel.External {
				for _, pname := range f.attrSetOrder {
					parent := f.AttrSets[pname]
					if !parent.IsNested {
						continue
					}
					for _, child := range nestedSetsOf(parent) {
						if child.Name == set.Name {
							return wrapf(ErrSelectorNotThreadable, "%s.%s", set.Name, a.Base().Name)
						}
					}
				}
				continue
			}
			sib, ok := set.ByName(sel.Name)
			if !ok {
				return wrapf(ErrSelectorUnresolved, "%s.%s selector %s", set.Name, a.Base().Name, sel.Name)
			}
			sel.Sibling = sib
			sib.Base().IsSelector = true
		}
	}
	return nil
}
