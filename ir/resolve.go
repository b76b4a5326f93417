package ir

// Resolve runs the ten-pass resolver over f in the fixed order
// spec.md §4.2 documents. Each pass reads fields populated by
// BuildFamily or by an earlier pass; none of them re-enter an earlier
// pass, so the order below is load-bearing, not incidental.
func (f *Family) Resolve() error {
	passes := []func(*Family) error{
		resolveNotifications,
		resolveEventMockups,
		resolveRootSets,
		resolveNestedSets,
		resolveToposort,
		resolveReachability,
		resolvePerAttrReachability,
		resolveSelectors,
		resolveHooks,
		resolveGlobalPolicy,
	}
	for _, pass := range passes {
		if err := pass(f); err != nil {
			return err
		}
	}
	return nil
}
