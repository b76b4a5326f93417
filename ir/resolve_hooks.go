package ir

// resolveHooks is pass 9: collect pre/post callback names per op-mode,
// deduplicated, preserving first-seen order (spec.md §4.2 pass 9).
func resolveHooks(f *Family) error {
	for _, op := range f.Operations {
		seenPre := map[string]bool{}
		seenPost := map[string]bool{}
		for _, spec := range op.Specs() {
			if spec.Pre != "" && !seenPre[spec.Pre] {
				seenPre[spec.Pre] = true
				op.PreHooks = append(op.PreHooks, spec.Pre)
			}
			if spec.Post != "" && !seenPost[spec.Post] {
				seenPost[spec.Post] = true
				op.PostHooks = append(op.PostHooks, spec.Post)
			}
		}
	}
	return nil
}
